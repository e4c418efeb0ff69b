package services

import (
	"fmt"
	"time"

	"Encore/config"
	"Encore/models"
	"Encore/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PerformerService is the performer directory: registration, authentication
// and existence checks for request validation.
type PerformerService struct {
	store store.PerformerStore
}

func NewPerformerService(st store.PerformerStore) *PerformerService {
	return &PerformerService{store: st}
}

func (s *PerformerService) Register(username, email, password, stageName string) (*models.Performer, error) {
	existing, err := s.store.GetPerformerByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing performer: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	performer := &models.Performer{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		StageName:    stageName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.PutPerformer(performer); err != nil {
		return nil, fmt.Errorf("failed to register performer: %w", err)
	}
	return performer, nil
}

func (s *PerformerService) Authenticate(username, password string) (*models.Performer, error) {
	performer, err := s.store.GetPerformerByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up performer: %w", err)
	}
	if performer == nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(performer.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return performer, nil
}

func (s *PerformerService) GetByID(id string) (*models.Performer, error) {
	performer, err := s.store.GetPerformer(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up performer: %w", err)
	}
	if performer == nil {
		return nil, &NotFoundError{Resource: "performer", ID: id}
	}
	return performer, nil
}

func (s *PerformerService) Exists(id string) (bool, error) {
	performer, err := s.store.GetPerformer(id)
	if err != nil {
		return false, fmt.Errorf("failed to look up performer: %w", err)
	}
	return performer != nil, nil
}

// EnsureAdmin seeds the admin performer from the environment. Seeding is
// skipped when ADMIN_PASSWORD is unset or the performer already exists.
func (s *PerformerService) EnsureAdmin(cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	existing, err := s.store.GetPerformerByUsername(cfg.AdminUsername)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin performer: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	admin := &models.Performer{
		ID:           uuid.NewString(),
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashedPassword),
		StageName:    cfg.AdminStage,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.PutPerformer(admin); err != nil {
		return fmt.Errorf("failed to seed admin performer: %w", err)
	}
	return nil
}
