package services

import (
	"fmt"
	"time"

	"Encore/models"
	"Encore/store"

	"github.com/google/uuid"
)

// EarningsService is the ledger side of the portal: it records credits
// emitted by the queue and aggregates them for the performer dashboard.
type EarningsService struct {
	store store.EarningsStore
}

func NewEarningsService(st store.EarningsStore) *EarningsService {
	return &EarningsService{store: st}
}

func (s *EarningsService) Credit(performerID string, amount float64, earningType, source, description string, at time.Time) error {
	earning := &models.Earning{
		ID:          uuid.NewString(),
		PerformerID: performerID,
		Amount:      amount,
		Currency:    "USD",
		Type:        earningType,
		Source:      source,
		Description: description,
		Timestamp:   at,
	}
	if err := s.store.PutEarning(earning); err != nil {
		return fmt.Errorf("failed to record earning: %w", err)
	}
	return nil
}

type EarningsSummary struct {
	PerformerID string             `json:"performer_id"`
	Total       float64            `json:"total"`
	ByType      map[string]float64 `json:"by_type"`
	Recent      []*models.Earning  `json:"recent"`
}

// Summary totals a performer's ledger and returns the ten most recent
// entries, newest first.
func (s *EarningsService) Summary(performerID string) (*EarningsSummary, error) {
	earnings, err := s.store.EarningsByPerformer(performerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load earnings: %w", err)
	}

	summary := &EarningsSummary{
		PerformerID: performerID,
		ByType:      make(map[string]float64),
		Recent:      []*models.Earning{},
	}
	for _, e := range earnings {
		summary.Total += e.Amount
		summary.ByType[e.Type] += e.Amount
	}

	for i := len(earnings) - 1; i >= 0 && len(summary.Recent) < 10; i-- {
		summary.Recent = append(summary.Recent, earnings[i])
	}

	return summary, nil
}
