package services

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"Encore/models"
	"Encore/store"

	"github.com/google/uuid"
)

// Ledger receives a credit whenever a tipped request is admitted. The credit
// is fire-and-forget: a ledger failure is logged but never rolls back the
// already-created request.
type Ledger interface {
	Credit(performerID string, amount float64, earningType, source, description string, at time.Time) error
}

// QueueService owns the song-request queue: admission, ordering and the
// status lifecycle. Mutating operations on the same performer serialize on a
// per-performer mutex, so concurrent playNext calls cannot both promote.
type QueueService struct {
	store  store.Store
	ledger Ledger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewQueueService(st store.Store, ledger Ledger) *QueueService {
	return &QueueService{
		store:  st,
		ledger: ledger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *QueueService) lockPerformer(performerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[performerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[performerID] = l
	}
	return l
}

type SubmitInput struct {
	PerformerID   string
	RequesterID   string
	RequesterName string
	SongTitle     string
	Artist        string
	TipAmount     float64
	Notes         string
}

// Submit validates a request against the performer's settings and enqueues
// it. Rules run in order and the first violation wins. A performer with no
// settings row admits everything (default-open).
func (s *QueueService) Submit(in SubmitInput) (*models.SongRequest, error) {
	performer, err := s.store.GetPerformer(in.PerformerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up performer: %w", err)
	}
	if performer == nil {
		return nil, &NotFoundError{Resource: "performer", ID: in.PerformerID}
	}

	lock := s.lockPerformer(in.PerformerID)
	lock.Lock()
	defer lock.Unlock()

	settings, err := s.store.GetSettings(in.PerformerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if settings != nil {
		if !settings.IsAcceptingRequests {
			return nil, &RejectedError{Reason: "this performer is not currently accepting song requests"}
		}

		if in.TipAmount < settings.MinimumTip {
			return nil, &RejectedError{Reason: fmt.Sprintf("minimum tip for song requests is $%v", settings.MinimumTip)}
		}

		size, err := s.pendingQueueSize(in.PerformerID)
		if err != nil {
			return nil, err
		}
		if size >= settings.MaxQueueSize {
			return nil, &RejectedError{Reason: "song request queue is full, please try again later"}
		}

		title := strings.ToLower(in.SongTitle)
		for _, blocked := range settings.BlockedSongs {
			if strings.Contains(title, strings.ToLower(blocked)) {
				return nil, &RejectedError{Reason: "this song is not available for requests"}
			}
		}
	}

	now := time.Now()
	priority := 1
	if settings != nil && in.TipAmount >= settings.PriorityTipThreshold {
		priority = 2
	}

	request := &models.SongRequest{
		ID:            uuid.NewString(),
		PerformerID:   in.PerformerID,
		RequesterID:   in.RequesterID,
		RequesterName: in.RequesterName,
		SongTitle:     in.SongTitle,
		Artist:        in.Artist,
		TipAmount:     in.TipAmount,
		Status:        models.StatusPending,
		Priority:      priority,
		Notes:         in.Notes,
		RequestedAt:   now,
	}

	if err := s.store.PutRequest(request); err != nil {
		return nil, fmt.Errorf("failed to save song request: %w", err)
	}

	if in.TipAmount > 0 {
		description := in.SongTitle
		if in.Artist != "" {
			description = fmt.Sprintf("%s by %s", in.SongTitle, in.Artist)
		}
		source := fmt.Sprintf("Song request from %s", in.RequesterName)
		if err := s.ledger.Credit(in.PerformerID, in.TipAmount, models.EarningTypeSongRequest, source, description, now); err != nil {
			slog.Error("Failed to record song request earnings", "error", err, "request_id", request.ID)
		}
	}

	return request, nil
}

// pendingQueueSize counts requests occupying queue capacity. A playing
// request no longer holds a slot.
func (s *QueueService) pendingQueueSize(performerID string) (int, error) {
	requests, err := s.store.RequestsByPerformer(performerID)
	if err != nil {
		return 0, fmt.Errorf("failed to query song requests: %w", err)
	}
	count := 0
	for _, r := range requests {
		if r.Status == models.StatusPending || r.Status == models.StatusAccepted {
			count++
		}
	}
	return count, nil
}

// GetQueue returns the live queue: playing first, then by priority (higher
// first), then by request time (older first). The ordering is recomputed on
// every call.
func (s *QueueService) GetQueue(performerID string) ([]*models.SongRequest, error) {
	requests, err := s.store.RequestsByPerformer(performerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query song requests: %w", err)
	}

	var queue []*models.SongRequest
	for _, r := range requests {
		if r.InQueue() {
			queue = append(queue, r)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		a, b := queue[i], queue[j]
		if (a.Status == models.StatusPlaying) != (b.Status == models.StatusPlaying) {
			return a.Status == models.StatusPlaying
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.RequestedAt.Before(b.RequestedAt)
	})

	return queue, nil
}

// ListRequests returns a performer's requests, terminal ones included,
// optionally filtered by status. A limit of 0 means the default of 50.
func (s *QueueService) ListRequests(performerID string, status models.RequestStatus, limit int) ([]*models.SongRequest, error) {
	requests, err := s.store.RequestsByPerformer(performerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query song requests: %w", err)
	}

	if status != "" {
		filtered := requests[:0]
		for _, r := range requests {
			if r.Status == status {
				filtered = append(filtered, r)
			}
		}
		requests = filtered
	}

	if limit <= 0 {
		limit = 50
	}
	if len(requests) > limit {
		requests = requests[:limit]
	}
	return requests, nil
}

// GetRequest returns a single request by id.
func (s *QueueService) GetRequest(requestID string) (*models.SongRequest, error) {
	request, err := s.store.GetRequest(requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up song request: %w", err)
	}
	if request == nil {
		return nil, &NotFoundError{Resource: "song request", ID: requestID}
	}
	return request, nil
}

// Accept moves a pending request to accepted. Any other starting status is an
// invalid transition.
func (s *QueueService) Accept(requestID string) (*models.SongRequest, error) {
	return s.withRequest(requestID, func(request *models.SongRequest) error {
		if request.Status != models.StatusPending {
			return &InvalidTransitionError{Op: "accept", From: request.Status}
		}
		request.Status = models.StatusAccepted
		return nil
	})
}

// Decline moves any non-terminal request to declined and stamps processedAt.
// A reason replaces the request's notes.
func (s *QueueService) Decline(requestID, reason string) (*models.SongRequest, error) {
	return s.withRequest(requestID, func(request *models.SongRequest) error {
		if request.Status.Terminal() {
			return &InvalidTransitionError{Op: "decline", From: request.Status}
		}
		now := time.Now()
		request.Status = models.StatusDeclined
		request.ProcessedAt = &now
		if reason != "" {
			request.Notes = fmt.Sprintf("Declined: %s", reason)
		}
		return nil
	})
}

// MarkCompleted force-completes a request regardless of its current status.
// It is the escape hatch for completions outside the play-next flow.
func (s *QueueService) MarkCompleted(requestID string) (*models.SongRequest, error) {
	return s.withRequest(requestID, func(request *models.SongRequest) error {
		now := time.Now()
		request.Status = models.StatusCompleted
		request.ProcessedAt = &now
		return nil
	})
}

// UpdateStatus sets an arbitrary status with no transition guard, stamping
// processedAt when the new status is terminal.
func (s *QueueService) UpdateStatus(requestID string, status models.RequestStatus) (*models.SongRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	return s.withRequest(requestID, func(request *models.SongRequest) error {
		request.Status = status
		if status.Terminal() {
			now := time.Now()
			request.ProcessedAt = &now
		}
		return nil
	})
}

// withRequest loads a request, serializes on its performer, re-reads it under
// the lock and persists the mutation if fn succeeds.
func (s *QueueService) withRequest(requestID string, fn func(*models.SongRequest) error) (*models.SongRequest, error) {
	request, err := s.store.GetRequest(requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up song request: %w", err)
	}
	if request == nil {
		return nil, &NotFoundError{Resource: "song request", ID: requestID}
	}

	lock := s.lockPerformer(request.PerformerID)
	lock.Lock()
	defer lock.Unlock()

	request, err = s.store.GetRequest(requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up song request: %w", err)
	}
	if request == nil {
		return nil, &NotFoundError{Resource: "song request", ID: requestID}
	}

	if err := fn(request); err != nil {
		return nil, err
	}
	if err := s.store.PutRequest(request); err != nil {
		return nil, fmt.Errorf("failed to save song request: %w", err)
	}
	return request, nil
}

// PlayNext completes the currently playing request, if any, and promotes the
// head of the queue to playing. It returns nil when nothing is eligible.
func (s *QueueService) PlayNext(performerID string) (*models.SongRequest, error) {
	lock := s.lockPerformer(performerID)
	lock.Lock()
	defer lock.Unlock()

	queue, err := s.GetQueue(performerID)
	if err != nil {
		return nil, err
	}

	for _, r := range queue {
		if r.Status == models.StatusPlaying {
			now := time.Now()
			r.Status = models.StatusCompleted
			r.ProcessedAt = &now
			if err := s.store.PutRequest(r); err != nil {
				return nil, fmt.Errorf("failed to complete playing request: %w", err)
			}
			break
		}
	}

	for _, r := range queue {
		if r.Status == models.StatusAccepted || r.Status == models.StatusPending {
			r.Status = models.StatusPlaying
			if err := s.store.PutRequest(r); err != nil {
				return nil, fmt.Errorf("failed to promote next request: %w", err)
			}
			return r, nil
		}
	}

	return nil, nil
}

// Reorder imposes an explicit order on the live queue. Every id must be in
// the queue. Non-playing requests get a dense descending priority rank, which
// overwrites the tip-derived tier.
func (s *QueueService) Reorder(performerID string, requestIDs []string) ([]*models.SongRequest, error) {
	lock := s.lockPerformer(performerID)
	lock.Lock()
	defer lock.Unlock()

	queue, err := s.GetQueue(performerID)
	if err != nil {
		return nil, err
	}

	inQueue := make(map[string]*models.SongRequest, len(queue))
	for _, r := range queue {
		inQueue[r.ID] = r
	}
	for _, id := range requestIDs {
		if _, ok := inQueue[id]; !ok {
			return nil, &NotFoundError{Resource: "song request", ID: id}
		}
	}

	for i, id := range requestIDs {
		r := inQueue[id]
		if r.Status == models.StatusPlaying {
			continue
		}
		r.Priority = len(requestIDs) - i
		if err := s.store.PutRequest(r); err != nil {
			return nil, fmt.Errorf("failed to save reordered request: %w", err)
		}
	}

	return s.GetQueue(performerID)
}

// Clear empties the live queue, declining (or completing, when
// markAsCompleted is set) every non-playing request. It returns the number of
// requests affected; a playing request is untouched.
func (s *QueueService) Clear(performerID string, markAsCompleted bool) (int, error) {
	lock := s.lockPerformer(performerID)
	lock.Lock()
	defer lock.Unlock()

	queue, err := s.GetQueue(performerID)
	if err != nil {
		return 0, err
	}

	status := models.StatusDeclined
	if markAsCompleted {
		status = models.StatusCompleted
	}

	count := 0
	for _, r := range queue {
		if r.Status == models.StatusPlaying {
			continue
		}
		now := time.Now()
		r.Status = status
		r.ProcessedAt = &now
		if err := s.store.PutRequest(r); err != nil {
			return count, fmt.Errorf("failed to clear request: %w", err)
		}
		count++
	}

	return count, nil
}
