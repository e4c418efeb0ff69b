package store

import (
	"sort"
	"sync"

	"Encore/models"
)

// MemoryStore keeps everything in maps. It is the default backend when no
// DATABASE_URL is configured and the backend used by the test suite.
type MemoryStore struct {
	mu         sync.RWMutex
	requests   map[string]*models.SongRequest
	settings   map[string]*models.SongRequestSettings
	performers map[string]*models.Performer
	earnings   map[string]*models.Earning
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests:   make(map[string]*models.SongRequest),
		settings:   make(map[string]*models.SongRequestSettings),
		performers: make(map[string]*models.Performer),
		earnings:   make(map[string]*models.Earning),
	}
}

func copyRequest(r *models.SongRequest) *models.SongRequest {
	c := *r
	if r.ProcessedAt != nil {
		t := *r.ProcessedAt
		c.ProcessedAt = &t
	}
	return &c
}

func copySettings(s *models.SongRequestSettings) *models.SongRequestSettings {
	c := *s
	c.BlockedSongs = append([]string(nil), s.BlockedSongs...)
	c.PreferredGenres = append([]string(nil), s.PreferredGenres...)
	return &c
}

func (m *MemoryStore) GetRequest(id string) (*models.SongRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	return copyRequest(r), nil
}

func (m *MemoryStore) PutRequest(req *models.SongRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = copyRequest(req)
	return nil
}

func (m *MemoryStore) RequestsByPerformer(performerID string) ([]*models.SongRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.SongRequest
	for _, r := range m.requests {
		if r.PerformerID == performerID {
			out = append(out, copyRequest(r))
		}
	}
	// Map iteration order is random; hand back something deterministic
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.Before(out[j].RequestedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetSettings(performerID string) (*models.SongRequestSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.settings[performerID]
	if !ok {
		return nil, nil
	}
	return copySettings(s), nil
}

func (m *MemoryStore) PutSettings(settings *models.SongRequestSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[settings.PerformerID] = copySettings(settings)
	return nil
}

func (m *MemoryStore) GetPerformer(id string) (*models.Performer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.performers[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (m *MemoryStore) GetPerformerByUsername(username string) (*models.Performer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.performers {
		if p.Username == username {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) PutPerformer(performer *models.Performer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *performer
	m.performers[performer.ID] = &c
	return nil
}

func (m *MemoryStore) PutEarning(earning *models.Earning) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *earning
	m.earnings[earning.ID] = &c
	return nil
}

func (m *MemoryStore) EarningsByPerformer(performerID string) ([]*models.Earning, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Earning
	for _, e := range m.earnings {
		if e.PerformerID == performerID {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
