package services

import (
	"fmt"

	"Encore/models"
	"Encore/store"
)

// SettingsService manages per-performer admission settings. Settings are
// created lazily: the first read persists the documented defaults.
type SettingsService struct {
	store store.SettingsStore
}

func NewSettingsService(st store.SettingsStore) *SettingsService {
	return &SettingsService{store: st}
}

func (s *SettingsService) GetSettings(performerID string) (*models.SongRequestSettings, error) {
	settings, err := s.store.GetSettings(performerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		settings = models.DefaultSettings(performerID)
		if err := s.store.PutSettings(settings); err != nil {
			return nil, fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return settings, nil
}

// UpdateSettings merges only the provided fields onto existing-or-default
// settings; unset fields keep their prior values.
func (s *SettingsService) UpdateSettings(performerID string, update models.SettingsUpdate) (*models.SongRequestSettings, error) {
	settings, err := s.store.GetSettings(performerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		settings = models.DefaultSettings(performerID)
	}

	if update.IsAcceptingRequests != nil {
		settings.IsAcceptingRequests = *update.IsAcceptingRequests
	}
	if update.MinimumTip != nil {
		settings.MinimumTip = *update.MinimumTip
	}
	if update.PriorityTipThreshold != nil {
		settings.PriorityTipThreshold = *update.PriorityTipThreshold
	}
	if update.MaxQueueSize != nil {
		settings.MaxQueueSize = *update.MaxQueueSize
	}
	if update.BlockedSongs != nil {
		settings.BlockedSongs = *update.BlockedSongs
	}
	if update.PreferredGenres != nil {
		settings.PreferredGenres = *update.PreferredGenres
	}

	if err := s.store.PutSettings(settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
