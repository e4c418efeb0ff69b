package store

import "Encore/models"

// Lookup methods return (nil, nil) when the record does not exist; callers
// decide whether absence is an error or a default.

type RequestStore interface {
	GetRequest(id string) (*models.SongRequest, error)
	PutRequest(req *models.SongRequest) error
	RequestsByPerformer(performerID string) ([]*models.SongRequest, error)
}

type SettingsStore interface {
	GetSettings(performerID string) (*models.SongRequestSettings, error)
	PutSettings(settings *models.SongRequestSettings) error
}

type PerformerStore interface {
	GetPerformer(id string) (*models.Performer, error)
	GetPerformerByUsername(username string) (*models.Performer, error)
	PutPerformer(performer *models.Performer) error
}

type EarningsStore interface {
	PutEarning(earning *models.Earning) error
	EarningsByPerformer(performerID string) ([]*models.Earning, error)
}

// Store is the full persistence surface used by the services. Both the
// in-memory and Postgres implementations satisfy it.
type Store interface {
	RequestStore
	SettingsStore
	PerformerStore
	EarningsStore
}
