package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"Encore/models"
)

// PostgresStore persists through the shared connection pool. Queue ordering is
// still computed in the service layer; queries here only filter by performer.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) GetRequest(id string) (*models.SongRequest, error) {
	row := p.db.QueryRow(
		`SELECT id, performer_id, requester_id, requester_name, song_title, artist,
		        tip_amount, status, priority, notes, requested_at, processed_at
		 FROM song_requests WHERE id = $1`,
		id,
	)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song request: %w", err)
	}
	return req, nil
}

func (p *PostgresStore) PutRequest(req *models.SongRequest) error {
	var processedAt sql.NullTime
	if req.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *req.ProcessedAt, Valid: true}
	}

	_, err := p.db.Exec(
		`INSERT INTO song_requests
		   (id, performer_id, requester_id, requester_name, song_title, artist,
		    tip_amount, status, priority, notes, requested_at, processed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE SET
		   status = EXCLUDED.status,
		   priority = EXCLUDED.priority,
		   notes = EXCLUDED.notes,
		   processed_at = EXCLUDED.processed_at`,
		req.ID, req.PerformerID, req.RequesterID, req.RequesterName, req.SongTitle,
		req.Artist, req.TipAmount, string(req.Status), req.Priority, req.Notes,
		req.RequestedAt, processedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put song request: %w", err)
	}
	return nil
}

func (p *PostgresStore) RequestsByPerformer(performerID string) ([]*models.SongRequest, error) {
	rows, err := p.db.Query(
		`SELECT id, performer_id, requester_id, requester_name, song_title, artist,
		        tip_amount, status, priority, notes, requested_at, processed_at
		 FROM song_requests WHERE performer_id = $1
		 ORDER BY requested_at, id`,
		performerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query song requests: %w", err)
	}
	defer rows.Close()

	var out []*models.SongRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*models.SongRequest, error) {
	var req models.SongRequest
	var status string
	var processedAt sql.NullTime
	err := row.Scan(
		&req.ID, &req.PerformerID, &req.RequesterID, &req.RequesterName,
		&req.SongTitle, &req.Artist, &req.TipAmount, &status, &req.Priority,
		&req.Notes, &req.RequestedAt, &processedAt,
	)
	if err != nil {
		return nil, err
	}
	req.Status = models.RequestStatus(status)
	if processedAt.Valid {
		req.ProcessedAt = &processedAt.Time
	}
	return &req, nil
}

func (p *PostgresStore) GetSettings(performerID string) (*models.SongRequestSettings, error) {
	var s models.SongRequestSettings
	var blocked, genres []byte
	err := p.db.QueryRow(
		`SELECT performer_id, is_accepting_requests, minimum_tip, priority_tip_threshold,
		        max_queue_size, blocked_songs, preferred_genres
		 FROM song_request_settings WHERE performer_id = $1`,
		performerID,
	).Scan(
		&s.PerformerID, &s.IsAcceptingRequests, &s.MinimumTip, &s.PriorityTipThreshold,
		&s.MaxQueueSize, &blocked, &genres,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if err := json.Unmarshal(blocked, &s.BlockedSongs); err != nil {
		return nil, fmt.Errorf("failed to decode blocked songs: %w", err)
	}
	if err := json.Unmarshal(genres, &s.PreferredGenres); err != nil {
		return nil, fmt.Errorf("failed to decode preferred genres: %w", err)
	}
	return &s, nil
}

func (p *PostgresStore) PutSettings(settings *models.SongRequestSettings) error {
	blocked, err := json.Marshal(settings.BlockedSongs)
	if err != nil {
		return fmt.Errorf("failed to encode blocked songs: %w", err)
	}
	genres, err := json.Marshal(settings.PreferredGenres)
	if err != nil {
		return fmt.Errorf("failed to encode preferred genres: %w", err)
	}

	_, err = p.db.Exec(
		`INSERT INTO song_request_settings
		   (performer_id, is_accepting_requests, minimum_tip, priority_tip_threshold,
		    max_queue_size, blocked_songs, preferred_genres)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (performer_id) DO UPDATE SET
		   is_accepting_requests = EXCLUDED.is_accepting_requests,
		   minimum_tip = EXCLUDED.minimum_tip,
		   priority_tip_threshold = EXCLUDED.priority_tip_threshold,
		   max_queue_size = EXCLUDED.max_queue_size,
		   blocked_songs = EXCLUDED.blocked_songs,
		   preferred_genres = EXCLUDED.preferred_genres`,
		settings.PerformerID, settings.IsAcceptingRequests, settings.MinimumTip,
		settings.PriorityTipThreshold, settings.MaxQueueSize, blocked, genres,
	)
	if err != nil {
		return fmt.Errorf("failed to put settings: %w", err)
	}
	return nil
}

func (p *PostgresStore) GetPerformer(id string) (*models.Performer, error) {
	return p.performerBy("id", id)
}

func (p *PostgresStore) GetPerformerByUsername(username string) (*models.Performer, error) {
	return p.performerBy("username", username)
}

func (p *PostgresStore) performerBy(column, value string) (*models.Performer, error) {
	var perf models.Performer
	err := p.db.QueryRow(
		`SELECT id, username, email, password_hash, stage_name, is_admin, created_at, updated_at
		 FROM performers WHERE `+column+` = $1`,
		value,
	).Scan(
		&perf.ID, &perf.Username, &perf.Email, &perf.PasswordHash,
		&perf.StageName, &perf.IsAdmin, &perf.CreatedAt, &perf.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get performer: %w", err)
	}
	return &perf, nil
}

func (p *PostgresStore) PutPerformer(performer *models.Performer) error {
	_, err := p.db.Exec(
		`INSERT INTO performers (id, username, email, password_hash, stage_name, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   email = EXCLUDED.email,
		   password_hash = EXCLUDED.password_hash,
		   stage_name = EXCLUDED.stage_name,
		   is_admin = EXCLUDED.is_admin,
		   updated_at = CURRENT_TIMESTAMP`,
		performer.ID, performer.Username, performer.Email, performer.PasswordHash,
		performer.StageName, performer.IsAdmin, performer.CreatedAt, performer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put performer: %w", err)
	}
	return nil
}

func (p *PostgresStore) PutEarning(earning *models.Earning) error {
	_, err := p.db.Exec(
		`INSERT INTO earnings (id, performer_id, amount, currency, type, source, description, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		earning.ID, earning.PerformerID, earning.Amount, earning.Currency,
		earning.Type, earning.Source, earning.Description, earning.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to put earning: %w", err)
	}
	return nil
}

func (p *PostgresStore) EarningsByPerformer(performerID string) ([]*models.Earning, error) {
	rows, err := p.db.Query(
		`SELECT id, performer_id, amount, currency, type, source, description, timestamp
		 FROM earnings WHERE performer_id = $1
		 ORDER BY timestamp, id`,
		performerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query earnings: %w", err)
	}
	defer rows.Close()

	var out []*models.Earning
	for rows.Next() {
		var e models.Earning
		if err := rows.Scan(
			&e.ID, &e.PerformerID, &e.Amount, &e.Currency,
			&e.Type, &e.Source, &e.Description, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan earning: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
