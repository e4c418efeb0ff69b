package database

import (
	"fmt"
)

func RunMigrations() error {
	performersSQL := `
	CREATE TABLE IF NOT EXISTS performers (
		id VARCHAR(64) PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		stage_name VARCHAR(255) NOT NULL DEFAULT '',
		is_admin BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := DB.Exec(performersSQL); err != nil {
		return fmt.Errorf("failed to run performers migration: %w", err)
	}

	requestsSQL := `
	CREATE TABLE IF NOT EXISTS song_requests (
		id VARCHAR(64) PRIMARY KEY,
		performer_id VARCHAR(64) NOT NULL,
		requester_id VARCHAR(64) NOT NULL,
		requester_name VARCHAR(255) NOT NULL,
		song_title VARCHAR(255) NOT NULL,
		artist VARCHAR(255) DEFAULT '',
		tip_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		priority INTEGER NOT NULL DEFAULT 1,
		notes TEXT DEFAULT '',
		requested_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		processed_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_song_requests_performer ON song_requests(performer_id);
	CREATE INDEX IF NOT EXISTS idx_song_requests_status ON song_requests(performer_id, status);
	`
	if _, err := DB.Exec(requestsSQL); err != nil {
		return fmt.Errorf("failed to run song_requests migration: %w", err)
	}

	settingsSQL := `
	CREATE TABLE IF NOT EXISTS song_request_settings (
		performer_id VARCHAR(64) PRIMARY KEY,
		is_accepting_requests BOOLEAN NOT NULL DEFAULT TRUE,
		minimum_tip DOUBLE PRECISION NOT NULL DEFAULT 5,
		priority_tip_threshold DOUBLE PRECISION NOT NULL DEFAULT 20,
		max_queue_size INTEGER NOT NULL DEFAULT 25,
		blocked_songs JSONB NOT NULL DEFAULT '[]',
		preferred_genres JSONB NOT NULL DEFAULT '[]'
	);
	`
	if _, err := DB.Exec(settingsSQL); err != nil {
		return fmt.Errorf("failed to run song_request_settings migration: %w", err)
	}

	earningsSQL := `
	CREATE TABLE IF NOT EXISTS earnings (
		id VARCHAR(64) PRIMARY KEY,
		performer_id VARCHAR(64) NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		currency VARCHAR(10) NOT NULL DEFAULT 'USD',
		type VARCHAR(50) NOT NULL,
		source TEXT DEFAULT '',
		description TEXT DEFAULT '',
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_earnings_performer ON earnings(performer_id);
	`
	if _, err := DB.Exec(earningsSQL); err != nil {
		return fmt.Errorf("failed to run earnings migration: %w", err)
	}

	return nil
}
