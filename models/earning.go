package models

import "time"

const EarningTypeSongRequest = "song_request"

type Earning struct {
	ID          string    `json:"id"`
	PerformerID string    `json:"performer_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
