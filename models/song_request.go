package models

import "time"

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusPlaying   RequestStatus = "playing"
	StatusCompleted RequestStatus = "completed"
	StatusDeclined  RequestStatus = "declined"
)

// Terminal reports whether no further transitions are allowed from s.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusDeclined
}

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusPlaying, StatusCompleted, StatusDeclined:
		return true
	}
	return false
}

type SongRequest struct {
	ID            string        `json:"id"`
	PerformerID   string        `json:"performer_id"`
	RequesterID   string        `json:"requester_id"`
	RequesterName string        `json:"requester_name"`
	SongTitle     string        `json:"song_title"`
	Artist        string        `json:"artist,omitempty"`
	TipAmount     float64       `json:"tip_amount"`
	Status        RequestStatus `json:"status"`
	// Priority is 2 for tips at or above the performer's threshold, 1 otherwise.
	// A manual reorder overwrites it with a dense descending rank.
	Priority    int        `json:"priority"`
	Notes       string     `json:"notes,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// InQueue reports whether the request counts toward the live queue.
func (r *SongRequest) InQueue() bool {
	return r.Status == StatusPending || r.Status == StatusAccepted || r.Status == StatusPlaying
}
