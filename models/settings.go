package models

// SongRequestSettings controls admission of new requests for one performer.
// Settings are created lazily; a performer without a row admits everything.
type SongRequestSettings struct {
	PerformerID          string   `json:"performer_id"`
	IsAcceptingRequests  bool     `json:"is_accepting_requests"`
	MinimumTip           float64  `json:"minimum_tip"`
	PriorityTipThreshold float64  `json:"priority_tip_threshold"`
	MaxQueueSize         int      `json:"max_queue_size"`
	BlockedSongs         []string `json:"blocked_songs"`
	PreferredGenres      []string `json:"preferred_genres"`
}

// DefaultSettings returns the documented defaults for a performer.
func DefaultSettings(performerID string) *SongRequestSettings {
	return &SongRequestSettings{
		PerformerID:          performerID,
		IsAcceptingRequests:  true,
		MinimumTip:           5,
		PriorityTipThreshold: 20,
		MaxQueueSize:         25,
		BlockedSongs:         []string{},
		PreferredGenres:      []string{},
	}
}

// SettingsUpdate carries a partial settings change; nil fields keep prior values.
type SettingsUpdate struct {
	IsAcceptingRequests  *bool     `json:"is_accepting_requests,omitempty"`
	MinimumTip           *float64  `json:"minimum_tip,omitempty"`
	PriorityTipThreshold *float64  `json:"priority_tip_threshold,omitempty"`
	MaxQueueSize         *int      `json:"max_queue_size,omitempty"`
	BlockedSongs         *[]string `json:"blocked_songs,omitempty"`
	PreferredGenres      *[]string `json:"preferred_genres,omitempty"`
}
