package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeSourceLoaded  ActivityType = "source_loaded"
	TypeEditsApplied  ActivityType = "edits_applied"
	TypeSaved         ActivityType = "saved"
	TypeReloaded      ActivityType = "reloaded"
	TypeStaleDetected ActivityType = "stale_detected"
	TypeRouteExported ActivityType = "route_exported"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	SessionID    string       `json:"session_id"`
	ActivityType ActivityType `json:"type"`
	Municipality string       `json:"municipio,omitempty"`
	Page         string       `json:"page,omitempty"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	Rows         int          `json:"rows"`
	CreatedAt    time.Time    `json:"created_at"`
}
