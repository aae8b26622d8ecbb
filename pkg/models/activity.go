package models

import (
	"time"
)

// ActivityLog is one append-only audit record. The global log keeps the 100
// most recent entries, newest first; older entries are dropped silently.
type ActivityLog struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserEmail string    `json:"userEmail"`
	Message   string    `json:"message"`
}
