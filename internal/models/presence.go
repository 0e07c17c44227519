package models

import (
	"time"
)

// PresenceEntry is one user's ephemeral liveness record. Entries are created
// when a connection opens and deleted when the server observes it close, so
// liveness never depends on clients reporting their own departure.
type PresenceEntry struct {
	UserID   string    `json:"userId"`
	Online   bool      `json:"online"`
	LastSeen time.Time `json:"lastSeen"`
}
