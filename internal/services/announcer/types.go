package announcer

import (
	"github.com/alexvielma/bingove/internal/models"
)

// EventType categorizes an announcement
type EventType string

const (
	// EventTypeCountdown fires when the pre-draw countdown starts
	EventTypeCountdown EventType = "countdown"

	// EventTypeGameStarted fires when balls begin to draw
	EventTypeGameStarted EventType = "game_started"

	// EventTypeBallDrawn fires for every new ball
	EventTypeBallDrawn EventType = "ball_drawn"

	// EventTypePaused fires when the operator halts the draw
	EventTypePaused EventType = "paused"

	// EventTypeResumed fires when the draw resumes
	EventTypeResumed EventType = "resumed"

	// EventTypeClaimSubmitted fires when a player shouts bingo
	EventTypeClaimSubmitted EventType = "claim_submitted"

	// EventTypeClaimRejected fires when a pending claim disappears unverified
	EventTypeClaimRejected EventType = "claim_rejected"

	// EventTypeWinnerConfirmed fires when the operator verifies a claim
	EventTypeWinnerConfirmed EventType = "winner_confirmed"

	// EventTypeGameFinished fires when the draw ends
	EventTypeGameFinished EventType = "game_finished"

	// EventTypeNewGame fires when a fresh waiting record replaces the old draw
	EventTypeNewGame EventType = "new_game"
)

// Event is one chat-ready announcement derived from a record change
type Event struct {
	// Type categorizes the announcement
	Type EventType

	// Title is a short headline
	Title string

	// Message is the announcement body
	Message string
}

// DiffInput holds two consecutive record snapshots. Previous may be nil on
// the first snapshot after subscribing; only a new-game event can come out
// of that.
type DiffInput struct {
	Previous *models.GameRecord
	Current  *models.GameRecord
}

// DiffOutput returns the announcements the change produced, in order
type DiffOutput struct {
	Events []*Event
}

// GetPresenceMessageInput announces a viewer-count change
type GetPresenceMessageInput struct {
	Count int
}

// GetPresenceMessageOutput returns the announcement
type GetPresenceMessageOutput struct {
	Message string
}

// Config contains configuration for the announcer service
type Config struct {
	// Seed fixes the variant picker, zero means time-seeded
	Seed int64
}
