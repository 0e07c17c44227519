package models

import (
	"time"
)

// GameStatus represents the lifecycle state of the live draw
type GameStatus string

const (
	// GameStatusWaiting indicates ticket sales are open and the draw has not started
	GameStatusWaiting GameStatus = "waiting"

	// GameStatusCountdown indicates the pre-draw countdown is running
	GameStatusCountdown GameStatus = "countdown"

	// GameStatusActive indicates balls are being drawn
	GameStatusActive GameStatus = "active"

	// GameStatusPaused indicates the operator halted ball draws
	GameStatusPaused GameStatus = "paused"

	// GameStatusValidating indicates at least one win claim awaits arbitration
	GameStatusValidating GameStatus = "validating"

	// GameStatusFinished indicates the draw ended, by a confirmed win or exhaustion
	GameStatusFinished GameStatus = "finished"
)

// GameMode controls how balls advance
type GameMode string

const (
	// GameModeAuto advances balls on a timer anchored to LastBallTime
	GameModeAuto GameMode = "auto"

	// GameModeManual advances balls only on operator action
	GameModeManual GameMode = "manual"
)

// PaymentInfo is the routing information buyers use to pay for tickets
type PaymentInfo struct {
	Bank  string `json:"bank"`
	Phone string `json:"phone"`
	CI    string `json:"ci"`
	Name  string `json:"name"`
}

// GameConfig holds the per-draw pricing and sales settings.
// It survives archive-and-reset so the next draw reuses it.
type GameConfig struct {
	// Price is the unit price of one ticket
	Price float64 `json:"price"`

	// Prizes are the payout amounts ordered by prize position
	Prizes []float64 `json:"prizes"`

	// StartTime is the advertised start, informational only
	StartTime string `json:"startTime"`

	// PlayersCount is the advertised player count, informational only
	PlayersCount int `json:"playersCount"`

	// TotalTickets is the number of tickets sold for this draw
	TotalTickets int `json:"totalTickets"`

	// MaxTickets caps sales; reaching it auto-starts the countdown
	MaxTickets int `json:"maxTickets"`

	// PaymentInfo is shown to buyers when purchasing
	PaymentInfo *PaymentInfo `json:"paymentInfo,omitempty"`
}

// GameRecord is the single live record for the current draw. Every field that
// depends on its prior value is mutated only inside a store transaction.
type GameRecord struct {
	// Status is the authoritative lifecycle state
	Status GameStatus `json:"status"`

	// Mode selects timer-driven or operator-driven ball advancement
	Mode GameMode `json:"mode"`

	// CurrentNumber is the last drawn ball, 0 when none has been drawn
	CurrentNumber int `json:"currentNumber"`

	// History holds drawn balls in draw order, no duplicates, at most 75
	History []int `json:"history"`

	// LastBallTime anchors the next scheduled auto draw
	LastBallTime time.Time `json:"lastBallTime"`

	// CountdownStartTime anchors the fixed-length countdown, zero when unset
	CountdownStartTime time.Time `json:"countdownStartTime"`

	// DrawID correlates this record to its archive and issued tickets
	DrawID string `json:"drawId"`

	// Config holds pricing and sales settings
	Config GameConfig `json:"config"`

	// Winners holds claim records in submission order
	Winners []*ClaimRecord `json:"winners"`

	// Version increments on every committed write. Snapshots can be published
	// out of commit order; subscribers drop any version at or below the last
	// one they rendered.
	Version int64 `json:"version"`
}

// TicketClaimed reports whether a ticket already appears in any claim
func (g *GameRecord) TicketClaimed(ticketID string) bool {
	for _, w := range g.Winners {
		if w.TicketID == ticketID {
			return true
		}
	}
	return false
}

// HasPendingClaims reports whether any unverified claim remains
func (g *GameRecord) HasPendingClaims() bool {
	for _, w := range g.Winners {
		if !w.Verified {
			return true
		}
	}
	return false
}

// VerifiedCount returns the number of verified claims
func (g *GameRecord) VerifiedCount() int {
	count := 0
	for _, w := range g.Winners {
		if w.Verified {
			count++
		}
	}
	return count
}
