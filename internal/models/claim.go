package models

import (
	"time"
)

// PayoutStatus tracks how far along a verified winner's payout is
type PayoutStatus string

const (
	// PayoutStatusPendingInfo means the winner has not supplied payout details yet
	PayoutStatusPendingInfo PayoutStatus = "pending_info"

	// PayoutStatusProcessing means details arrived and the operator is paying
	PayoutStatusProcessing PayoutStatus = "processing_payment"

	// PayoutStatusPaid means the prize was paid out
	PayoutStatusPaid PayoutStatus = "paid"
)

// PayoutDetails is the bank routing information a winner supplies to get paid
type PayoutDetails struct {
	Bank     string `json:"bank"`
	Phone    string `json:"phone"`
	CI       string `json:"ci"`
	Name     string `json:"name,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// ClaimRecord is one claimed card inside GameRecord.Winners. Claims submitted
// together share UserID and Timestamp and form one linked group that is
// verified or rejected as a unit.
type ClaimRecord struct {
	// UserID is the claiming player
	UserID string `json:"userId"`

	// TicketID is the claimed card; a ticket appears at most once across all claims
	TicketID string `json:"ticketId"`

	// Timestamp is the claim instant, shared by all cards of one submission
	Timestamp time.Time `json:"timestamp"`

	// Numbers is the card's 25 row-major cells, 0 for the free cell
	Numbers []int `json:"numbers,omitempty"`

	// FullHouse records the evaluator's verdict at admission time
	FullHouse bool `json:"fullHouse"`

	// Verified is set once the operator confirms the claim
	Verified bool `json:"verified"`

	// PrizePosition is the 1-based rank among verified winners, 0 until verified
	PrizePosition int `json:"prizePosition"`

	// MultiClaimCount is how many cards the user claimed in the same action
	MultiClaimCount int `json:"multiClaimCount,omitempty"`

	// PayoutStatus tracks payout progress once verified
	PayoutStatus PayoutStatus `json:"payoutStatus,omitempty"`

	// PayoutDetails is supplied by the winner after verification
	PayoutDetails *PayoutDetails `json:"payoutDetails,omitempty"`
}

// SameGroup reports whether two claims belong to the same linked group
func (c *ClaimRecord) SameGroup(userID string, ts time.Time) bool {
	return c.UserID == userID && c.Timestamp.Equal(ts)
}
