package models

import (
	"time"
)

// Ticket is a durable record of one issued bingo card. Tickets are created
// only by payment approval and are immutable until archived.
type Ticket struct {
	// ID is the unique identifier for the ticket
	ID string `json:"id"`

	// UserID is the owner of the ticket
	UserID string `json:"userId"`

	// DrawID is the draw this ticket plays in
	DrawID string `json:"drawId"`

	// Grid is the full 5x5 card, row-major, 0 for the center free cell
	Grid []int `json:"grid"`

	// Numbers are the 24 playable numbers on the card
	Numbers []int `json:"numbers"`

	// PurchaseTime is when the payment covering this ticket was approved
	PurchaseTime time.Time `json:"purchaseTime"`
}
