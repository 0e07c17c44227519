package models

import (
	"time"
)

// PaymentStatus represents the review state of a payment request
type PaymentStatus string

const (
	// PaymentStatusPending indicates the request awaits operator review
	PaymentStatusPending PaymentStatus = "pending"

	// PaymentStatusApproved indicates the operator approved the payment
	PaymentStatusApproved PaymentStatus = "approved"

	// PaymentStatusRejected indicates the operator rejected the payment
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentRequest is a buyer's manually-verified payment reference. Approval is
// the only transition with side effects outside the ledger: it issues tickets,
// credits the prize pool and may auto-start the draw.
type PaymentRequest struct {
	// ID is the unique identifier for the request
	ID string `json:"id"`

	// UserID is the buyer
	UserID string `json:"userId"`

	// TicketsCount is how many tickets the buyer paid for
	TicketsCount int `json:"ticketsCount"`

	// Amount is the reported payment amount
	Amount float64 `json:"amount"`

	// Reference is the bank transfer reference supplied by the buyer
	Reference string `json:"reference"`

	// Phone is the buyer's contact phone
	Phone string `json:"phone"`

	// Last4Digits identifies the paying account, optional
	Last4Digits string `json:"last4Digits,omitempty"`

	// Status is the review state
	Status PaymentStatus `json:"status"`

	// CreatedAt is when the buyer submitted the request
	CreatedAt time.Time `json:"createdAt"`

	// ReviewedAt is when the operator decided, zero while pending
	ReviewedAt time.Time `json:"reviewedAt,omitempty"`
}
