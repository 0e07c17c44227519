package httpapi

import (
	"time"

	"github.com/alexvielma/bingove/internal/models"
)

// CreatePaymentRequest is a buyer's purchase submission
type CreatePaymentRequest struct {
	UserID       string  `json:"userId"`
	TicketsCount int     `json:"ticketsCount"`
	Amount       float64 `json:"amount"`
	Reference    string  `json:"reference"`
	Phone        string  `json:"phone"`
	Last4Digits  string  `json:"last4Digits"`
}

// ClaimCardRequest is one card inside a claim batch
type ClaimCardRequest struct {
	TicketID string `json:"ticketId"`
	Numbers  []int  `json:"numbers"`
}

// SubmitClaimRequest is a user's atomic batch of claimed cards
type SubmitClaimRequest struct {
	UserID string             `json:"userId"`
	Cards  []ClaimCardRequest `json:"cards"`
}

// PayoutDetailsRequest attaches a winner's bank details to their claim
type PayoutDetailsRequest struct {
	TicketID string                `json:"ticketId"`
	Details  *models.PayoutDetails `json:"details"`
}

// ClaimDecisionRequest identifies a pending claim group by its linked-group key
type ClaimDecisionRequest struct {
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// MarkPaidRequest marks a winner's prize as paid out
type MarkPaidRequest struct {
	TicketID string `json:"ticketId"`
}

// SetModeRequest switches auto/manual ball advancement
type SetModeRequest struct {
	Mode models.GameMode `json:"mode"`
}

// UpdateConfigRequest applies a partial config change; absent fields are untouched
type UpdateConfigRequest struct {
	Price       *float64            `json:"price"`
	Prizes      []float64           `json:"prizes"`
	StartTime   *string             `json:"startTime"`
	MaxTickets  *int                `json:"maxTickets"`
	PaymentInfo *models.PaymentInfo `json:"paymentInfo"`
}

// InitializeGameRequest bootstraps a fresh live record
type InitializeGameRequest struct {
	DrawID string             `json:"drawId"`
	Config *models.GameConfig `json:"config"`
}
