package payments

import (
	"github.com/alexvielma/bingove/internal/bingo"
	"github.com/alexvielma/bingove/internal/common/clock"
	"github.com/alexvielma/bingove/internal/common/uuid"
	"github.com/alexvielma/bingove/internal/models"
	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	gameService "github.com/alexvielma/bingove/internal/services/game"
)

// DefaultJackpotReservePercent is the pool fraction reserved for the jackpot
const DefaultJackpotReservePercent = 20.0

// Config holds configuration for the payments service
type Config struct {
	// JackpotReservePercent of every approved amount accumulates in the jackpot
	JackpotReservePercent float64

	// Repository dependencies
	LedgerRepo ledgerRepo.Repository

	// GameService receives the sold-ticket credit on approval
	GameService gameService.Service

	// Service dependencies
	Roller *bingo.Roller
	Clock  clock.Clock
	UUID   uuid.UUID
}

// CreatePaymentRequestInput is a buyer's purchase submission
type CreatePaymentRequestInput struct {
	UserID       string
	TicketsCount int
	Amount       float64
	Reference    string
	Phone        string
	Last4Digits  string
}

// CreatePaymentRequestOutput returns the stored request
type CreatePaymentRequestOutput struct {
	Payment *models.PaymentRequest
}

// ApprovePaymentInput identifies the payment to approve
type ApprovePaymentInput struct {
	PaymentID string
}

// ApprovePaymentOutput reports the approval's side effects
type ApprovePaymentOutput struct {
	// Tickets are the freshly issued cards
	Tickets []*models.Ticket

	// AutoStarted is true when hitting the sales cap kicked off the countdown
	AutoStarted bool

	// Record is the live record after the ticket-count credit
	Record *models.GameRecord
}

// RejectPaymentInput identifies the payment to reject
type RejectPaymentInput struct {
	PaymentID string
}

// RejectPaymentOutput is empty; rejection has no side effects beyond the ledger
type RejectPaymentOutput struct{}

// ListPendingPaymentsInput lists requests awaiting review
type ListPendingPaymentsInput struct{}

// ListPendingPaymentsOutput returns pending requests, oldest first
type ListPendingPaymentsOutput struct {
	Payments []*models.PaymentRequest
}

// ListUserPaymentsInput lists one buyer's requests
type ListUserPaymentsInput struct {
	UserID string
}

// ListUserPaymentsOutput returns the buyer's requests, newest first
type ListUserPaymentsOutput struct {
	Payments []*models.PaymentRequest
}

// ListUserTicketsInput lists one user's live tickets
type ListUserTicketsInput struct {
	UserID string
}

// ListUserTicketsOutput returns the user's live tickets
type ListUserTicketsOutput struct {
	Tickets []*models.Ticket
}

// GetPoolInput reads the pool balances
type GetPoolInput struct{}

// GetPoolOutput returns the accumulated revenue and jackpot
type GetPoolOutput struct {
	Pool *models.PrizePool
}
