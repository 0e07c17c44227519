package ledger

import (
	"time"

	"github.com/alexvielma/bingove/internal/models"
)

// SavePaymentInput holds the payment request to persist
type SavePaymentInput struct {
	Payment *models.PaymentRequest
}

// GetPaymentInput identifies a payment request
type GetPaymentInput struct {
	PaymentID string
}

// ListPaymentsByStatusInput filters payments by review state
type ListPaymentsByStatusInput struct {
	Status models.PaymentStatus
}

// ListPaymentsByUserInput filters payments by buyer
type ListPaymentsByUserInput struct {
	UserID string
}

// ApprovePaymentInput holds everything the approval transaction writes
type ApprovePaymentInput struct {
	PaymentID  string
	ReviewedAt time.Time

	// Tickets are the freshly generated cards to issue
	Tickets []*models.Ticket

	// RevenueCredit is added to the pool's total revenue
	RevenueCredit float64

	// JackpotCredit is the reserve fraction added to the jackpot balance
	JackpotCredit float64
}

// RejectPaymentInput identifies the payment to reject
type RejectPaymentInput struct {
	PaymentID  string
	ReviewedAt time.Time
}

// GetTicketInput identifies a ticket
type GetTicketInput struct {
	TicketID string
}

// ListTicketsByUserInput filters tickets by owner
type ListTicketsByUserInput struct {
	UserID string
}

// ListTicketsByDrawInput filters tickets by draw
type ListTicketsByDrawInput struct {
	DrawID string
}

// ArchiveGameInput holds the snapshot to archive
type ArchiveGameInput struct {
	Archive *models.ArchivedGame

	// BatchSize bounds each archive/delete chunk; defaults to 200
	BatchSize int
}

// ArchiveGameOutput reports how many tickets were moved
type ArchiveGameOutput struct {
	ArchivedTickets int
}

// GetArchivedGameInput identifies an archived draw
type GetArchivedGameInput struct {
	DrawID string
}
