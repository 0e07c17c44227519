package ledger

import (
	"context"

	"github.com/alexvielma/bingove/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/alexvielma/bingove/internal/repositories/ledger Repository

// Repository is the durable side of the system: payment requests, issued
// tickets, the accumulating prize pool and the per-draw archive.
type Repository interface {
	// SavePayment persists a new payment request
	SavePayment(ctx context.Context, input *SavePaymentInput) error

	// GetPayment retrieves a payment request by ID
	GetPayment(ctx context.Context, input *GetPaymentInput) (*models.PaymentRequest, error)

	// ListPaymentsByStatus returns payment requests in a given review state
	ListPaymentsByStatus(ctx context.Context, input *ListPaymentsByStatusInput) ([]*models.PaymentRequest, error)

	// ListPaymentsByUser returns a buyer's payment requests, newest first
	ListPaymentsByUser(ctx context.Context, input *ListPaymentsByUserInput) ([]*models.PaymentRequest, error)

	// ApprovePayment marks a pending payment approved, inserts its tickets and
	// credits the prize pool in one transaction. Approving a payment that is
	// not pending fails with ErrPaymentReviewed and changes nothing.
	ApprovePayment(ctx context.Context, input *ApprovePaymentInput) error

	// RejectPayment marks a pending payment rejected
	RejectPayment(ctx context.Context, input *RejectPaymentInput) error

	// GetTicket retrieves a ticket by ID
	GetTicket(ctx context.Context, input *GetTicketInput) (*models.Ticket, error)

	// ListTicketsByUser returns a user's live tickets, newest first
	ListTicketsByUser(ctx context.Context, input *ListTicketsByUserInput) ([]*models.Ticket, error)

	// ListTicketsByDraw returns all live tickets of a draw
	ListTicketsByDraw(ctx context.Context, input *ListTicketsByDrawInput) ([]*models.Ticket, error)

	// CountTickets returns the number of live tickets
	CountTickets(ctx context.Context) (int, error)

	// GetPool returns the accumulated revenue and jackpot balances
	GetPool(ctx context.Context) (*models.PrizePool, error)

	// ArchiveGame snapshots a finished draw and moves its live tickets into
	// the archive in bounded-size batches. Re-archiving an already archived
	// ticket is a no-op, so a failed run can be retried.
	ArchiveGame(ctx context.Context, input *ArchiveGameInput) (*ArchiveGameOutput, error)

	// GetArchivedGame retrieves an archived draw by ID
	GetArchivedGame(ctx context.Context, input *GetArchivedGameInput) (*models.ArchivedGame, error)

	// Reset destructively wipes payments and live tickets. The prize pool is
	// untouched: the jackpot accumulates across draws.
	Reset(ctx context.Context) error
}
