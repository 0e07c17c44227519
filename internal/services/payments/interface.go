package payments

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/alexvielma/bingove/internal/services/payments Service

// Service owns the durable purchase ledger. Approval is its only operation
// with side effects outside the ledger: it issues cards, credits the prize
// pool and may auto-start the draw.
type Service interface {
	// CreatePaymentRequest records a buyer's purchase for operator review
	CreatePaymentRequest(ctx context.Context, input *CreatePaymentRequestInput) (*CreatePaymentRequestOutput, error)

	// ApprovePayment approves a pending request: issues tickets, credits the
	// pool and bumps the live record's sold-ticket count. Approving the same
	// payment twice fails without issuing tickets again.
	ApprovePayment(ctx context.Context, input *ApprovePaymentInput) (*ApprovePaymentOutput, error)

	// RejectPayment rejects a pending request
	RejectPayment(ctx context.Context, input *RejectPaymentInput) (*RejectPaymentOutput, error)

	// ListPendingPayments returns requests awaiting review
	ListPendingPayments(ctx context.Context, input *ListPendingPaymentsInput) (*ListPendingPaymentsOutput, error)

	// ListUserPayments returns one buyer's requests
	ListUserPayments(ctx context.Context, input *ListUserPaymentsInput) (*ListUserPaymentsOutput, error)

	// ListUserTickets returns one user's live tickets
	ListUserTickets(ctx context.Context, input *ListUserTicketsInput) (*ListUserTicketsOutput, error)

	// GetPool returns the accumulated revenue and jackpot balances
	GetPool(ctx context.Context, input *GetPoolInput) (*GetPoolOutput, error)
}
