package payments

import (
	"context"

	"github.com/alexvielma/bingove/internal/bingo"
	"github.com/alexvielma/bingove/internal/common/clock"
	"github.com/alexvielma/bingove/internal/common/uuid"
	"github.com/alexvielma/bingove/internal/models"
	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	gameService "github.com/alexvielma/bingove/internal/services/game"
)

// service implements the Service interface
type service struct {
	config      *Config
	ledgerRepo  ledgerRepo.Repository
	gameService gameService.Service
	roller      *bingo.Roller
	clock       clock.Clock
	uuider      uuid.UUID
}

// NewService creates a new payments service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}
	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}
	if cfg.Roller == nil {
		return nil, ErrNilRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUID == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.JackpotReservePercent <= 0 {
		cfg.JackpotReservePercent = DefaultJackpotReservePercent
	}

	return &service{
		config:      cfg,
		ledgerRepo:  cfg.LedgerRepo,
		gameService: cfg.GameService,
		roller:      cfg.Roller,
		clock:       cfg.Clock,
		uuider:      cfg.UUID,
	}, nil
}

// CreatePaymentRequest records a buyer's purchase for operator review
func (s *service) CreatePaymentRequest(ctx context.Context, input *CreatePaymentRequestInput) (*CreatePaymentRequestOutput, error) {
	if input.UserID == "" {
		return nil, ErrEmptyUserID
	}
	if input.TicketsCount <= 0 {
		return nil, ErrInvalidTicketsCount
	}
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	payment := &models.PaymentRequest{
		ID:           s.uuider.NewUUID(),
		UserID:       input.UserID,
		TicketsCount: input.TicketsCount,
		Amount:       input.Amount,
		Reference:    input.Reference,
		Phone:        input.Phone,
		Last4Digits:  input.Last4Digits,
		Status:       models.PaymentStatusPending,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.ledgerRepo.SavePayment(ctx, &ledgerRepo.SavePaymentInput{Payment: payment}); err != nil {
		return nil, err
	}

	return &CreatePaymentRequestOutput{Payment: payment}, nil
}

// ApprovePayment approves a pending request. The durable side (status flip,
// ticket issue, pool credit) commits as one ledger transaction; the live
// ticket-count credit is a second, shared-record transaction. A crash between
// the two is the accepted partial-failure window: the ledger side is
// idempotent, so the operator retries and only the live counter can lag,
// never double-issue.
func (s *service) ApprovePayment(ctx context.Context, input *ApprovePaymentInput) (*ApprovePaymentOutput, error) {
	payment, err := s.ledgerRepo.GetPayment(ctx, &ledgerRepo.GetPaymentInput{PaymentID: input.PaymentID})
	if err != nil {
		return nil, err
	}

	record, err := s.gameService.GetGame(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tickets := make([]*models.Ticket, 0, payment.TicketsCount)
	for i := 0; i < payment.TicketsCount; i++ {
		card := s.roller.Card()
		tickets = append(tickets, &models.Ticket{
			ID:           s.uuider.NewUUID(),
			UserID:       payment.UserID,
			DrawID:       record.DrawID,
			Grid:         card,
			Numbers:      bingo.PlayableNumbers(card),
			PurchaseTime: now,
		})
	}

	err = s.ledgerRepo.ApprovePayment(ctx, &ledgerRepo.ApprovePaymentInput{
		PaymentID:     payment.ID,
		ReviewedAt:    now,
		Tickets:       tickets,
		RevenueCredit: payment.Amount,
		JackpotCredit: payment.Amount * s.config.JackpotReservePercent / 100,
	})
	if err != nil {
		return nil, err
	}

	credit, err := s.gameService.CreditTicketsSold(ctx, &gameService.CreditTicketsSoldInput{
		Count: payment.TicketsCount,
	})
	if err != nil {
		return nil, err
	}

	return &ApprovePaymentOutput{
		Tickets:     tickets,
		AutoStarted: credit.AutoStarted,
		Record:      credit.Record,
	}, nil
}

// RejectPayment rejects a pending request
func (s *service) RejectPayment(ctx context.Context, input *RejectPaymentInput) (*RejectPaymentOutput, error) {
	err := s.ledgerRepo.RejectPayment(ctx, &ledgerRepo.RejectPaymentInput{
		PaymentID:  input.PaymentID,
		ReviewedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	return &RejectPaymentOutput{}, nil
}

// ListPendingPayments returns requests awaiting review
func (s *service) ListPendingPayments(ctx context.Context, input *ListPendingPaymentsInput) (*ListPendingPaymentsOutput, error) {
	paymentList, err := s.ledgerRepo.ListPaymentsByStatus(ctx, &ledgerRepo.ListPaymentsByStatusInput{
		Status: models.PaymentStatusPending,
	})
	if err != nil {
		return nil, err
	}
	return &ListPendingPaymentsOutput{Payments: paymentList}, nil
}

// ListUserPayments returns one buyer's requests
func (s *service) ListUserPayments(ctx context.Context, input *ListUserPaymentsInput) (*ListUserPaymentsOutput, error) {
	if input.UserID == "" {
		return nil, ErrEmptyUserID
	}

	paymentList, err := s.ledgerRepo.ListPaymentsByUser(ctx, &ledgerRepo.ListPaymentsByUserInput{
		UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}
	return &ListUserPaymentsOutput{Payments: paymentList}, nil
}

// ListUserTickets returns one user's live tickets
func (s *service) ListUserTickets(ctx context.Context, input *ListUserTicketsInput) (*ListUserTicketsOutput, error) {
	if input.UserID == "" {
		return nil, ErrEmptyUserID
	}

	tickets, err := s.ledgerRepo.ListTicketsByUser(ctx, &ledgerRepo.ListTicketsByUserInput{
		UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}
	return &ListUserTicketsOutput{Tickets: tickets}, nil
}

// GetPool returns the accumulated revenue and jackpot balances
func (s *service) GetPool(ctx context.Context, input *GetPoolInput) (*GetPoolOutput, error) {
	pool, err := s.ledgerRepo.GetPool(ctx)
	if err != nil {
		return nil, err
	}
	return &GetPoolOutput{Pool: pool}, nil
}
