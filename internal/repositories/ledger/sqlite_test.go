package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/alexvielma/bingove/internal/models"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite
	repo    *sqliteRepository
	testNow time.Time
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	repo, err := New(":memory:")
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
}

func (s *SQLiteRepositoryTestSuite) TearDownTest() {
	s.repo.Close()
}

func TestSQLiteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) payment(id, userID string, createdAt time.Time) *models.PaymentRequest {
	return &models.PaymentRequest{
		ID:           id,
		UserID:       userID,
		TicketsCount: 2,
		Amount:       4,
		Reference:    "ref-" + id,
		Phone:        "555-0100",
		Status:       models.PaymentStatusPending,
		CreatedAt:    createdAt,
	}
}

func (s *SQLiteRepositoryTestSuite) ticket(id, userID, drawID string) *models.Ticket {
	return &models.Ticket{
		ID:           id,
		UserID:       userID,
		DrawID:       drawID,
		Grid:         []int{1, 16, 31, 46, 61, 2, 17, 32, 47, 62, 3, 18, 0, 48, 63, 4, 19, 33, 49, 64, 5, 20, 34, 50, 65},
		Numbers:      []int{1, 16, 31, 46, 61, 2, 17, 32, 47, 62, 3, 18, 48, 63, 4, 19, 33, 49, 64, 5, 20, 34, 50, 65},
		PurchaseTime: s.testNow,
	}
}

func (s *SQLiteRepositoryTestSuite) TestSaveAndGetPayment() {
	ctx := context.Background()

	want := s.payment("pay-1", "alice", s.testNow)
	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: want}))

	got, err := s.repo.GetPayment(ctx, &GetPaymentInput{PaymentID: "pay-1"})
	s.Require().NoError(err)

	s.Equal("alice", got.UserID)
	s.Equal(2, got.TicketsCount)
	s.Equal(4.0, got.Amount)
	s.Equal("ref-pay-1", got.Reference)
	s.Equal(models.PaymentStatusPending, got.Status)
	s.Equal(s.testNow.Unix(), got.CreatedAt.Unix())
	s.True(got.ReviewedAt.IsZero())
}

func (s *SQLiteRepositoryTestSuite) TestGetMissingPayment() {
	_, err := s.repo.GetPayment(context.Background(), &GetPaymentInput{PaymentID: "nope"})
	s.Require().Error(err)
	s.Equal(ErrPaymentNotFound, err)
}

func (s *SQLiteRepositoryTestSuite) TestListPaymentsByStatusOldestFirst() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-2", "alice", s.testNow.Add(time.Minute))}))
	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-1", "bob", s.testNow)}))

	pending, err := s.repo.ListPaymentsByStatus(ctx, &ListPaymentsByStatusInput{Status: models.PaymentStatusPending})
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal("pay-1", pending[0].ID)
	s.Equal("pay-2", pending[1].ID)

	approved, err := s.repo.ListPaymentsByStatus(ctx, &ListPaymentsByStatusInput{Status: models.PaymentStatusApproved})
	s.Require().NoError(err)
	s.Empty(approved)
}

func (s *SQLiteRepositoryTestSuite) TestListPaymentsByUserNewestFirst() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-1", "alice", s.testNow)}))
	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-2", "alice", s.testNow.Add(time.Minute))}))
	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-3", "bob", s.testNow)}))

	payments, err := s.repo.ListPaymentsByUser(ctx, &ListPaymentsByUserInput{UserID: "alice"})
	s.Require().NoError(err)
	s.Require().Len(payments, 2)
	s.Equal("pay-2", payments[0].ID)
	s.Equal("pay-1", payments[1].ID)
}

func (s *SQLiteRepositoryTestSuite) TestApprovePayment() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-1", "alice", s.testNow)}))

	err := s.repo.ApprovePayment(ctx, &ApprovePaymentInput{
		PaymentID:  "pay-1",
		ReviewedAt: s.testNow.Add(time.Minute),
		Tickets: []*models.Ticket{
			s.ticket("ticket-1", "alice", "draw-1"),
			s.ticket("ticket-2", "alice", "draw-1"),
		},
		RevenueCredit: 4,
		JackpotCredit: 0.8,
	})
	s.Require().NoError(err)

	payment, err := s.repo.GetPayment(ctx, &GetPaymentInput{PaymentID: "pay-1"})
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusApproved, payment.Status)
	s.False(payment.ReviewedAt.IsZero())

	count, err := s.repo.CountTickets(ctx)
	s.Require().NoError(err)
	s.Equal(2, count)

	pool, err := s.repo.GetPool(ctx)
	s.Require().NoError(err)
	s.Equal(4.0, pool.TotalRevenue)
	s.Equal(0.8, pool.Jackpot)
}

func (s *SQLiteRepositoryTestSuite) TestApprovePaymentTwiceIssuesNothing() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-1", "alice", s.testNow)}))

	input := &ApprovePaymentInput{
		PaymentID:     "pay-1",
		ReviewedAt:    s.testNow.Add(time.Minute),
		Tickets:       []*models.Ticket{s.ticket("ticket-1", "alice", "draw-1")},
		RevenueCredit: 2,
		JackpotCredit: 0.4,
	}
	s.Require().NoError(s.repo.ApprovePayment(ctx, input))

	err := s.repo.ApprovePayment(ctx, input)
	s.Require().Error(err)
	s.Equal(ErrPaymentReviewed, err)

	count, err := s.repo.CountTickets(ctx)
	s.Require().NoError(err)
	s.Equal(1, count)

	pool, err := s.repo.GetPool(ctx)
	s.Require().NoError(err)
	s.Equal(2.0, pool.TotalRevenue)
	s.Equal(0.4, pool.Jackpot)
}

func (s *SQLiteRepositoryTestSuite) TestApproveMissingPayment() {
	err := s.repo.ApprovePayment(context.Background(), &ApprovePaymentInput{
		PaymentID:  "nope",
		ReviewedAt: s.testNow,
	})
	s.Require().Error(err)
	s.Equal(ErrPaymentNotFound, err)
}

func (s *SQLiteRepositoryTestSuite) TestRejectPayment() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-1", "alice", s.testNow)}))
	s.Require().NoError(s.repo.RejectPayment(ctx, &RejectPaymentInput{PaymentID: "pay-1", ReviewedAt: s.testNow.Add(time.Minute)}))

	payment, err := s.repo.GetPayment(ctx, &GetPaymentInput{PaymentID: "pay-1"})
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusRejected, payment.Status)

	// Rejection never issues tickets or touches the pool
	count, err := s.repo.CountTickets(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *SQLiteRepositoryTestSuite) TestRejectReviewedPayment() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-1", "alice", s.testNow)}))
	s.Require().NoError(s.repo.RejectPayment(ctx, &RejectPaymentInput{PaymentID: "pay-1", ReviewedAt: s.testNow}))

	err := s.repo.RejectPayment(ctx, &RejectPaymentInput{PaymentID: "pay-1", ReviewedAt: s.testNow})
	s.Require().Error(err)
	s.Equal(ErrPaymentReviewed, err)
}

func (s *SQLiteRepositoryTestSuite) TestRejectMissingPayment() {
	err := s.repo.RejectPayment(context.Background(), &RejectPaymentInput{PaymentID: "nope", ReviewedAt: s.testNow})
	s.Require().Error(err)
	s.Equal(ErrPaymentNotFound, err)
}

func (s *SQLiteRepositoryTestSuite) approveTickets(tickets ...*models.Ticket) {
	ctx := context.Background()

	id := "pay-for-" + tickets[0].ID
	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment(id, tickets[0].UserID, s.testNow)}))
	s.Require().NoError(s.repo.ApprovePayment(ctx, &ApprovePaymentInput{
		PaymentID:  id,
		ReviewedAt: s.testNow,
		Tickets:    tickets,
	}))
}

func (s *SQLiteRepositoryTestSuite) TestGetTicket() {
	ctx := context.Background()

	want := s.ticket("ticket-1", "alice", "draw-1")
	s.approveTickets(want)

	got, err := s.repo.GetTicket(ctx, &GetTicketInput{TicketID: "ticket-1"})
	s.Require().NoError(err)
	s.Equal("alice", got.UserID)
	s.Equal("draw-1", got.DrawID)
	s.Equal(want.Grid, got.Grid)
	s.Equal(want.Numbers, got.Numbers)

	_, err = s.repo.GetTicket(ctx, &GetTicketInput{TicketID: "nope"})
	s.Require().Error(err)
	s.Equal(ErrTicketNotFound, err)
}

func (s *SQLiteRepositoryTestSuite) TestListTickets() {
	ctx := context.Background()

	first := s.ticket("ticket-1", "alice", "draw-1")
	second := s.ticket("ticket-2", "alice", "draw-1")
	second.PurchaseTime = s.testNow.Add(time.Minute)
	other := s.ticket("ticket-3", "bob", "draw-1")
	s.approveTickets(first, second)
	s.approveTickets(other)

	byUser, err := s.repo.ListTicketsByUser(ctx, &ListTicketsByUserInput{UserID: "alice"})
	s.Require().NoError(err)
	s.Require().Len(byUser, 2)
	s.Equal("ticket-2", byUser[0].ID)
	s.Equal("ticket-1", byUser[1].ID)

	byDraw, err := s.repo.ListTicketsByDraw(ctx, &ListTicketsByDrawInput{DrawID: "draw-1"})
	s.Require().NoError(err)
	s.Len(byDraw, 3)

	count, err := s.repo.CountTickets(ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *SQLiteRepositoryTestSuite) TestPoolStartsEmpty() {
	pool, err := s.repo.GetPool(context.Background())
	s.Require().NoError(err)
	s.Equal(0.0, pool.TotalRevenue)
	s.Equal(0.0, pool.Jackpot)
}

func (s *SQLiteRepositoryTestSuite) TestArchiveGameMovesTicketsInBatches() {
	ctx := context.Background()

	tickets := make([]*models.Ticket, 0, 5)
	for i := 1; i <= 5; i++ {
		tickets = append(tickets, s.ticket(fmt.Sprintf("ticket-%d", i), "alice", "draw-1"))
	}
	s.approveTickets(tickets...)

	out, err := s.repo.ArchiveGame(ctx, &ArchiveGameInput{
		Archive: &models.ArchivedGame{
			DrawID: "draw-1",
			Record: models.GameRecord{
				Status: models.GameStatusFinished,
				DrawID: "draw-1",
			},
			TotalTickets: 5,
			ArchivedAt:   s.testNow,
		},
		BatchSize: 2,
	})
	s.Require().NoError(err)
	s.Equal(5, out.ArchivedTickets)

	// Live tickets are gone
	count, err := s.repo.CountTickets(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	archive, err := s.repo.GetArchivedGame(ctx, &GetArchivedGameInput{DrawID: "draw-1"})
	s.Require().NoError(err)
	s.Equal("draw-1", archive.DrawID)
	s.Equal(5, archive.TotalTickets)
	s.Equal(models.GameStatusFinished, archive.Record.Status)
}

func (s *SQLiteRepositoryTestSuite) TestArchiveGameRetryIsIdempotent() {
	ctx := context.Background()

	s.approveTickets(s.ticket("ticket-1", "alice", "draw-1"))

	input := &ArchiveGameInput{
		Archive: &models.ArchivedGame{
			DrawID:       "draw-1",
			Record:       models.GameRecord{DrawID: "draw-1"},
			TotalTickets: 1,
			ArchivedAt:   s.testNow,
		},
	}

	out, err := s.repo.ArchiveGame(ctx, input)
	s.Require().NoError(err)
	s.Equal(1, out.ArchivedTickets)

	// A retry finds nothing left to move and keeps the summary
	out, err = s.repo.ArchiveGame(ctx, input)
	s.Require().NoError(err)
	s.Equal(0, out.ArchivedTickets)

	archive, err := s.repo.GetArchivedGame(ctx, &GetArchivedGameInput{DrawID: "draw-1"})
	s.Require().NoError(err)
	s.Equal(1, archive.TotalTickets)
}

func (s *SQLiteRepositoryTestSuite) TestGetMissingArchivedGame() {
	_, err := s.repo.GetArchivedGame(context.Background(), &GetArchivedGameInput{DrawID: "nope"})
	s.Require().Error(err)
	s.Equal(ErrArchiveNotFound, err)
}

func (s *SQLiteRepositoryTestSuite) TestResetPreservesPool() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-1", "alice", s.testNow)}))
	s.Require().NoError(s.repo.ApprovePayment(ctx, &ApprovePaymentInput{
		PaymentID:     "pay-1",
		ReviewedAt:    s.testNow,
		Tickets:       []*models.Ticket{s.ticket("ticket-1", "alice", "draw-1")},
		RevenueCredit: 2,
		JackpotCredit: 0.4,
	}))
	s.Require().NoError(s.repo.SavePayment(ctx, &SavePaymentInput{Payment: s.payment("pay-2", "bob", s.testNow)}))

	s.Require().NoError(s.repo.Reset(ctx))

	count, err := s.repo.CountTickets(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	pending, err := s.repo.ListPaymentsByStatus(ctx, &ListPaymentsByStatusInput{Status: models.PaymentStatusPending})
	s.Require().NoError(err)
	s.Empty(pending)

	pool, err := s.repo.GetPool(ctx)
	s.Require().NoError(err)
	s.Equal(2.0, pool.TotalRevenue)
	s.Equal(0.4, pool.Jackpot)
}
