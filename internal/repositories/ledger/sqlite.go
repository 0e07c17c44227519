package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alexvielma/bingove/internal/models"
)

const defaultArchiveBatchSize = 200

// Repository provides SQLite-backed ledger access
type sqliteRepository struct {
	db *sql.DB
}

// New opens (or creates) the ledger database at dbPath and runs migrations.
// Use ":memory:" for an ephemeral database in tests.
func New(dbPath string) (*sqliteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &sqliteRepository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// NewWithDB wraps an existing database handle. Used by tests that inject a
// mocked driver; migrations are not run.
func NewWithDB(db *sql.DB) *sqliteRepository {
	return &sqliteRepository{db: db}
}

// Close closes the database connection
func (r *sqliteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *sqliteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqliteRepository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			tickets_count INTEGER NOT NULL,
			amount REAL NOT NULL,
			reference TEXT NOT NULL,
			phone TEXT,
			last4_digits TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL,
			reviewed_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			draw_id TEXT NOT NULL,
			grid TEXT NOT NULL,
			numbers TEXT NOT NULL,
			purchase_time DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS prize_pool (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			total_revenue REAL NOT NULL DEFAULT 0,
			jackpot REAL NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS archive_games (
			draw_id TEXT PRIMARY KEY,
			record TEXT NOT NULL,
			total_tickets INTEGER NOT NULL,
			archived_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS archive_tickets (
			id TEXT PRIMARY KEY,
			draw_id TEXT NOT NULL,
			data TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user ON payments(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_user ON tickets(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_draw ON tickets(draw_id)`,
		`CREATE INDEX IF NOT EXISTS idx_archive_tickets_draw ON archive_tickets(draw_id)`,
		`INSERT OR IGNORE INTO prize_pool (id, total_revenue, jackpot) VALUES (1, 0, 0)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// SavePayment persists a new payment request
func (r *sqliteRepository) SavePayment(ctx context.Context, input *SavePaymentInput) error {
	if input == nil || input.Payment == nil {
		return errors.New("input and payment cannot be nil")
	}

	p := input.Payment
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (id, user_id, tickets_count, amount, reference, phone, last4_digits, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.TicketsCount, p.Amount, p.Reference, p.Phone, p.Last4Digits, p.Status, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment request by ID
func (r *sqliteRepository) GetPayment(ctx context.Context, input *GetPaymentInput) (*models.PaymentRequest, error) {
	if input == nil || input.PaymentID == "" {
		return nil, errors.New("input and payment ID cannot be empty")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, tickets_count, amount, reference, phone, last4_digits, status, created_at, reviewed_at
		 FROM payments WHERE id = ?`, input.PaymentID)

	return scanPayment(row)
}

// ListPaymentsByStatus returns payment requests in a given review state
func (r *sqliteRepository) ListPaymentsByStatus(ctx context.Context, input *ListPaymentsByStatusInput) ([]*models.PaymentRequest, error) {
	if input == nil || input.Status == "" {
		return nil, errors.New("input and status cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, tickets_count, amount, reference, phone, last4_digits, status, created_at, reviewed_at
		 FROM payments WHERE status = ? ORDER BY created_at ASC`, input.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

// ListPaymentsByUser returns a buyer's payment requests, newest first
func (r *sqliteRepository) ListPaymentsByUser(ctx context.Context, input *ListPaymentsByUserInput) ([]*models.PaymentRequest, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, tickets_count, amount, reference, phone, last4_digits, status, created_at, reviewed_at
		 FROM payments WHERE user_id = ? ORDER BY created_at DESC`, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

// ApprovePayment marks a pending payment approved, inserts its tickets and
// credits the prize pool in one transaction
func (r *sqliteRepository) ApprovePayment(ctx context.Context, input *ApprovePaymentInput) error {
	if input == nil || input.PaymentID == "" {
		return errors.New("input and payment ID cannot be empty")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	defer tx.Rollback()

	// The status guard makes re-approval a detectable error instead of a
	// double ticket issue.
	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = ?, reviewed_at = ? WHERE id = ? AND status = ?`,
		models.PaymentStatusApproved, input.ReviewedAt, input.PaymentID, models.PaymentStatusPending)
	if err != nil {
		return fmt.Errorf("failed to approve payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to approve payment: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM payments WHERE id = ?`, input.PaymentID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check payment: %w", err)
		}
		if exists == 0 {
			return ErrPaymentNotFound
		}
		return ErrPaymentReviewed
	}

	for _, ticket := range input.Tickets {
		gridJSON, err := json.Marshal(ticket.Grid)
		if err != nil {
			return fmt.Errorf("failed to marshal ticket grid: %w", err)
		}
		numbersJSON, err := json.Marshal(ticket.Numbers)
		if err != nil {
			return fmt.Errorf("failed to marshal ticket numbers: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO tickets (id, user_id, draw_id, grid, numbers, purchase_time) VALUES (?, ?, ?, ?, ?, ?)`,
			ticket.ID, ticket.UserID, ticket.DrawID, string(gridJSON), string(numbersJSON), ticket.PurchaseTime)
		if err != nil {
			return fmt.Errorf("failed to insert ticket: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE prize_pool SET total_revenue = total_revenue + ?, jackpot = jackpot + ? WHERE id = 1`,
		input.RevenueCredit, input.JackpotCredit)
	if err != nil {
		return fmt.Errorf("failed to credit prize pool: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit approval: %w", err)
	}
	return nil
}

// RejectPayment marks a pending payment rejected
func (r *sqliteRepository) RejectPayment(ctx context.Context, input *RejectPaymentInput) error {
	if input == nil || input.PaymentID == "" {
		return errors.New("input and payment ID cannot be empty")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = ?, reviewed_at = ? WHERE id = ? AND status = ?`,
		models.PaymentStatusRejected, input.ReviewedAt, input.PaymentID, models.PaymentStatusPending)
	if err != nil {
		return fmt.Errorf("failed to reject payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to reject payment: %w", err)
	}
	if affected == 0 {
		if _, getErr := r.GetPayment(ctx, &GetPaymentInput{PaymentID: input.PaymentID}); errors.Is(getErr, ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		return ErrPaymentReviewed
	}
	return nil
}

// GetTicket retrieves a ticket by ID
func (r *sqliteRepository) GetTicket(ctx context.Context, input *GetTicketInput) (*models.Ticket, error) {
	if input == nil || input.TicketID == "" {
		return nil, errors.New("input and ticket ID cannot be empty")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, draw_id, grid, numbers, purchase_time FROM tickets WHERE id = ?`, input.TicketID)

	ticket, err := scanTicket(row)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListTicketsByUser returns a user's live tickets, newest first
func (r *sqliteRepository) ListTicketsByUser(ctx context.Context, input *ListTicketsByUserInput) ([]*models.Ticket, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, draw_id, grid, numbers, purchase_time
		 FROM tickets WHERE user_id = ? ORDER BY purchase_time DESC`, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// ListTicketsByDraw returns all live tickets of a draw
func (r *sqliteRepository) ListTicketsByDraw(ctx context.Context, input *ListTicketsByDrawInput) ([]*models.Ticket, error) {
	if input == nil || input.DrawID == "" {
		return nil, errors.New("input and draw ID cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, draw_id, grid, numbers, purchase_time
		 FROM tickets WHERE draw_id = ? ORDER BY purchase_time ASC`, input.DrawID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// CountTickets returns the number of live tickets
func (r *sqliteRepository) CountTickets(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

// GetPool returns the accumulated revenue and jackpot balances
func (r *sqliteRepository) GetPool(ctx context.Context) (*models.PrizePool, error) {
	var pool models.PrizePool
	err := r.db.QueryRowContext(ctx,
		`SELECT total_revenue, jackpot FROM prize_pool WHERE id = 1`).Scan(&pool.TotalRevenue, &pool.Jackpot)
	if err != nil {
		return nil, fmt.Errorf("failed to get prize pool: %w", err)
	}
	return &pool, nil
}

// ArchiveGame snapshots a finished draw and moves its live tickets into the
// archive in bounded-size batches. Each batch is its own transaction; a crash
// mid-archive leaves remaining live tickets for an operator retry, and
// INSERT OR REPLACE makes re-archiving a ticket a no-op.
func (r *sqliteRepository) ArchiveGame(ctx context.Context, input *ArchiveGameInput) (*ArchiveGameOutput, error) {
	if input == nil || input.Archive == nil {
		return nil, errors.New("input and archive cannot be nil")
	}
	if input.Archive.DrawID == "" {
		return nil, errors.New("archive draw ID cannot be empty")
	}

	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = defaultArchiveBatchSize
	}

	recordJSON, err := json.Marshal(input.Archive.Record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal archived record: %w", err)
	}

	// Summary first so a retry after a partial run finds the archive row
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO archive_games (draw_id, record, total_tickets, archived_at) VALUES (?, ?, ?, ?)`,
		input.Archive.DrawID, string(recordJSON), input.Archive.TotalTickets, input.Archive.ArchivedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save archive summary: %w", err)
	}

	archived := 0
	for {
		moved, err := r.archiveBatch(ctx, input.Archive.DrawID, batchSize)
		if err != nil {
			return nil, err
		}
		if moved == 0 {
			break
		}
		archived += moved
	}

	return &ArchiveGameOutput{ArchivedTickets: archived}, nil
}

func (r *sqliteRepository) archiveBatch(ctx context.Context, drawID string, batchSize int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin archive batch: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, user_id, draw_id, grid, numbers, purchase_time FROM tickets LIMIT ?`, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to read archive batch: %w", err)
	}

	tickets, err := collectTickets(rows)
	rows.Close()
	if err != nil {
		return 0, err
	}
	if len(tickets) == 0 {
		return 0, nil
	}

	for _, ticket := range tickets {
		data, err := json.Marshal(ticket)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal archived ticket: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO archive_tickets (id, draw_id, data) VALUES (?, ?, ?)`,
			ticket.ID, drawID, string(data)); err != nil {
			return 0, fmt.Errorf("failed to archive ticket: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, ticket.ID); err != nil {
			return 0, fmt.Errorf("failed to delete archived ticket: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit archive batch: %w", err)
	}
	return len(tickets), nil
}

// GetArchivedGame retrieves an archived draw by ID
func (r *sqliteRepository) GetArchivedGame(ctx context.Context, input *GetArchivedGameInput) (*models.ArchivedGame, error) {
	if input == nil || input.DrawID == "" {
		return nil, errors.New("input and draw ID cannot be empty")
	}

	var (
		archive    models.ArchivedGame
		recordJSON string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT draw_id, record, total_tickets, archived_at FROM archive_games WHERE draw_id = ?`,
		input.DrawID).Scan(&archive.DrawID, &recordJSON, &archive.TotalTickets, &archive.ArchivedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArchiveNotFound
		}
		return nil, fmt.Errorf("failed to get archived game: %w", err)
	}

	if err := json.Unmarshal([]byte(recordJSON), &archive.Record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archived record: %w", err)
	}
	return &archive, nil
}

// Reset destructively wipes payments and live tickets
func (r *sqliteRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tickets`); err != nil {
		return fmt.Errorf("failed to wipe tickets: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM payments`); err != nil {
		return fmt.Errorf("failed to wipe payments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*models.PaymentRequest, error) {
	var (
		p          models.PaymentRequest
		reviewedAt sql.NullTime
	)
	err := row.Scan(&p.ID, &p.UserID, &p.TicketsCount, &p.Amount, &p.Reference, &p.Phone,
		&p.Last4Digits, &p.Status, &p.CreatedAt, &reviewedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	if reviewedAt.Valid {
		p.ReviewedAt = reviewedAt.Time
	}
	return &p, nil
}

func collectPayments(rows *sql.Rows) ([]*models.PaymentRequest, error) {
	payments := []*models.PaymentRequest{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	var (
		t           models.Ticket
		gridJSON    string
		numbersJSON string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.DrawID, &gridJSON, &numbersJSON, &t.PurchaseTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to scan ticket: %w", err)
	}

	if err := json.Unmarshal([]byte(gridJSON), &t.Grid); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket grid: %w", err)
	}
	if err := json.Unmarshal([]byte(numbersJSON), &t.Numbers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket numbers: %w", err)
	}
	return &t, nil
}

func collectTickets(rows *sql.Rows) ([]*models.Ticket, error) {
	tickets := []*models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}
	return tickets, nil
}
