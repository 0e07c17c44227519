package game

import (
	"time"

	"github.com/alexvielma/bingove/internal/bingo"
	"github.com/alexvielma/bingove/internal/common/clock"
	"github.com/alexvielma/bingove/internal/common/uuid"
	"github.com/alexvielma/bingove/internal/models"
	"github.com/alexvielma/bingove/internal/repositories/gamestate"
	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	presenceRepo "github.com/alexvielma/bingove/internal/repositories/presence"
)

// Config holds configuration for the game service
type Config struct {
	// CountdownDuration is the fixed pre-draw countdown length
	CountdownDuration time.Duration

	// BallInterval is the auto-mode delay between ball draws
	BallInterval time.Duration

	// DefaultGameConfig seeds fresh records on initialize and full reset
	DefaultGameConfig models.GameConfig

	// Repository dependencies
	Store        gamestate.Store
	LedgerRepo   ledgerRepo.Repository
	PresenceRepo presenceRepo.Repository

	// Service dependencies
	Roller *bingo.Roller
	Clock  clock.Clock
	UUID   uuid.UUID
}

// ClaimCard is one card inside a claim batch
type ClaimCard struct {
	// TicketID identifies the claimed ticket
	TicketID string

	// Numbers is the card's 25 row-major cells
	Numbers []int
}

// InitializeGameInput bootstraps a fresh live record
type InitializeGameInput struct {
	DrawID string

	// Config overrides the service default when non-nil
	Config *models.GameConfig
}

// InitializeGameOutput returns the fresh record
type InitializeGameOutput struct {
	Record *models.GameRecord
}

// StartCountdownInput starts the pre-draw countdown
type StartCountdownInput struct{}

// StartCountdownOutput returns the updated record
type StartCountdownOutput struct {
	Record *models.GameRecord
}

// SkipCountdownInput ends the countdown immediately
type SkipCountdownInput struct{}

// SkipCountdownOutput returns the updated record
type SkipCountdownOutput struct {
	Record *models.GameRecord
}

// PauseGameInput halts ball draws
type PauseGameInput struct{}

// PauseGameOutput returns the updated record
type PauseGameOutput struct {
	Record *models.GameRecord
}

// ResumeGameInput resumes ball draws
type ResumeGameInput struct{}

// ResumeGameOutput returns the updated record
type ResumeGameOutput struct {
	Record *models.GameRecord
}

// SetModeInput switches between auto and manual ball advancement
type SetModeInput struct {
	Mode models.GameMode
}

// SetModeOutput returns the updated record
type SetModeOutput struct {
	Record *models.GameRecord
}

// UpdateConfigInput applies a partial config change; nil fields are untouched
type UpdateConfigInput struct {
	Price       *float64
	Prizes      []float64
	StartTime   *string
	MaxTickets  *int
	PaymentInfo *models.PaymentInfo
}

// UpdateConfigOutput returns the updated record
type UpdateConfigOutput struct {
	Record *models.GameRecord
}

// DrawNextBallInput draws the next ball
type DrawNextBallInput struct{}

// DrawNextBallOutput reports the drawn ball
type DrawNextBallOutput struct {
	// Number is the drawn ball, 0 when the pool was already exhausted
	Number int

	// Finished is true when this draw ended the game by exhaustion
	Finished bool

	Record *models.GameRecord
}

// CreditTicketsSoldInput credits approved tickets to the live record
type CreditTicketsSoldInput struct {
	Count int
}

// CreditTicketsSoldOutput reports whether the sale auto-started the countdown
type CreditTicketsSoldOutput struct {
	AutoStarted bool

	Record *models.GameRecord
}

// SubmitClaimInput is one user's atomic batch of claimed cards
type SubmitClaimInput struct {
	UserID string
	Cards  []ClaimCard
}

// SubmitClaimOutput reports the admitted claim group
type SubmitClaimOutput struct {
	// Timestamp is the group key shared by all cards of this claim
	Timestamp time.Time

	// FullHouseCount is how many of the claimed cards the evaluator accepted
	FullHouseCount int

	Record *models.GameRecord
}

// ConfirmClaimInput identifies a pending claim group by its linked-group key
type ConfirmClaimInput struct {
	UserID    string
	Timestamp time.Time
}

// ConfirmClaimOutput reports the verified group
type ConfirmClaimOutput struct {
	// VerifiedCount is how many cards the group contained
	VerifiedCount int

	// FirstPrizePosition is the position assigned to the group's first card
	FirstPrizePosition int

	Record *models.GameRecord
}

// RejectClaimInput identifies a pending claim group by its linked-group key
type RejectClaimInput struct {
	UserID    string
	Timestamp time.Time
}

// RejectClaimOutput returns the updated record
type RejectClaimOutput struct {
	Record *models.GameRecord
}

// SubmitPayoutDetailsInput attaches a winner's bank details to their claim
type SubmitPayoutDetailsInput struct {
	TicketID string
	Details  *models.PayoutDetails
}

// SubmitPayoutDetailsOutput returns the updated record
type SubmitPayoutDetailsOutput struct {
	Record *models.GameRecord
}

// MarkPaidInput marks a winner's prize as paid out
type MarkPaidInput struct {
	TicketID string
}

// MarkPaidOutput returns the updated record
type MarkPaidOutput struct {
	Record *models.GameRecord
}

// ArchiveGameInput archives the finished draw and resets to waiting
type ArchiveGameInput struct{}

// ArchiveGameOutput reports the archive result
type ArchiveGameOutput struct {
	// ArchivedDrawID is the draw that was archived
	ArchivedDrawID string

	// ArchivedTickets is how many tickets were moved to the archive
	ArchivedTickets int

	// Record is the fresh waiting record
	Record *models.GameRecord
}

// FullResetInput destructively wipes the system
type FullResetInput struct{}

// FullResetOutput returns the fresh record
type FullResetOutput struct {
	Record *models.GameRecord
}
