package game

import (
	"context"

	"github.com/alexvielma/bingove/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/alexvielma/bingove/internal/services/game Service

// Service drives the draw lifecycle. Every mutation runs as one atomic
// read-modify-write transaction against the shared game record store.
type Service interface {
	// InitializeGame writes a fresh waiting record for a new draw
	InitializeGame(ctx context.Context, input *InitializeGameInput) (*InitializeGameOutput, error)

	// GetGame returns the current live record
	GetGame(ctx context.Context) (*models.GameRecord, error)

	// Subscribe delivers the current record and every committed change
	Subscribe(ctx context.Context) (<-chan *models.GameRecord, error)

	// StartCountdown moves waiting → countdown
	StartCountdown(ctx context.Context, input *StartCountdownInput) (*StartCountdownOutput, error)

	// SkipCountdown moves countdown → active without waiting out the clock
	SkipCountdown(ctx context.Context, input *SkipCountdownInput) (*SkipCountdownOutput, error)

	// PauseGame moves active → paused
	PauseGame(ctx context.Context, input *PauseGameInput) (*PauseGameOutput, error)

	// ResumeGame moves paused → active
	ResumeGame(ctx context.Context, input *ResumeGameInput) (*ResumeGameOutput, error)

	// SetMode switches auto/manual ball advancement
	SetMode(ctx context.Context, input *SetModeInput) (*SetModeOutput, error)

	// UpdateConfig applies a partial config change
	UpdateConfig(ctx context.Context, input *UpdateConfigInput) (*UpdateConfigOutput, error)

	// DrawNextBall appends one fresh ball; timer and operator share this path
	DrawNextBall(ctx context.Context, input *DrawNextBallInput) (*DrawNextBallOutput, error)

	// CreditTicketsSold adds approved tickets to the live record's counters,
	// auto-starting the countdown when the sales cap is reached. This is the
	// ledger's only handle on the state machine.
	CreditTicketsSold(ctx context.Context, input *CreditTicketsSoldInput) (*CreditTicketsSoldOutput, error)

	// SubmitClaim admits a user's atomic batch of claimed cards
	SubmitClaim(ctx context.Context, input *SubmitClaimInput) (*SubmitClaimOutput, error)

	// ConfirmClaim verifies a pending claim group and finishes the draw
	ConfirmClaim(ctx context.Context, input *ConfirmClaimInput) (*ConfirmClaimOutput, error)

	// RejectClaim removes a pending claim group
	RejectClaim(ctx context.Context, input *RejectClaimInput) (*RejectClaimOutput, error)

	// SubmitPayoutDetails records a winner's bank details
	SubmitPayoutDetails(ctx context.Context, input *SubmitPayoutDetailsInput) (*SubmitPayoutDetailsOutput, error)

	// MarkPaid marks a winner's prize as paid out
	MarkPaid(ctx context.Context, input *MarkPaidInput) (*MarkPaidOutput, error)

	// ArchiveGame snapshots the finished draw and resets to a fresh waiting record
	ArchiveGame(ctx context.Context, input *ArchiveGameInput) (*ArchiveGameOutput, error)

	// FullReset destructively wipes tickets, payments, presence and the record
	FullReset(ctx context.Context, input *FullResetInput) (*FullResetOutput, error)

	// RunScheduler drives countdown expiry and auto-mode ball draws from the
	// record's stored timestamps until ctx is done
	RunScheduler(ctx context.Context)
}
