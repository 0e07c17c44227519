package game

import (
	"context"
	"time"

	"github.com/alexvielma/bingove/internal/bingo"
	"github.com/alexvielma/bingove/internal/common/clock"
	"github.com/alexvielma/bingove/internal/common/uuid"
	"github.com/alexvielma/bingove/internal/models"
	"github.com/alexvielma/bingove/internal/repositories/gamestate"
	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	presenceRepo "github.com/alexvielma/bingove/internal/repositories/presence"
)

const (
	// DefaultCountdownDuration is the fixed pre-draw countdown
	DefaultCountdownDuration = 300 * time.Second

	// DefaultBallInterval is the auto-mode delay between balls
	DefaultBallInterval = 15 * time.Second
)

// service implements the Service interface
type service struct {
	config       *Config
	store        gamestate.Store
	ledgerRepo   ledgerRepo.Repository
	presenceRepo presenceRepo.Repository
	roller       *bingo.Roller
	clock        clock.Clock
	uuider       uuid.UUID
}

// NewService creates a new game service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Store == nil {
		return nil, ErrNilStore
	}
	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}
	if cfg.PresenceRepo == nil {
		return nil, ErrNilPresenceRepo
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

	if cfg.CountdownDuration <= 0 {
		cfg.CountdownDuration = DefaultCountdownDuration
	}
	if cfg.BallInterval <= 0 {
		cfg.BallInterval = DefaultBallInterval
	}

	return &service{
		config:       cfg,
		store:        cfg.Store,
		ledgerRepo:   cfg.LedgerRepo,
		presenceRepo: cfg.PresenceRepo,
		roller:       cfg.Roller,
		clock:        cfg.Clock,
		uuider:       cfg.UUID,
	}, nil
}

// InitializeGame writes a fresh waiting record for a new draw
func (s *service) InitializeGame(ctx context.Context, input *InitializeGameInput) (*InitializeGameOutput, error) {
	drawID := input.DrawID
	if drawID == "" {
		drawID = s.uuider.NewUUID()
	}

	gameConfig := s.config.DefaultGameConfig
	if input.Config != nil {
		gameConfig = *input.Config
	}

	record := newGameRecord(drawID, gameConfig, s.clock.Now())
	if err := s.store.Put(ctx, &gamestate.PutInput{Record: record}); err != nil {
		return nil, err
	}

	return &InitializeGameOutput{Record: record}, nil
}

// GetGame returns the current live record
func (s *service) GetGame(ctx context.Context) (*models.GameRecord, error) {
	return s.store.Get(ctx)
}

// Subscribe delivers the current record and every committed change
func (s *service) Subscribe(ctx context.Context) (<-chan *models.GameRecord, error) {
	return s.store.Subscribe(ctx)
}

// StartCountdown moves waiting → countdown
func (s *service) StartCountdown(ctx context.Context, input *StartCountdownInput) (*StartCountdownOutput, error) {
	record, err := s.store.Update(ctx, transitionStartCountdown(s.clock.Now()))
	if err != nil {
		return nil, err
	}
	return &StartCountdownOutput{Record: record}, nil
}

// SkipCountdown moves countdown → active without waiting out the clock
func (s *service) SkipCountdown(ctx context.Context, input *SkipCountdownInput) (*SkipCountdownOutput, error) {
	record, err := s.store.Update(ctx, transitionFinishCountdown(s.clock.Now()))
	if err != nil {
		return nil, err
	}
	return &SkipCountdownOutput{Record: record}, nil
}

// PauseGame moves active → paused
func (s *service) PauseGame(ctx context.Context, input *PauseGameInput) (*PauseGameOutput, error) {
	record, err := s.store.Update(ctx, transitionPause())
	if err != nil {
		return nil, err
	}
	return &PauseGameOutput{Record: record}, nil
}

// ResumeGame moves paused → active
func (s *service) ResumeGame(ctx context.Context, input *ResumeGameInput) (*ResumeGameOutput, error) {
	record, err := s.store.Update(ctx, transitionResume())
	if err != nil {
		return nil, err
	}
	return &ResumeGameOutput{Record: record}, nil
}

// SetMode switches auto/manual ball advancement
func (s *service) SetMode(ctx context.Context, input *SetModeInput) (*SetModeOutput, error) {
	if input.Mode != models.GameModeAuto && input.Mode != models.GameModeManual {
		return nil, ErrInvalidGameState
	}

	record, err := s.store.Update(ctx, transitionSetMode(input.Mode))
	if err != nil {
		return nil, err
	}
	return &SetModeOutput{Record: record}, nil
}

// UpdateConfig applies a partial config change
func (s *service) UpdateConfig(ctx context.Context, input *UpdateConfigInput) (*UpdateConfigOutput, error) {
	record, err := s.store.Update(ctx, transitionUpdateConfig(input))
	if err != nil {
		return nil, err
	}
	return &UpdateConfigOutput{Record: record}, nil
}

// DrawNextBall appends one fresh ball. The auto-mode timer and the operator's
// manual action both land here; admission is decided inside the transaction.
func (s *service) DrawNextBall(ctx context.Context, input *DrawNextBallInput) (*DrawNextBallOutput, error) {
	record, err := s.store.Update(ctx, transitionDrawBall(s.roller, s.clock.Now()))
	if err != nil {
		return nil, err
	}

	return &DrawNextBallOutput{
		Number:   record.CurrentNumber,
		Finished: record.Status == models.GameStatusFinished,
		Record:   record,
	}, nil
}

// CreditTicketsSold adds approved tickets to the live record's counters
func (s *service) CreditTicketsSold(ctx context.Context, input *CreditTicketsSoldInput) (*CreditTicketsSoldOutput, error) {
	if input.Count <= 0 {
		return nil, ErrInvalidGameState
	}

	record, err := s.store.Update(ctx, transitionTicketsSold(input.Count, s.clock.Now()))
	if err != nil {
		return nil, err
	}

	return &CreditTicketsSoldOutput{
		AutoStarted: record.Status == models.GameStatusCountdown,
		Record:      record,
	}, nil
}

// SubmitClaim admits a user's atomic batch of claimed cards
func (s *service) SubmitClaim(ctx context.Context, input *SubmitClaimInput) (*SubmitClaimOutput, error) {
	if len(input.Cards) == 0 {
		return nil, ErrNoCardsSubmitted
	}

	now := s.clock.Now()
	record, err := s.store.Update(ctx, transitionSubmitClaim(input.UserID, input.Cards, now))
	if err != nil {
		return nil, err
	}

	fullHouses := 0
	for _, w := range record.Winners {
		if w.SameGroup(input.UserID, now) && w.FullHouse {
			fullHouses++
		}
	}

	return &SubmitClaimOutput{
		Timestamp:      now,
		FullHouseCount: fullHouses,
		Record:         record,
	}, nil
}

// ConfirmClaim verifies a pending claim group and finishes the draw
func (s *service) ConfirmClaim(ctx context.Context, input *ConfirmClaimInput) (*ConfirmClaimOutput, error) {
	record, err := s.store.Update(ctx, transitionConfirmClaim(input.UserID, input.Timestamp))
	if err != nil {
		return nil, err
	}

	verifiedCount := 0
	firstPosition := 0
	for _, w := range record.Winners {
		if w.Verified && w.SameGroup(input.UserID, input.Timestamp) {
			verifiedCount++
			if firstPosition == 0 || w.PrizePosition < firstPosition {
				firstPosition = w.PrizePosition
			}
		}
	}

	return &ConfirmClaimOutput{
		VerifiedCount:      verifiedCount,
		FirstPrizePosition: firstPosition,
		Record:             record,
	}, nil
}

// RejectClaim removes a pending claim group
func (s *service) RejectClaim(ctx context.Context, input *RejectClaimInput) (*RejectClaimOutput, error) {
	record, err := s.store.Update(ctx, transitionRejectClaim(input.UserID, input.Timestamp))
	if err != nil {
		return nil, err
	}
	return &RejectClaimOutput{Record: record}, nil
}

// SubmitPayoutDetails records a winner's bank details
func (s *service) SubmitPayoutDetails(ctx context.Context, input *SubmitPayoutDetailsInput) (*SubmitPayoutDetailsOutput, error) {
	record, err := s.store.Update(ctx, transitionSubmitPayoutDetails(input.TicketID, input.Details))
	if err != nil {
		return nil, err
	}
	return &SubmitPayoutDetailsOutput{Record: record}, nil
}

// MarkPaid marks a winner's prize as paid out
func (s *service) MarkPaid(ctx context.Context, input *MarkPaidInput) (*MarkPaidOutput, error) {
	record, err := s.store.Update(ctx, transitionMarkPaid(input.TicketID))
	if err != nil {
		return nil, err
	}
	return &MarkPaidOutput{Record: record}, nil
}

// ArchiveGame snapshots the finished draw plus its tickets into the archive,
// then resets the live record to waiting under a fresh draw ID. Pricing and
// payment routing carry over; the sold-ticket counters start from zero since
// the archived tickets no longer play.
func (s *service) ArchiveGame(ctx context.Context, input *ArchiveGameInput) (*ArchiveGameOutput, error) {
	record, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if record.Status != models.GameStatusFinished {
		return nil, ErrInvalidGameState
	}

	now := s.clock.Now()
	ticketCount, err := s.ledgerRepo.CountTickets(ctx)
	if err != nil {
		return nil, err
	}

	// Re-read so payout updates that committed since the status check make
	// the snapshot. A write landing after this read is absent from both the
	// archive and the fresh record; archiving a draw still being settled is
	// an operator error.
	record, err = s.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	archiveOut, err := s.ledgerRepo.ArchiveGame(ctx, &ledgerRepo.ArchiveGameInput{
		Archive: &models.ArchivedGame{
			DrawID:       record.DrawID,
			Record:       *record,
			TotalTickets: ticketCount,
			ArchivedAt:   now,
		},
	})
	if err != nil {
		return nil, err
	}

	nextConfig := record.Config
	nextConfig.TotalTickets = 0
	nextConfig.PlayersCount = 0

	fresh := newGameRecord(s.uuider.NewUUID(), nextConfig, now)
	if err := s.store.Put(ctx, &gamestate.PutInput{Record: fresh}); err != nil {
		return nil, err
	}

	return &ArchiveGameOutput{
		ArchivedDrawID:  record.DrawID,
		ArchivedTickets: archiveOut.ArchivedTickets,
		Record:          fresh,
	}, nil
}

// FullReset destructively wipes tickets, payments, presence and the record
func (s *service) FullReset(ctx context.Context, input *FullResetInput) (*FullResetOutput, error) {
	if err := s.ledgerRepo.Reset(ctx); err != nil {
		return nil, err
	}

	if err := s.presenceRepo.Clear(ctx); err != nil {
		return nil, err
	}

	fresh := newGameRecord(s.uuider.NewUUID(), s.config.DefaultGameConfig, s.clock.Now())
	if err := s.store.Put(ctx, &gamestate.PutInput{Record: fresh}); err != nil {
		return nil, err
	}

	return &FullResetOutput{Record: fresh}, nil
}
