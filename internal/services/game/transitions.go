package game

import (
	"time"

	"github.com/alexvielma/bingove/internal/bingo"
	"github.com/alexvielma/bingove/internal/models"
	"github.com/alexvielma/bingove/internal/repositories/gamestate"
)

// The transition builders below return the pure bodies the store's optimistic
// transaction runner re-drives under contention. Each body decides on the
// record it was handed and nothing else, so re-running it is always safe.
// Guard failures abort the transaction without writing.

// newGameRecord builds a fresh waiting record for a new draw
func newGameRecord(drawID string, config models.GameConfig, now time.Time) *models.GameRecord {
	return &models.GameRecord{
		Status:       models.GameStatusWaiting,
		Mode:         models.GameModeAuto,
		History:      []int{},
		LastBallTime: now,
		DrawID:       drawID,
		Config:       config,
		Winners:      []*models.ClaimRecord{},
	}
}

func transitionStartCountdown(now time.Time) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		if rec.Status != models.GameStatusWaiting {
			return nil, ErrInvalidGameState
		}
		rec.Status = models.GameStatusCountdown
		rec.CountdownStartTime = now
		return rec, nil
	}
}

func transitionFinishCountdown(now time.Time) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		if rec.Status != models.GameStatusCountdown {
			return nil, ErrInvalidGameState
		}
		rec.Status = models.GameStatusActive
		rec.LastBallTime = now
		return rec, nil
	}
}

func transitionPause() gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		if rec.Status != models.GameStatusActive {
			return nil, ErrInvalidGameState
		}
		rec.Status = models.GameStatusPaused
		return rec, nil
	}
}

func transitionResume() gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		if rec.Status != models.GameStatusPaused {
			return nil, ErrInvalidGameState
		}
		rec.Status = models.GameStatusActive
		return rec, nil
	}
}

func transitionSetMode(mode models.GameMode) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		rec.Mode = mode
		return rec, nil
	}
}

func transitionUpdateConfig(input *UpdateConfigInput) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		if input.Price != nil {
			rec.Config.Price = *input.Price
		}
		if input.Prizes != nil {
			rec.Config.Prizes = input.Prizes
		}
		if input.StartTime != nil {
			rec.Config.StartTime = *input.StartTime
		}
		if input.MaxTickets != nil {
			rec.Config.MaxTickets = *input.MaxTickets
		}
		if input.PaymentInfo != nil {
			rec.Config.PaymentInfo = input.PaymentInfo
		}
		return rec, nil
	}
}

// transitionDrawBall picks one fresh ball from the record's own history, so a
// retried transaction draws against whatever history actually committed.
// Exhausting all 75 balls with no confirmed winner finishes the draw.
func transitionDrawBall(roller *bingo.Roller, now time.Time) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		if rec.Status != models.GameStatusActive {
			return nil, ErrInvalidGameState
		}

		number, ok := roller.Pick(rec.History)
		if !ok {
			rec.Status = models.GameStatusFinished
			return rec, nil
		}

		rec.CurrentNumber = number
		rec.History = append(rec.History, number)
		rec.LastBallTime = now
		if len(rec.History) >= bingo.MaxBall {
			rec.Status = models.GameStatusFinished
		}
		return rec, nil
	}
}

// transitionSubmitClaim admits a batch of cards as one linked group. Claims
// may arrive while another group is being arbitrated; a ticket already present
// anywhere in winners rejects the whole batch.
func transitionSubmitClaim(userID string, cards []ClaimCard, now time.Time) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		if rec.Status != models.GameStatusActive && rec.Status != models.GameStatusValidating {
			return nil, ErrClaimNotAdmitted
		}

		for _, card := range cards {
			if rec.TicketClaimed(card.TicketID) {
				return nil, ErrTicketAlreadyClaimed
			}
		}

		for _, card := range cards {
			rec.Winners = append(rec.Winners, &models.ClaimRecord{
				UserID:          userID,
				TicketID:        card.TicketID,
				Timestamp:       now,
				Numbers:         card.Numbers,
				FullHouse:       bingo.IsFullHouse(card.Numbers, rec.History),
				MultiClaimCount: len(cards),
			})
		}

		rec.Status = models.GameStatusValidating
		return rec, nil
	}
}

// transitionConfirmClaim verifies the whole linked group of the target claim,
// assigning sequential prize positions that continue from the already-verified
// count. Only full house is played, so confirming any claim finishes the draw;
// other pending groups stay in the record unresolved.
func transitionConfirmClaim(userID string, ts time.Time) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		verified := make([]*models.ClaimRecord, 0, len(rec.Winners))
		linked := make([]*models.ClaimRecord, 0, 1)
		otherPending := make([]*models.ClaimRecord, 0, len(rec.Winners))

		for _, w := range rec.Winners {
			switch {
			case w.Verified:
				verified = append(verified, w)
			case w.SameGroup(userID, ts):
				linked = append(linked, w)
			default:
				otherPending = append(otherPending, w)
			}
		}

		if len(linked) == 0 {
			return nil, ErrClaimNotFound
		}

		for i, w := range linked {
			w.Verified = true
			w.PrizePosition = len(verified) + 1 + i
			w.PayoutStatus = models.PayoutStatusPendingInfo
		}

		winners := make([]*models.ClaimRecord, 0, len(rec.Winners))
		winners = append(winners, verified...)
		winners = append(winners, linked...)
		winners = append(winners, otherPending...)

		rec.Winners = winners
		rec.Status = models.GameStatusFinished
		return rec, nil
	}
}

// transitionRejectClaim drops the target's linked group. The game returns to
// validating while other groups are pending, otherwise back to active.
func transitionRejectClaim(userID string, ts time.Time) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		kept := make([]*models.ClaimRecord, 0, len(rec.Winners))
		removed := 0
		for _, w := range rec.Winners {
			if !w.Verified && w.SameGroup(userID, ts) {
				removed++
				continue
			}
			kept = append(kept, w)
		}

		if removed == 0 {
			return nil, ErrClaimNotFound
		}

		rec.Winners = kept
		if rec.HasPendingClaims() {
			rec.Status = models.GameStatusValidating
		} else {
			rec.Status = models.GameStatusActive
		}
		return rec, nil
	}
}

func transitionSubmitPayoutDetails(ticketID string, details *models.PayoutDetails) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		for _, w := range rec.Winners {
			if w.TicketID == ticketID {
				w.PayoutStatus = models.PayoutStatusProcessing
				w.PayoutDetails = details
				return rec, nil
			}
		}
		return nil, ErrWinnerNotFound
	}
}

func transitionMarkPaid(ticketID string) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		for _, w := range rec.Winners {
			if w.TicketID == ticketID {
				w.PayoutStatus = models.PayoutStatusPaid
				return rec, nil
			}
		}
		return nil, ErrWinnerNotFound
	}
}

// transitionTicketsSold credits sold tickets to the live record. Hitting the
// sales cap while waiting auto-starts the countdown; this is the one path by
// which the ledger drives the state machine.
func transitionTicketsSold(count int, now time.Time) gamestate.UpdateFunc {
	return func(rec *models.GameRecord) (*models.GameRecord, error) {
		rec.Config.TotalTickets += count
		if rec.Status == models.GameStatusWaiting &&
			rec.Config.MaxTickets > 0 &&
			rec.Config.TotalTickets >= rec.Config.MaxTickets {
			rec.Status = models.GameStatusCountdown
			rec.CountdownStartTime = now
		}
		return rec, nil
	}
}
