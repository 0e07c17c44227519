package game

import (
	"context"
	"errors"
	"time"

	"github.com/alexvielma/bingove/internal/logger"
	"github.com/alexvielma/bingove/internal/models"
	"github.com/alexvielma/bingove/internal/repositories/gamestate"
)

// schedulerTick is how often deadlines are re-derived from the record
const schedulerTick = time.Second

// RunScheduler drives the two timer-based transitions: countdown expiry and
// auto-mode ball draws. Deadlines are always recomputed from the stored
// countdownStartTime / lastBallTime, never from local elapsed counters, so any
// number of scheduler instances can run concurrently and each survives
// restarts without drifting. The transitions' own guards make a lost race a
// no-op rather than a double fire.
func (s *service) RunScheduler(ctx context.Context) {
	ticker := time.NewTicker(schedulerTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *service) tick(ctx context.Context) {
	record, err := s.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, gamestate.ErrRecordNotFound) {
			logger.Warn().Err(err).Msg("scheduler failed to read game record")
		}
		return
	}

	now := s.clock.Now()

	switch record.Status {
	case models.GameStatusCountdown:
		if now.Sub(record.CountdownStartTime) < s.config.CountdownDuration {
			return
		}
		if _, err := s.store.Update(ctx, transitionFinishCountdown(now)); err != nil {
			if !errors.Is(err, ErrInvalidGameState) {
				logger.Warn().Err(err).Msg("scheduler failed to finish countdown")
			}
			return
		}
		logger.Info().Str("drawId", record.DrawID).Msg("countdown elapsed, draw is live")

	case models.GameStatusActive:
		if record.Mode != models.GameModeAuto {
			return
		}
		if now.Sub(record.LastBallTime) < s.config.BallInterval {
			return
		}
		out, err := s.DrawNextBall(ctx, &DrawNextBallInput{})
		if err != nil {
			if !errors.Is(err, ErrInvalidGameState) {
				logger.Warn().Err(err).Msg("scheduler failed to draw ball")
			}
			return
		}
		if out.Finished {
			logger.Info().Str("drawId", record.DrawID).Msg("all balls drawn, draw finished")
		} else {
			logger.Debug().Int("number", out.Number).Int("drawn", len(out.Record.History)).Msg("auto ball drawn")
		}
	}
}
