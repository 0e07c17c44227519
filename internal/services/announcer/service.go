package announcer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/alexvielma/bingove/internal/bingo"
	"github.com/alexvielma/bingove/internal/models"
)

// service implements the Service interface
type service struct {
	rand *rand.Rand
}

// NewService creates a new announcer service
func NewService(config *Config) (Service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// Diff compares two consecutive record snapshots. Each change in the record
// maps to at most a handful of events; the order is lifecycle first, then
// balls, then claims, so a ball that triggered a claim reads naturally.
func (s *service) Diff(ctx context.Context, input *DiffInput) (*DiffOutput, error) {
	if input == nil || input.Current == nil {
		return nil, errors.New("input and current record cannot be nil")
	}

	prev := input.Previous
	cur := input.Current

	// First snapshot after subscribing carries no change to announce.
	if prev == nil {
		return &DiffOutput{}, nil
	}

	var events []*Event

	if prev.DrawID != cur.DrawID {
		events = append(events, s.newGameEvent(cur))
		// Everything else in the record was reset, not changed.
		return &DiffOutput{Events: events}, nil
	}

	if prev.Status != cur.Status {
		if e := s.statusEvent(prev.Status, cur.Status); e != nil {
			events = append(events, e)
		}
	}

	for i := len(prev.History); i < len(cur.History); i++ {
		events = append(events, s.ballEvent(cur.History[i], i+1))
	}

	events = append(events, s.claimEvents(prev, cur)...)

	return &DiffOutput{Events: events}, nil
}

// GetPresenceMessage returns an announcement for a viewer-count change
func (s *service) GetPresenceMessage(ctx context.Context, input *GetPresenceMessageInput) (*GetPresenceMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch {
	case input.Count == 0:
		messages = []string{
			"The room is empty. Even the balls feel lonely.",
			"Everyone left! Hello? Anyone?",
		}
	case input.Count == 1:
		messages = []string{
			"One brave soul is watching the draw.",
			"A single viewer holds down the fort!",
		}
	default:
		messages = []string{
			fmt.Sprintf("%d players are watching the draw!", input.Count),
			fmt.Sprintf("The room is heating up with %d viewers!", input.Count),
			fmt.Sprintf("%d pairs of eyes on the cage right now!", input.Count),
		}
	}

	return &GetPresenceMessageOutput{
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}

func (s *service) statusEvent(from, to models.GameStatus) *Event {
	switch to {
	case models.GameStatusCountdown:
		messages := []string{
			"The countdown is on! Grab your cards before the first ball drops.",
			"Five minutes to go! Check your tickets and get comfortable.",
			"The cage starts spinning soon. Countdown running!",
		}
		return &Event{
			Type:    EventTypeCountdown,
			Title:   "Countdown Started",
			Message: messages[s.rand.Intn(len(messages))],
		}

	case models.GameStatusActive:
		switch from {
		case models.GameStatusPaused:
			messages := []string{
				"And we're back! The balls keep coming.",
				"Break's over! The draw resumes.",
				"The cage spins again. Eyes on your cards!",
			}
			return &Event{
				Type:    EventTypeResumed,
				Title:   "Draw Resumed",
				Message: messages[s.rand.Intn(len(messages))],
			}
		case models.GameStatusValidating:
			// A rejected claim put the draw back in motion; the claim
			// events cover it.
			return nil
		default:
			messages := []string{
				"Here we go! The first ball is about to drop!",
				"The draw is LIVE! Mark your cards and good luck!",
				"Balls in the cage, cards in hand. Let's play!",
			}
			return &Event{
				Type:    EventTypeGameStarted,
				Title:   "Draw Started",
				Message: messages[s.rand.Intn(len(messages))],
			}
		}

	case models.GameStatusPaused:
		messages := []string{
			"Hold tight! The draw is paused.",
			"Short break! The cage stops for a moment.",
			"Paused. Stretch your legs, the balls will wait.",
		}
		return &Event{
			Type:    EventTypePaused,
			Title:   "Draw Paused",
			Message: messages[s.rand.Intn(len(messages))],
		}

	case models.GameStatusValidating:
		// The claim events announce who shouted bingo.
		return nil

	case models.GameStatusFinished:
		messages := []string{
			"That's a wrap! The draw has ended.",
			"Game over! Thanks for playing, see you next draw.",
			"The cage is empty of surprises. This draw is done!",
		}
		return &Event{
			Type:    EventTypeGameFinished,
			Title:   "Draw Finished",
			Message: messages[s.rand.Intn(len(messages))],
		}
	}

	return nil
}

func (s *service) ballEvent(number, position int) *Event {
	label := BallLabel(number)
	messages := []string{
		fmt.Sprintf("Ball %d out of the cage: %s!", position, label),
		fmt.Sprintf("%s! That's ball number %d.", label, position),
		fmt.Sprintf("Here comes %s, ball %d of the draw!", label, position),
		fmt.Sprintf("Mark it if you have it: %s!", label),
	}

	return &Event{
		Type:    EventTypeBallDrawn,
		Title:   label,
		Message: messages[s.rand.Intn(len(messages))],
	}
}

// claimEvents reports claim-list changes between two snapshots of the same
// draw. Claims are append-only except for rejection, so a missing unverified
// claim means the operator turned it down.
func (s *service) claimEvents(prev, cur *models.GameRecord) []*Event {
	var events []*Event

	prevByTicket := make(map[string]*models.ClaimRecord, len(prev.Winners))
	for _, w := range prev.Winners {
		prevByTicket[w.TicketID] = w
	}

	curByTicket := make(map[string]*models.ClaimRecord, len(cur.Winners))
	for _, w := range cur.Winners {
		curByTicket[w.TicketID] = w
	}

	announcedSubmit := make(map[string]bool)
	announcedConfirm := make(map[string]bool)

	for _, w := range cur.Winners {
		before, existed := prevByTicket[w.TicketID]

		if !existed && !w.Verified {
			key := groupKey(w.UserID, w.Timestamp)
			if !announcedSubmit[key] {
				announcedSubmit[key] = true
				events = append(events, s.claimSubmittedEvent(w))
			}
			continue
		}

		wasVerified := existed && before.Verified
		if w.Verified && !wasVerified {
			key := groupKey(w.UserID, w.Timestamp)
			if !announcedConfirm[key] {
				announcedConfirm[key] = true
				events = append(events, s.winnerConfirmedEvent(w))
			}
		}
	}

	announcedReject := make(map[string]bool)
	for _, w := range prev.Winners {
		if w.Verified {
			continue
		}
		if _, stillThere := curByTicket[w.TicketID]; stillThere {
			continue
		}
		key := groupKey(w.UserID, w.Timestamp)
		if !announcedReject[key] {
			announcedReject[key] = true
			events = append(events, s.claimRejectedEvent(w))
		}
	}

	return events
}

func (s *service) claimSubmittedEvent(w *models.ClaimRecord) *Event {
	var messages []string
	if w.MultiClaimCount > 1 {
		messages = []string{
			fmt.Sprintf("BINGO! %s claims a win on %d cards! Verification in progress.", w.UserID, w.MultiClaimCount),
			fmt.Sprintf("%s shouted bingo with %d cards at once! Checking now.", w.UserID, w.MultiClaimCount),
		}
	} else {
		messages = []string{
			fmt.Sprintf("BINGO! %s claims a win! Hold your breath while we verify.", w.UserID),
			fmt.Sprintf("%s shouted bingo! The card goes under the microscope.", w.UserID),
			fmt.Sprintf("A claim from %s! The draw pauses for verification.", w.UserID),
		}
	}

	return &Event{
		Type:    EventTypeClaimSubmitted,
		Title:   "BINGO!",
		Message: messages[s.rand.Intn(len(messages))],
	}
}

func (s *service) winnerConfirmedEvent(w *models.ClaimRecord) *Event {
	messages := []string{
		fmt.Sprintf("Confirmed! %s is a winner, prize position %d!", w.UserID, w.PrizePosition),
		fmt.Sprintf("It's official: %s takes prize position %d! Congratulations!", w.UserID, w.PrizePosition),
		fmt.Sprintf("We have a winner! %s, position %d. Well played!", w.UserID, w.PrizePosition),
	}

	return &Event{
		Type:    EventTypeWinnerConfirmed,
		Title:   "Winner Confirmed",
		Message: messages[s.rand.Intn(len(messages))],
	}
}

func (s *service) claimRejectedEvent(w *models.ClaimRecord) *Event {
	messages := []string{
		fmt.Sprintf("False alarm! %s's claim didn't check out. The draw continues.", w.UserID),
		fmt.Sprintf("%s's bingo didn't hold up under review. Back to the balls!", w.UserID),
		fmt.Sprintf("No dice for %s this time. The cage keeps spinning.", w.UserID),
	}

	return &Event{
		Type:    EventTypeClaimRejected,
		Title:   "Claim Rejected",
		Message: messages[s.rand.Intn(len(messages))],
	}
}

func (s *service) newGameEvent(cur *models.GameRecord) *Event {
	messages := []string{
		"A fresh draw is open! Tickets on sale now.",
		"New game, new luck! Grab your tickets.",
		"The board is clean and the cage is full. New draw open!",
	}

	return &Event{
		Type:    EventTypeNewGame,
		Title:   "New Draw",
		Message: messages[s.rand.Intn(len(messages))],
	}
}

// BallLabel renders a ball with its column letter, e.g. "B-7" or "O-75"
func BallLabel(number int) string {
	if number < 1 || number > bingo.MaxBall {
		return fmt.Sprintf("%d", number)
	}

	var letter string
	switch {
	case number <= 15:
		letter = "B"
	case number <= 30:
		letter = "I"
	case number <= 45:
		letter = "N"
	case number <= 60:
		letter = "G"
	default:
		letter = "O"
	}

	return fmt.Sprintf("%s-%d", letter, number)
}

func groupKey(userID string, ts time.Time) string {
	return fmt.Sprintf("%s|%d", userID, ts.UnixNano())
}
