package announcer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexvielma/bingove/internal/models"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(&Config{Seed: 42})
	require.NoError(t, err)
	return svc
}

func record(status models.GameStatus) *models.GameRecord {
	return &models.GameRecord{
		Status:  status,
		Mode:    models.GameModeAuto,
		History: []int{},
		DrawID:  "draw-1",
		Winners: []*models.ClaimRecord{},
	}
}

func diff(t *testing.T, svc Service, prev, cur *models.GameRecord) []*Event {
	t.Helper()
	out, err := svc.Diff(context.Background(), &DiffInput{Previous: prev, Current: cur})
	require.NoError(t, err)
	return out.Events
}

func eventTypes(events []*Event) []EventType {
	types := make([]EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestDiffFirstSnapshotIsSilent(t *testing.T) {
	svc := newTestService(t)
	assert.Empty(t, diff(t, svc, nil, record(models.GameStatusActive)))
}

func TestDiffIdenticalSnapshots(t *testing.T) {
	svc := newTestService(t)
	assert.Empty(t, diff(t, svc, record(models.GameStatusActive), record(models.GameStatusActive)))
}

func TestDiffNilCurrent(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Diff(context.Background(), &DiffInput{Previous: record(models.GameStatusActive)})
	assert.Error(t, err)
}

func TestDiffStatusTransitions(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name string
		from models.GameStatus
		to   models.GameStatus
		want EventType
	}{
		{"countdown", models.GameStatusWaiting, models.GameStatusCountdown, EventTypeCountdown},
		{"started", models.GameStatusCountdown, models.GameStatusActive, EventTypeGameStarted},
		{"paused", models.GameStatusActive, models.GameStatusPaused, EventTypePaused},
		{"resumed", models.GameStatusPaused, models.GameStatusActive, EventTypeResumed},
		{"finished", models.GameStatusActive, models.GameStatusFinished, EventTypeGameFinished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := diff(t, svc, record(tt.from), record(tt.to))
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0].Type)
			assert.NotEmpty(t, events[0].Message)
		})
	}
}

func TestDiffValidatingTransitionIsCoveredByClaimEvents(t *testing.T) {
	svc := newTestService(t)

	// active → validating with a new claim announces the claim, not the status
	prev := record(models.GameStatusActive)
	cur := record(models.GameStatusValidating)
	cur.Winners = []*models.ClaimRecord{
		{UserID: "alice", TicketID: "ticket-1", Timestamp: time.Unix(100, 0), MultiClaimCount: 1},
	}

	events := diff(t, svc, prev, cur)
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeClaimSubmitted, events[0].Type)
}

func TestDiffNewBalls(t *testing.T) {
	svc := newTestService(t)

	prev := record(models.GameStatusActive)
	prev.History = []int{7}
	cur := record(models.GameStatusActive)
	cur.History = []int{7, 22, 75}

	events := diff(t, svc, prev, cur)
	require.Len(t, events, 2)
	assert.Equal(t, EventTypeBallDrawn, events[0].Type)
	assert.Equal(t, "I-22", events[0].Title)
	assert.Equal(t, "O-75", events[1].Title)
}

func TestDiffMultiCardClaimAnnouncedOnce(t *testing.T) {
	svc := newTestService(t)

	ts := time.Unix(100, 0)
	prev := record(models.GameStatusActive)
	cur := record(models.GameStatusValidating)
	cur.Winners = []*models.ClaimRecord{
		{UserID: "alice", TicketID: "ticket-1", Timestamp: ts, MultiClaimCount: 2},
		{UserID: "alice", TicketID: "ticket-2", Timestamp: ts, MultiClaimCount: 2},
	}

	events := diff(t, svc, prev, cur)
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeClaimSubmitted, events[0].Type)
}

func TestDiffSeparateGroupsAnnouncedSeparately(t *testing.T) {
	svc := newTestService(t)

	prev := record(models.GameStatusValidating)
	prev.Winners = []*models.ClaimRecord{
		{UserID: "alice", TicketID: "ticket-1", Timestamp: time.Unix(100, 0), MultiClaimCount: 1},
	}
	cur := record(models.GameStatusValidating)
	cur.Winners = []*models.ClaimRecord{
		{UserID: "alice", TicketID: "ticket-1", Timestamp: time.Unix(100, 0), MultiClaimCount: 1},
		{UserID: "bob", TicketID: "ticket-2", Timestamp: time.Unix(200, 0), MultiClaimCount: 1},
	}

	events := diff(t, svc, prev, cur)
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeClaimSubmitted, events[0].Type)
	assert.Contains(t, events[0].Message, "bob")
}

func TestDiffWinnerConfirmed(t *testing.T) {
	svc := newTestService(t)

	ts := time.Unix(100, 0)
	prev := record(models.GameStatusValidating)
	prev.Winners = []*models.ClaimRecord{
		{UserID: "alice", TicketID: "ticket-1", Timestamp: ts, MultiClaimCount: 2},
		{UserID: "alice", TicketID: "ticket-2", Timestamp: ts, MultiClaimCount: 2},
	}
	cur := record(models.GameStatusFinished)
	cur.Winners = []*models.ClaimRecord{
		{UserID: "alice", TicketID: "ticket-1", Timestamp: ts, MultiClaimCount: 2, Verified: true, PrizePosition: 1},
		{UserID: "alice", TicketID: "ticket-2", Timestamp: ts, MultiClaimCount: 2, Verified: true, PrizePosition: 2},
	}

	events := diff(t, svc, prev, cur)
	types := eventTypes(events)

	// One confirmation for the linked group plus the finished lifecycle event
	assert.Contains(t, types, EventTypeGameFinished)
	confirmations := 0
	for _, typ := range types {
		if typ == EventTypeWinnerConfirmed {
			confirmations++
		}
	}
	assert.Equal(t, 1, confirmations)
}

func TestDiffClaimRejected(t *testing.T) {
	svc := newTestService(t)

	ts := time.Unix(100, 0)
	prev := record(models.GameStatusValidating)
	prev.Winners = []*models.ClaimRecord{
		{UserID: "alice", TicketID: "ticket-1", Timestamp: ts, MultiClaimCount: 2},
		{UserID: "alice", TicketID: "ticket-2", Timestamp: ts, MultiClaimCount: 2},
	}
	cur := record(models.GameStatusActive)

	events := diff(t, svc, prev, cur)
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeClaimRejected, events[0].Type)
}

func TestDiffDrawChangeAnnouncesNewGameOnly(t *testing.T) {
	svc := newTestService(t)

	prev := record(models.GameStatusFinished)
	prev.History = []int{1, 2, 3}
	prev.Winners = []*models.ClaimRecord{
		{UserID: "alice", TicketID: "ticket-1", Timestamp: time.Unix(100, 0), Verified: true, PrizePosition: 1},
	}

	cur := record(models.GameStatusWaiting)
	cur.DrawID = "draw-2"

	events := diff(t, svc, prev, cur)
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeNewGame, events[0].Type)
}

func TestGetPresenceMessage(t *testing.T) {
	svc := newTestService(t)

	for _, count := range []int{0, 1, 12} {
		out, err := svc.GetPresenceMessage(context.Background(), &GetPresenceMessageInput{Count: count})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Message)
	}
}

func TestBallLabel(t *testing.T) {
	tests := []struct {
		number int
		want   string
	}{
		{1, "B-1"},
		{15, "B-15"},
		{16, "I-16"},
		{30, "I-30"},
		{31, "N-31"},
		{45, "N-45"},
		{46, "G-46"},
		{60, "G-60"},
		{61, "O-61"},
		{75, "O-75"},
		{99, "99"},
		{0, "0"},
		{-3, "-3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BallLabel(tt.number))
	}
}
