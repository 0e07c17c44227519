package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexvielma/bingove/internal/bingo"
	"github.com/alexvielma/bingove/internal/models"
)

var testNow = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func waitingRecord() *models.GameRecord {
	return newGameRecord("draw-1", models.GameConfig{Price: 2, MaxTickets: 100}, testNow)
}

func activeRecord() *models.GameRecord {
	rec := waitingRecord()
	rec.Status = models.GameStatusActive
	return rec
}

func TestNewGameRecord(t *testing.T) {
	rec := waitingRecord()

	assert.Equal(t, models.GameStatusWaiting, rec.Status)
	assert.Equal(t, models.GameModeAuto, rec.Mode)
	assert.Equal(t, "draw-1", rec.DrawID)
	assert.Empty(t, rec.History)
	assert.Empty(t, rec.Winners)
	assert.Equal(t, 0, rec.CurrentNumber)
	assert.True(t, rec.CountdownStartTime.IsZero())
}

func TestStartCountdown(t *testing.T) {
	rec, err := transitionStartCountdown(testNow)(waitingRecord())
	require.NoError(t, err)

	assert.Equal(t, models.GameStatusCountdown, rec.Status)
	assert.Equal(t, testNow, rec.CountdownStartTime)
}

func TestStartCountdownRequiresWaiting(t *testing.T) {
	_, err := transitionStartCountdown(testNow)(activeRecord())
	assert.Equal(t, ErrInvalidGameState, err)
}

func TestFinishCountdown(t *testing.T) {
	rec := waitingRecord()
	rec.Status = models.GameStatusCountdown

	later := testNow.Add(5 * time.Minute)
	rec, err := transitionFinishCountdown(later)(rec)
	require.NoError(t, err)

	assert.Equal(t, models.GameStatusActive, rec.Status)
	assert.Equal(t, later, rec.LastBallTime)
}

func TestPauseResume(t *testing.T) {
	rec, err := transitionPause()(activeRecord())
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusPaused, rec.Status)

	rec, err = transitionResume()(rec)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusActive, rec.Status)

	// Pausing a waiting game is refused
	_, err = transitionPause()(waitingRecord())
	assert.Equal(t, ErrInvalidGameState, err)

	// Resuming an active game is refused
	_, err = transitionResume()(activeRecord())
	assert.Equal(t, ErrInvalidGameState, err)
}

func TestUpdateConfigPartial(t *testing.T) {
	rec := waitingRecord()
	rec.Config.StartTime = "20:00"

	price := 5.0
	maxTickets := 50
	rec, err := transitionUpdateConfig(&UpdateConfigInput{
		Price:      &price,
		MaxTickets: &maxTickets,
		Prizes:     []float64{100, 50},
	})(rec)
	require.NoError(t, err)

	assert.Equal(t, 5.0, rec.Config.Price)
	assert.Equal(t, 50, rec.Config.MaxTickets)
	assert.Equal(t, []float64{100, 50}, rec.Config.Prizes)

	// Untouched fields survive
	assert.Equal(t, "20:00", rec.Config.StartTime)
}

func TestDrawBall(t *testing.T) {
	roller := bingo.New(&bingo.Config{Seed: 42})

	rec, err := transitionDrawBall(roller, testNow)(activeRecord())
	require.NoError(t, err)

	assert.Len(t, rec.History, 1)
	assert.Equal(t, rec.History[0], rec.CurrentNumber)
	assert.Equal(t, testNow, rec.LastBallTime)
	assert.Equal(t, models.GameStatusActive, rec.Status)
}

func TestDrawBallRequiresActive(t *testing.T) {
	roller := bingo.New(&bingo.Config{Seed: 42})

	for _, status := range []models.GameStatus{
		models.GameStatusWaiting,
		models.GameStatusCountdown,
		models.GameStatusPaused,
		models.GameStatusValidating,
		models.GameStatusFinished,
	} {
		rec := waitingRecord()
		rec.Status = status
		_, err := transitionDrawBall(roller, testNow)(rec)
		assert.Equal(t, ErrInvalidGameState, err, "status %s", status)
	}
}

func TestDrawBallFinishesOnExhaustion(t *testing.T) {
	roller := bingo.New(&bingo.Config{Seed: 42})

	rec := activeRecord()
	for n := 1; n < bingo.MaxBall; n++ {
		rec.History = append(rec.History, n)
	}

	// 75th ball drawn, game finishes with the ball recorded
	rec, err := transitionDrawBall(roller, testNow)(rec)
	require.NoError(t, err)
	assert.Len(t, rec.History, bingo.MaxBall)
	assert.Equal(t, bingo.MaxBall, rec.CurrentNumber)
	assert.Equal(t, models.GameStatusFinished, rec.Status)
}

func TestSubmitClaimSingleCard(t *testing.T) {
	rec := activeRecord()
	rec.History = []int{1, 2, 3}

	rec, err := transitionSubmitClaim("alice", []ClaimCard{
		{TicketID: "t1", Numbers: []int{1, 2, 3, 99}},
	}, testNow)(rec)
	require.NoError(t, err)

	require.Len(t, rec.Winners, 1)
	assert.Equal(t, models.GameStatusValidating, rec.Status)
	assert.Equal(t, "alice", rec.Winners[0].UserID)
	assert.Equal(t, testNow, rec.Winners[0].Timestamp)
	assert.False(t, rec.Winners[0].Verified)
	assert.False(t, rec.Winners[0].FullHouse, "99 was never drawn")
	assert.Equal(t, 1, rec.Winners[0].MultiClaimCount)
}

func TestSubmitClaimMultiCardGroup(t *testing.T) {
	roller := bingo.New(&bingo.Config{Seed: 42})
	cardA := roller.Card()
	cardB := roller.Card()

	rec := activeRecord()
	rec.History = bingo.PlayableNumbers(cardA)

	rec, err := transitionSubmitClaim("alice", []ClaimCard{
		{TicketID: "t1", Numbers: cardA},
		{TicketID: "t2", Numbers: cardB},
	}, testNow)(rec)
	require.NoError(t, err)

	require.Len(t, rec.Winners, 2)
	assert.True(t, rec.Winners[0].FullHouse)
	assert.False(t, rec.Winners[1].FullHouse)
	for _, w := range rec.Winners {
		assert.Equal(t, 2, w.MultiClaimCount)
		assert.Equal(t, testNow, w.Timestamp)
	}
}

func TestSubmitClaimWhileValidating(t *testing.T) {
	rec := activeRecord()
	rec, err := transitionSubmitClaim("alice", []ClaimCard{{TicketID: "t1"}}, testNow)(rec)
	require.NoError(t, err)

	// A second user claims while the first is being arbitrated
	rec, err = transitionSubmitClaim("bob", []ClaimCard{{TicketID: "t2"}}, testNow.Add(time.Second))(rec)
	require.NoError(t, err)
	assert.Len(t, rec.Winners, 2)
}

func TestSubmitClaimRejectsDuplicateTicket(t *testing.T) {
	rec := activeRecord()
	rec, err := transitionSubmitClaim("alice", []ClaimCard{{TicketID: "t1"}}, testNow)(rec)
	require.NoError(t, err)

	// Same ticket in a new batch rejects the whole batch atomically
	_, err = transitionSubmitClaim("bob", []ClaimCard{
		{TicketID: "t9"},
		{TicketID: "t1"},
	}, testNow.Add(time.Second))(rec)
	assert.Equal(t, ErrTicketAlreadyClaimed, err)
	assert.Len(t, rec.Winners, 1)
}

func TestSubmitClaimNotAdmittedWhenNotRunning(t *testing.T) {
	for _, status := range []models.GameStatus{
		models.GameStatusWaiting,
		models.GameStatusCountdown,
		models.GameStatusPaused,
		models.GameStatusFinished,
	} {
		rec := waitingRecord()
		rec.Status = status
		_, err := transitionSubmitClaim("alice", []ClaimCard{{TicketID: "t1"}}, testNow)(rec)
		assert.Equal(t, ErrClaimNotAdmitted, err, "status %s", status)
	}
}

func TestConfirmClaimFinishesDraw(t *testing.T) {
	rec := activeRecord()
	rec, err := transitionSubmitClaim("alice", []ClaimCard{
		{TicketID: "t1"},
		{TicketID: "t2"},
	}, testNow)(rec)
	require.NoError(t, err)

	rec, err = transitionConfirmClaim("alice", testNow)(rec)
	require.NoError(t, err)

	assert.Equal(t, models.GameStatusFinished, rec.Status)
	require.Len(t, rec.Winners, 2)
	assert.True(t, rec.Winners[0].Verified)
	assert.True(t, rec.Winners[1].Verified)
	assert.Equal(t, 1, rec.Winners[0].PrizePosition)
	assert.Equal(t, 2, rec.Winners[1].PrizePosition)
	assert.Equal(t, models.PayoutStatusPendingInfo, rec.Winners[0].PayoutStatus)
}

func TestConfirmClaimPositionsContinueFromVerified(t *testing.T) {
	rec := activeRecord()

	rec, err := transitionSubmitClaim("alice", []ClaimCard{{TicketID: "t1"}}, testNow)(rec)
	require.NoError(t, err)
	bobTime := testNow.Add(time.Second)
	rec, err = transitionSubmitClaim("bob", []ClaimCard{{TicketID: "t2"}, {TicketID: "t3"}}, bobTime)(rec)
	require.NoError(t, err)

	rec, err = transitionConfirmClaim("alice", testNow)(rec)
	require.NoError(t, err)
	rec, err = transitionConfirmClaim("bob", bobTime)(rec)
	require.NoError(t, err)

	positions := map[string]int{}
	for _, w := range rec.Winners {
		positions[w.TicketID] = w.PrizePosition
	}
	assert.Equal(t, 1, positions["t1"])
	assert.Equal(t, 2, positions["t2"])
	assert.Equal(t, 3, positions["t3"])
}

func TestConfirmClaimLeavesOtherPendingGroups(t *testing.T) {
	rec := activeRecord()
	rec, err := transitionSubmitClaim("alice", []ClaimCard{{TicketID: "t1"}}, testNow)(rec)
	require.NoError(t, err)
	bobTime := testNow.Add(time.Second)
	rec, err = transitionSubmitClaim("bob", []ClaimCard{{TicketID: "t2"}}, bobTime)(rec)
	require.NoError(t, err)

	// Confirming alice finishes the draw; bob's group stays pending in the
	// record rather than being resolved.
	rec, err = transitionConfirmClaim("alice", testNow)(rec)
	require.NoError(t, err)

	assert.Equal(t, models.GameStatusFinished, rec.Status)
	require.Len(t, rec.Winners, 2)
	assert.True(t, rec.HasPendingClaims())
}

func TestConfirmClaimUnknownGroup(t *testing.T) {
	rec := activeRecord()
	_, err := transitionConfirmClaim("nobody", testNow)(rec)
	assert.Equal(t, ErrClaimNotFound, err)
}

func TestRejectClaimReturnsToActive(t *testing.T) {
	rec := activeRecord()
	rec, err := transitionSubmitClaim("alice", []ClaimCard{{TicketID: "t1"}, {TicketID: "t2"}}, testNow)(rec)
	require.NoError(t, err)

	rec, err = transitionRejectClaim("alice", testNow)(rec)
	require.NoError(t, err)

	assert.Equal(t, models.GameStatusActive, rec.Status)
	assert.Empty(t, rec.Winners)
}

func TestRejectClaimKeepsValidatingWithOtherPending(t *testing.T) {
	rec := activeRecord()
	rec, err := transitionSubmitClaim("alice", []ClaimCard{{TicketID: "t1"}}, testNow)(rec)
	require.NoError(t, err)
	bobTime := testNow.Add(time.Second)
	rec, err = transitionSubmitClaim("bob", []ClaimCard{{TicketID: "t2"}}, bobTime)(rec)
	require.NoError(t, err)

	rec, err = transitionRejectClaim("alice", testNow)(rec)
	require.NoError(t, err)

	assert.Equal(t, models.GameStatusValidating, rec.Status)
	require.Len(t, rec.Winners, 1)
	assert.Equal(t, "bob", rec.Winners[0].UserID)
}

func TestRejectClaimUnknownGroup(t *testing.T) {
	rec := activeRecord()
	_, err := transitionRejectClaim("nobody", testNow)(rec)
	assert.Equal(t, ErrClaimNotFound, err)
}

func TestPayoutProgress(t *testing.T) {
	rec := activeRecord()
	rec, err := transitionSubmitClaim("alice", []ClaimCard{{TicketID: "t1"}}, testNow)(rec)
	require.NoError(t, err)
	rec, err = transitionConfirmClaim("alice", testNow)(rec)
	require.NoError(t, err)

	details := &models.PayoutDetails{Bank: "Banesco", Phone: "0412", CI: "V-1"}
	rec, err = transitionSubmitPayoutDetails("t1", details)(rec)
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusProcessing, rec.Winners[0].PayoutStatus)
	assert.Equal(t, details, rec.Winners[0].PayoutDetails)

	rec, err = transitionMarkPaid("t1")(rec)
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusPaid, rec.Winners[0].PayoutStatus)

	_, err = transitionMarkPaid("unknown")(rec)
	assert.Equal(t, ErrWinnerNotFound, err)
}

func TestTicketsSoldCreditsCounter(t *testing.T) {
	rec := waitingRecord()
	rec, err := transitionTicketsSold(3, testNow)(rec)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.Config.TotalTickets)
	assert.Equal(t, models.GameStatusWaiting, rec.Status)
}

func TestTicketsSoldAutoStartsAtCap(t *testing.T) {
	rec := waitingRecord()
	rec.Config.MaxTickets = 5
	rec.Config.TotalTickets = 3

	rec, err := transitionTicketsSold(2, testNow)(rec)
	require.NoError(t, err)

	assert.Equal(t, 5, rec.Config.TotalTickets)
	assert.Equal(t, models.GameStatusCountdown, rec.Status)
	assert.Equal(t, testNow, rec.CountdownStartTime)
}

func TestTicketsSoldNoAutoStartOutsideWaiting(t *testing.T) {
	rec := activeRecord()
	rec.Config.MaxTickets = 1

	rec, err := transitionTicketsSold(5, testNow)(rec)
	require.NoError(t, err)

	assert.Equal(t, 5, rec.Config.TotalTickets)
	assert.Equal(t, models.GameStatusActive, rec.Status)
}

func TestTicketsSoldUnlimitedWhenNoCap(t *testing.T) {
	rec := waitingRecord()
	rec.Config.MaxTickets = 0

	rec, err := transitionTicketsSold(1000, testNow)(rec)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusWaiting, rec.Status)
}
