package bingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFullHouse(t *testing.T) {
	roller := New(&Config{Seed: 42})
	card := roller.Card()

	// Every playable number drawn, in arbitrary order
	history := PlayableNumbers(card)
	assert.True(t, IsFullHouse(card, history))

	// One number short
	assert.False(t, IsFullHouse(card, history[:len(history)-1]))

	// Empty history only covers a card of free cells
	assert.False(t, IsFullHouse(card, nil))
}

func TestIsFullHouseIgnoresExtraDraws(t *testing.T) {
	roller := New(&Config{Seed: 42})
	card := roller.Card()

	history := make([]int, 0, MaxBall)
	for n := 1; n <= MaxBall; n++ {
		history = append(history, n)
	}
	assert.True(t, IsFullHouse(card, history))
}

func TestWinningDetail(t *testing.T) {
	roller := New(&Config{Seed: 42})
	card := roller.Card()
	history := PlayableNumbers(card)

	matched := WinningDetail(card, history)
	require.Len(t, matched, CardSize)
	assert.Equal(t, card, matched)

	assert.Nil(t, WinningDetail(card, history[:10]))
}
