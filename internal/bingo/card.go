package bingo

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// MaxBall is the highest ball in a 75-ball game
	MaxBall = 75

	// FreeCell is the sentinel for the always-marked center cell
	FreeCell = 0

	// CardSize is the number of cells on a card
	CardSize = 25
)

// columnRanges are the inclusive number ranges for the B, I, N, G, O columns
var columnRanges = [5]struct{ min, max int }{
	{1, 15},
	{16, 30},
	{31, 45},
	{46, 60},
	{61, 75},
}

// Roller provides the randomness for card generation and ball draws. One
// instance is shared between the draw scheduler and HTTP handlers, so access
// to the underlying source is serialized.
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new roller
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Card generates a rule-valid 5x5 bingo card as a row-major slice of 25 cells.
// Each column holds 5 numbers drawn without replacement from its range; the
// center cell is the free cell.
func (r *Roller) Card() []int {
	var columns [5][]int
	for col, rng := range columnRanges {
		columns[col] = r.sample(rng.min, rng.max, 5)
	}

	// Center of the N column
	columns[2][2] = FreeCell

	card := make([]int, 0, CardSize)
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			card = append(card, columns[col][row])
		}
	}
	return card
}

// PlayableNumbers returns the 24 non-free numbers of a row-major card
func PlayableNumbers(card []int) []int {
	numbers := make([]int, 0, CardSize-1)
	for _, n := range card {
		if n != FreeCell {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// Pick draws one ball uniformly from the balls not yet in history. It reports
// false when all balls have been drawn. The remaining pool is rebuilt from
// history on every call, so callers may safely retry with a fresher history.
func (r *Roller) Pick(history []int) (int, bool) {
	drawn := make(map[int]bool, len(history))
	for _, n := range history {
		drawn[n] = true
	}

	remaining := make([]int, 0, MaxBall-len(history))
	for n := 1; n <= MaxBall; n++ {
		if !drawn[n] {
			remaining = append(remaining, n)
		}
	}

	if len(remaining) == 0 {
		return 0, false
	}
	return remaining[r.intn(len(remaining))], true
}

func (r *Roller) intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}

// sample returns count distinct numbers drawn uniformly from [min, max]
func (r *Roller) sample(min, max, count int) []int {
	picked := make([]int, 0, count)
	seen := make(map[int]bool, count)
	for len(picked) < count {
		n := r.intn(max-min+1) + min
		if seen[n] {
			continue
		}
		seen[n] = true
		picked = append(picked, n)
	}
	return picked
}
