package bingo

// IsFullHouse reports whether every cell of a row-major card is covered by the
// drawn history. The free cell always counts as drawn. Order of the history is
// irrelevant. Full house is the only supported win condition; row, column and
// diagonal wins are deliberately not evaluated.
func IsFullHouse(card []int, history []int) bool {
	drawn := drawnSet(history)
	for _, n := range card {
		if !drawn[n] {
			return false
		}
	}
	return true
}

// WinningDetail returns the matched cells of a full-house card for highlighting,
// or nil when the card is not fully covered.
func WinningDetail(card []int, history []int) []int {
	drawn := drawnSet(history)
	matched := make([]int, 0, len(card))
	for _, n := range card {
		if !drawn[n] {
			return nil
		}
		matched = append(matched, n)
	}
	return matched
}

func drawnSet(history []int) map[int]bool {
	drawn := make(map[int]bool, len(history)+1)
	drawn[FreeCell] = true
	for _, n := range history {
		drawn[n] = true
	}
	return drawn
}
