package models

import (
	"time"
)

// ArchivedGame is the immutable snapshot of a finished draw, keyed by DrawID.
type ArchivedGame struct {
	DrawID       string     `json:"drawId"`
	Record       GameRecord `json:"record"`
	TotalTickets int        `json:"totalTickets"`
	ArchivedAt   time.Time  `json:"archivedAt"`
}

// PrizePool is the accumulating revenue and jackpot balance. The jackpot is
// credited a fixed fraction of every approved payment and outlives any single
// draw.
type PrizePool struct {
	TotalRevenue float64 `json:"totalRevenue"`
	Jackpot      float64 `json:"jackpot"`
}
