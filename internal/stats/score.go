package stats

import "time"

// Score is the immutable record of a won game. Lower misses is better.
type Score struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	GameID   string    `json:"gameId"`
	Date     time.Time `json:"date"`
	Won      bool      `json:"won"`
	Misses   int       `json:"misses"`
}

// ScoreOrder selects how score listings are sorted.
type ScoreOrder string

const (
	OrderByDate   ScoreOrder = "date"   // newest first
	OrderByMisses ScoreOrder = "misses" // fewest misses first, then oldest
)

// ParseScoreOrder maps a query value onto a ScoreOrder, defaulting to date.
func ParseScoreOrder(s string) ScoreOrder {
	if ScoreOrder(s) == OrderByMisses {
		return OrderByMisses
	}
	return OrderByDate
}
