// internal/stats/user.go
//
// Player records and their running aggregates.
// A User is created once at registration and afterwards only changes through
// Apply, which the Aggregator runs inside a store-level atomic update.

package stats

import "time"

// User is a registered player with running game aggregates.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	GamesStarted int       `json:"gamesStarted"` // terminal games counted, cancelled ones included
	GamesWon     int       `json:"gamesWon"`
	MissesTotal  int       `json:"missesTotal"` // misses summed over won games
	CreatedAt    time.Time `json:"createdAt"`
}

// WinPercentage returns GamesWon / GamesStarted, or 0 before any game.
func (u User) WinPercentage() float64 {
	if u.GamesStarted == 0 {
		return 0
	}
	return float64(u.GamesWon) / float64(u.GamesStarted)
}

// AverageMisses returns the mean misses per won game, or 0 before any win.
func (u User) AverageMisses() float64 {
	if u.GamesWon == 0 {
		return 0
	}
	return float64(u.MissesTotal) / float64(u.GamesWon)
}

// Apply folds one finished game into the aggregates.
func (u *User) Apply(won bool, misses int) {
	u.GamesStarted++
	if won {
		u.GamesWon++
		u.MissesTotal += misses
	}
}
