package stats

import "sort"

// Ranking is one row of the leaderboard.
type Ranking struct {
	Position      int     `json:"position"`
	Name          string  `json:"name"`
	WinPercentage float64 `json:"winPercentage"`
	AverageMisses float64 `json:"averageMisses"`
	GamesStarted  int     `json:"gamesStarted"`
	GamesWon      int     `json:"gamesWon"`
}

// Rank orders users by win percentage (highest first), then by average
// misses (lowest first). Users tied on both keep their input order.
// The input slice is not modified.
func Rank(users []User) []User {
	out := make([]User, len(users))
	copy(out, users)
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].WinPercentage(), out[j].WinPercentage()
		if wi != wj {
			return wi > wj
		}
		return out[i].AverageMisses() < out[j].AverageMisses()
	})
	return out
}

// Leaderboard ranks users and renders them as Ranking rows.
func Leaderboard(users []User) []Ranking {
	ranked := Rank(users)
	out := make([]Ranking, len(ranked))
	for i, u := range ranked {
		out[i] = Ranking{
			Position:      i + 1,
			Name:          u.Name,
			WinPercentage: u.WinPercentage(),
			AverageMisses: u.AverageMisses(),
			GamesStarted:  u.GamesStarted,
			GamesWon:      u.GamesWon,
		}
	}
	return out
}
