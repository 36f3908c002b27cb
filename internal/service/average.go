package service

import (
	"context"
	"fmt"

	"github.com/robalobadob/hangman/internal/cache"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/store"
)

// MovesRemainingKey is the cache key holding the published average.
const MovesRemainingKey = "MOVES_REMAINING"

// AverageAttempts recomputes the average attempts remaining across active
// games and publishes it to a cache. It is driven externally (scheduler,
// game creation hook) and never from the guess path.
type AverageAttempts struct {
	games   store.GameStore
	cache   cache.Cache
	metrics *metrics.Metrics
}

// NewAverageAttempts wires the recompute job. m may be nil.
func NewAverageAttempts(games store.GameStore, c cache.Cache, m *metrics.Metrics) *AverageAttempts {
	return &AverageAttempts{games: games, cache: c, metrics: m}
}

// Recompute scans active games and publishes the average. With no active
// games the previous value is left in place and ok is false.
func (a *AverageAttempts) Recompute(ctx context.Context) (avg float64, ok bool, err error) {
	games, err := a.games.ListGames(ctx, store.GameFilter{Status: game.StatusActive})
	if err != nil {
		return 0, false, fmt.Errorf("list active games: %w", err)
	}
	if len(games) == 0 {
		return 0, false, nil
	}

	total := 0
	for _, g := range games {
		total += g.AttemptsRemaining()
	}
	avg = float64(total) / float64(len(games))

	msg := fmt.Sprintf("The average moves remaining is %.2f", avg)
	if err := a.cache.Set(ctx, MovesRemainingKey, msg, 0); err != nil {
		return 0, false, err
	}
	a.metrics.SetAverageAttempts(avg)
	return avg, true, nil
}

// Current returns the last published message, or "" before the first publish.
func (a *AverageAttempts) Current(ctx context.Context) (string, error) {
	v, _, err := a.cache.Get(ctx, MovesRemainingKey)
	return v, err
}
