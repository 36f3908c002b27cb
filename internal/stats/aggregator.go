package stats

import (
	"context"
	"fmt"
)

// UserUpdater applies fn to the user with the given id as one atomic unit.
// Implementations must serialize concurrent updates of the same user and
// persist the result only when fn returns nil.
type UserUpdater interface {
	UpdateUser(ctx context.Context, id string, fn func(*User) error) error
}

// Aggregator maintains per-user statistics.
type Aggregator struct {
	users UserUpdater
}

// NewAggregator returns an Aggregator writing through users.
func NewAggregator(users UserUpdater) *Aggregator {
	return &Aggregator{users: users}
}

// RecordOutcome counts one finished game for userID.
func (a *Aggregator) RecordOutcome(ctx context.Context, userID string, won bool, misses int) error {
	err := a.users.UpdateUser(ctx, userID, func(u *User) error {
		u.Apply(won, misses)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record outcome for %s: %w", userID, err)
	}
	return nil
}
