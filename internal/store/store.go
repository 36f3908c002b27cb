// internal/store/store.go
//
// Persistence ports for games, users and scores.
// Implementations:
//   - memory.go: map-backed, process-local, used in development and tests.
//   - sqlite.go: durable SQLite storage.
//
// Each method is an atomic unit of persistence. UpdateUser is the only
// read-modify-write operation and must serialize concurrent updates per user.

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/stats"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUserName = errors.New("a user with that name already exists")
)

// GameFilter narrows ListGames. Zero fields match everything.
type GameFilter struct {
	UserID string
	Status game.Status
}

// ScoreQuery narrows and orders ListScores. Limit <= 0 means no limit.
type ScoreQuery struct {
	UserID string
	Order  stats.ScoreOrder
	Limit  int
}

// GameStore persists games.
type GameStore interface {
	// SaveGame inserts or replaces the game state.
	SaveGame(ctx context.Context, g *game.Game) error

	// GetGame returns a private copy of the game, or ErrGameNotFound.
	GetGame(ctx context.Context, id string) (*game.Game, error)

	// ListGames returns matching games, oldest first.
	ListGames(ctx context.Context, f GameFilter) ([]*game.Game, error)
}

// UserStore persists users.
type UserStore interface {
	// CreateUser inserts a user, or returns ErrDuplicateUserName when the
	// name is taken (compared case-insensitively).
	CreateUser(ctx context.Context, u stats.User) error

	GetUser(ctx context.Context, id string) (stats.User, error)
	GetUserByName(ctx context.Context, name string) (stats.User, error)

	// ListUsers returns every user in registration order.
	ListUsers(ctx context.Context) ([]stats.User, error)

	// UpdateUser applies fn atomically; see stats.UserUpdater.
	UpdateUser(ctx context.Context, id string, fn func(*stats.User) error) error
}

// ScoreStore persists score records.
type ScoreStore interface {
	AppendScore(ctx context.Context, s stats.Score) error
	ListScores(ctx context.Context, q ScoreQuery) ([]stats.Score, error)
}

// Store bundles all persistence ports.
type Store interface {
	GameStore
	UserStore
	ScoreStore
	Close() error
}
