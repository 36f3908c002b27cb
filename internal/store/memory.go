// internal/store/memory.go
//
// In-memory implementation of Store.
// This is a lightweight persistence layer used for development and tests,
// or when durability is not required.
//
// Characteristics:
//   - Games are kept as snapshots and restored on every read, so callers
//     never share state with the store.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/stats"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu        sync.RWMutex             // guards everything below
	games     map[string]game.Snapshot // keyed by Game.ID
	gameOrder []string
	users     map[string]stats.User // keyed by User.ID
	userOrder []string
	names     map[string]string // folded name → user ID
	scores    []stats.Score
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		games: make(map[string]game.Snapshot),
		users: make(map[string]stats.User),
		names: make(map[string]string),
	}
}

// SaveGame adds or replaces the game snapshot.
func (m *memory) SaveGame(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; !ok {
		m.gameOrder = append(m.gameOrder, g.ID)
	}
	m.games[g.ID] = g.Snapshot()
	return nil
}

// GetGame restores a fresh copy of the stored game.
func (m *memory) GetGame(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	snap, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotFound
	}
	return game.Restore(snap)
}

func (m *memory) ListGames(ctx context.Context, f GameFilter) ([]*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*game.Game
	for _, id := range m.gameOrder {
		snap := m.games[id]
		if f.UserID != "" && snap.UserID != f.UserID {
			continue
		}
		if f.Status != "" && snap.Status != f.Status {
			continue
		}
		g, err := game.Restore(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (m *memory) CreateUser(ctx context.Context, u stats.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := nameKey(u.Name)
	if _, taken := m.names[key]; taken {
		return ErrDuplicateUserName
	}
	m.names[key] = u.ID
	m.users[u.ID] = u
	m.userOrder = append(m.userOrder, u.ID)
	return nil
}

func (m *memory) GetUser(ctx context.Context, id string) (stats.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return stats.User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *memory) GetUserByName(ctx context.Context, name string) (stats.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.names[nameKey(name)]
	if !ok {
		return stats.User{}, ErrUserNotFound
	}
	return m.users[id], nil
}

func (m *memory) ListUsers(ctx context.Context) ([]stats.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]stats.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		out = append(out, m.users[id])
	}
	return out, nil
}

// UpdateUser runs fn on a copy under the write lock and keeps the result
// only when fn succeeds.
func (m *memory) UpdateUser(ctx context.Context, id string, fn func(*stats.User) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if err := fn(&u); err != nil {
		return err
	}
	m.users[id] = u
	return nil
}

func (m *memory) AppendScore(ctx context.Context, s stats.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, s)
	return nil
}

func (m *memory) ListScores(ctx context.Context, q ScoreQuery) ([]stats.Score, error) {
	m.mu.RLock()
	out := make([]stats.Score, 0, len(m.scores))
	for _, s := range m.scores {
		if q.UserID == "" || s.UserID == q.UserID {
			out = append(out, s)
		}
	}
	m.mu.RUnlock()

	if q.Order == stats.OrderByMisses {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Misses != out[j].Misses {
				return out[i].Misses < out[j].Misses
			}
			return out[i].Date.Before(out[j].Date)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memory) Close() error { return nil }

// nameKey folds a user name for uniqueness checks.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
