// internal/service/service.go
//
// Application service tying the game engine to storage and statistics.
// Responsibilities:
//   - Register users and start games with a word from the configured source.
//   - Serialize guesses and cancellations per game (load → mutate → save).
//   - On a terminal transition, record a score for wins and update the owner's
//     aggregates for every outcome, after the game itself has been saved.
//     Recording failures are logged; the applied guess still succeeds.
//   - Read-side queries: history, active games, scores, rankings.

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/stats"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// ErrInvalidUserName is returned when a user name is blank.
var ErrInvalidUserName = errors.New("user name is required")

// Config wires a Service.
type Config struct {
	Store           store.Store
	Words           words.Source
	Metrics         *metrics.Metrics // optional
	DefaultAttempts int              // used when NewGame gets 0; game.DefaultAttempts when unset

	// OnGameCreated, when set, is called after a new game has been saved.
	OnGameCreated func()
}

// Service exposes the game operations.
type Service struct {
	store           store.Store
	words           words.Source
	recorder        *stats.Recorder
	metrics         *metrics.Metrics
	locks           *keyedMutex
	defaultAttempts int
	onGameCreated   func()
}

// New constructs a Service.
func New(cfg Config) *Service {
	attempts := cfg.DefaultAttempts
	if attempts <= 0 {
		attempts = game.DefaultAttempts
	}
	return &Service{
		store:           cfg.Store,
		words:           cfg.Words,
		recorder:        stats.NewRecorder(cfg.Store, stats.NewAggregator(cfg.Store)),
		metrics:         cfg.Metrics,
		locks:           newKeyedMutex(),
		defaultAttempts: attempts,
		onGameCreated:   cfg.OnGameCreated,
	}
}

// ------------------------------- users -------------------------------------

// CreateUser registers a user. Names are unique, compared case-insensitively.
func (s *Service) CreateUser(ctx context.Context, name, email string) (stats.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return stats.User{}, ErrInvalidUserName
	}
	u := stats.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.TrimSpace(email),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return stats.User{}, err
	}
	log.Info().Str("user", u.ID).Str("name", u.Name).Msg("user created")
	return u, nil
}

// User looks a user up by name.
func (s *Service) User(ctx context.Context, name string) (stats.User, error) {
	return s.store.GetUserByName(ctx, name)
}

// ------------------------------- games -------------------------------------

// NewGame starts a game for the named user. attempts == 0 selects the default.
func (s *Service) NewGame(ctx context.Context, userName string, attempts int) (*game.Game, error) {
	u, err := s.store.GetUserByName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if attempts == 0 {
		attempts = s.defaultAttempts
	}
	word, err := s.words.Next()
	if err != nil {
		return nil, fmt.Errorf("next word: %w", err)
	}
	g, err := game.New(u.ID, word, attempts)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	s.metrics.GameStarted()
	log.Info().Str("game", g.ID).Str("user", u.ID).Int("attempts", attempts).Msg("game started")

	if s.onGameCreated != nil {
		s.onGameCreated()
	}
	return g, nil
}

// GetGame returns the current state of a game.
func (s *Service) GetGame(ctx context.Context, id string) (*game.Game, error) {
	return s.store.GetGame(ctx, id)
}

// SubmitGuess applies a guess to a game. Guesses on the same game are
// processed one at a time; the game is saved before any score or aggregate
// is recorded.
func (s *Service) SubmitGuess(ctx context.Context, id, guess string) (game.Outcome, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	g, err := s.store.GetGame(ctx, id)
	if err != nil {
		return game.Outcome{}, err
	}
	out, err := g.Guess(guess)
	if err != nil {
		return game.Outcome{}, err
	}
	if err := s.store.SaveGame(ctx, g); err != nil {
		return game.Outcome{}, fmt.Errorf("save game: %w", err)
	}
	s.metrics.ObserveGuess(out.Miss)

	if out.Status.Terminal() {
		s.finish(ctx, g)
	}
	return out, nil
}

// CancelGame abandons an active game.
func (s *Service) CancelGame(ctx context.Context, id string) (*game.Game, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	g, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.Cancel(); err != nil {
		return nil, err
	}
	if err := s.store.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	s.finish(ctx, g)
	return g, nil
}

// finish records a terminal game: a score plus aggregates for wins,
// aggregates only for losses and cancellations. The game is already saved in
// its terminal state and cannot be replayed, so a recording failure is logged
// and does not fail the guess or cancel that caused it.
func (s *Service) finish(ctx context.Context, g *game.Game) {
	s.metrics.GameFinished(string(g.Status()))
	logger := log.With().Str("game", g.ID).Str("user", g.UserID).
		Str("status", string(g.Status())).Int("misses", g.Misses()).Logger()

	if g.Status() == game.StatusWon {
		u, err := s.store.GetUser(ctx, g.UserID)
		if err != nil {
			logger.Error().Err(err).Msg("load owner for score")
			return
		}
		if _, err := s.recorder.RecordWin(ctx, stats.WinInput{
			UserID:   u.ID,
			UserName: u.Name,
			GameID:   g.ID,
			Misses:   g.Misses(),
		}); err != nil {
			logger.Error().Err(err).Msg("record win")
			return
		}
		logger.Info().Msg("game won")
		return
	}

	if err := s.recorder.RecordLoss(ctx, g.UserID, g.Misses()); err != nil {
		logger.Error().Err(err).Msg("record outcome")
		return
	}
	logger.Info().Msg("game finished")
}

// History returns a game's guesses in the order they were made.
func (s *Service) History(ctx context.Context, id string) ([]game.Guess, error) {
	g, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.Guesses(), nil
}

// UserGames returns the named user's active games.
func (s *Service) UserGames(ctx context.Context, userName string) ([]*game.Game, error) {
	u, err := s.store.GetUserByName(ctx, userName)
	if err != nil {
		return nil, err
	}
	return s.store.ListGames(ctx, store.GameFilter{UserID: u.ID, Status: game.StatusActive})
}

// ------------------------------ scores -------------------------------------

// Scores lists every recorded score.
func (s *Service) Scores(ctx context.Context, order stats.ScoreOrder, limit int) ([]stats.Score, error) {
	return s.store.ListScores(ctx, store.ScoreQuery{Order: order, Limit: limit})
}

// UserScores lists the named user's scores.
func (s *Service) UserScores(ctx context.Context, userName string, order stats.ScoreOrder, limit int) ([]stats.Score, error) {
	u, err := s.store.GetUserByName(ctx, userName)
	if err != nil {
		return nil, err
	}
	return s.store.ListScores(ctx, store.ScoreQuery{UserID: u.ID, Order: order, Limit: limit})
}

// Rankings returns the leaderboard over all users.
func (s *Service) Rankings(ctx context.Context) ([]stats.Ranking, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Leaderboard(users), nil
}
