// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Status: lifecycle state of a game (active/won/lost/cancelled).
//   - Guess: one entry in a game's ordered guess history.
//   - Outcome: the result handed back for a single guess.
//   - Game: state for a single in-progress or finished game.

package game

import (
	"errors"
	"time"
)

// Status represents where a game is in its lifecycle.
// Possible values:
//   - "active":    guesses are accepted.
//   - "won":       every letter of the word was revealed.
//   - "lost":      attempts ran out before the word was revealed.
//   - "cancelled": the player abandoned the game.
//
// Every status except active is terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transitions are permitted from s.
func (s Status) Terminal() bool { return s != StatusActive }

// Blank is the marker rendered in place of an unrevealed letter.
const Blank = '_'

// DefaultAttempts is the attempt budget used when none is requested.
const DefaultAttempts = 6

var (
	ErrGameOver        = errors.New("game already over")
	ErrInvalidGuess    = errors.New("invalid guess")
	ErrInvalidAttempts = errors.New("attempts must be at least 1")
	ErrInvalidWord     = errors.New("invalid word")
	ErrInvalidSnapshot = errors.New("invalid game snapshot")
)

// Guess is a single recorded guess.
type Guess struct {
	Value    string `json:"guess"`    // normalized (case-folded) value
	Miss     bool   `json:"miss"`     // true for wrong and repeated guesses
	Position int    `json:"position"` // 1-based order in the history
	Message  string `json:"message"`
}

// Outcome is returned by Game.Guess.
type Outcome struct {
	PublicWord        string `json:"publicWord"`
	Miss              bool   `json:"miss"`
	Message           string `json:"message"`
	Status            Status `json:"status"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
}

// Game holds the state of a single Hangman game.
//
// The private word, the guess history and the set of guessed values are
// unexported: history and set only change together through record.
type Game struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time

	privateWord       string
	publicWord        string
	attemptsAllowed   int
	attemptsRemaining int
	guesses           []Guess
	seen              map[string]struct{}
	status            Status
}

// PublicWord returns the player-visible rendering of the word.
func (g *Game) PublicWord() string { return g.publicWord }

// AttemptsAllowed returns the attempt budget the game started with.
func (g *Game) AttemptsAllowed() int { return g.attemptsAllowed }

// AttemptsRemaining returns how many misses the player can still afford.
func (g *Game) AttemptsRemaining() int { return g.attemptsRemaining }

// Status returns the current lifecycle state.
func (g *Game) Status() Status { return g.status }

// Misses returns the number of guesses counted as misses so far.
func (g *Game) Misses() int { return g.attemptsAllowed - g.attemptsRemaining }

// Guesses returns a copy of the guess history in insertion order.
func (g *Game) Guesses() []Guess {
	out := make([]Guess, len(g.guesses))
	copy(out, g.guesses)
	return out
}

// Guessed reports whether the normalized value was already guessed.
func (g *Game) Guessed(value string) bool {
	_, ok := g.seen[value]
	return ok
}

// GuessedCount returns the number of distinct values guessed.
func (g *Game) GuessedCount() int { return len(g.seen) }

// record appends a guess to the history and the guessed set in one step.
func (g *Game) record(value string, miss bool, msg string) Guess {
	gs := Guess{
		Value:    value,
		Miss:     miss,
		Position: len(g.guesses) + 1,
		Message:  msg,
	}
	g.guesses = append(g.guesses, gs)
	g.seen[value] = struct{}{}
	return gs
}
