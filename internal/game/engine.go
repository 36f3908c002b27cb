// internal/game/engine.go
//
// Core game engine for a single Hangman game.
// Responsibilities:
//   - Create new games from a word and an attempt budget.
//   - Validate and apply guesses (single letters or whole words).
//   - Penalize repeated guesses as misses.
//   - Track state transitions: active → won/lost.
//
// Notes:
//   - Word selection lives in the words package; the engine only receives a word.
//   - Persistence, locking and score recording are the caller's concern.
package game

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// New constructs a game for userID around word with the given attempt budget.
func New(userID, word string, attempts int) (*Game, error) {
	if attempts < 1 {
		return nil, ErrInvalidAttempts
	}
	w, ok := normalize(word)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	now := time.Now().UTC()
	g := &Game{
		ID:                uuid.NewString(),
		UserID:            userID,
		CreatedAt:         now,
		UpdatedAt:         now,
		privateWord:       w,
		attemptsAllowed:   attempts,
		attemptsRemaining: attempts,
		guesses:           []Guess{},
		seen:              make(map[string]struct{}),
		status:            StatusActive,
	}
	g.publicWord = Mask(g.privateWord, nil)
	return g, nil
}

// Guess validates and applies a guess, mutating the game state.
//
// Validation rules:
//   - Game must be active.
//   - Guess must be non-empty after trimming, with no inner whitespace,
//     control characters or blank markers.
//
// Evaluation:
//   - A value guessed before is recorded again and always counts as a miss.
//   - A single letter hits when it occurs anywhere in the word.
//   - A longer guess hits only when it equals the word, revealing it fully.
//
// State transitions, checked after every guess:
//   - No blanks left → won (checked first, so a final reveal never loses).
//   - Else attempts exhausted → lost.
//
// A rejected guess leaves the game untouched.
func (g *Game) Guess(raw string) (Outcome, error) {
	if g.status.Terminal() {
		return Outcome{}, ErrGameOver
	}
	value, ok := normalize(raw)
	if !ok {
		return Outcome{}, ErrInvalidGuess
	}

	miss, msg := g.evaluate(value)
	if miss {
		g.attemptsRemaining--
	}
	g.record(value, miss, msg)
	g.publicWord = Mask(g.privateWord, g.revealed())

	switch {
	case !hasBlank(g.publicWord):
		g.status = StatusWon
		msg += " You win!"
	case g.attemptsRemaining <= 0:
		g.status = StatusLost
		msg += " Game over!"
	}
	g.guesses[len(g.guesses)-1].Message = msg
	g.UpdatedAt = time.Now().UTC()

	return Outcome{
		PublicWord:        g.publicWord,
		Miss:              miss,
		Message:           msg,
		Status:            g.status,
		AttemptsRemaining: g.attemptsRemaining,
	}, nil
}

// evaluate classifies a normalized guess without mutating the game.
func (g *Game) evaluate(value string) (miss bool, msg string) {
	if g.Guessed(value) {
		return true, "You already guessed that!"
	}
	if utf8.RuneCountInString(value) > 1 {
		if value == g.privateWord {
			return false, "You correctly guessed the whole word!"
		}
		return true, "That is not the word!"
	}
	n := strings.Count(g.privateWord, value)
	switch n {
	case 0:
		return true, "That letter is not in the word!"
	case 1:
		return false, "That letter is in the word once!"
	default:
		return false, fmt.Sprintf("That letter is in the word %d times!", n)
	}
}

// revealed derives the set of uncovered runes from the guessed values.
func (g *Game) revealed() map[rune]struct{} {
	out := make(map[rune]struct{}, len(g.seen))
	for v := range g.seen {
		if v == g.privateWord {
			for _, r := range v {
				out[foldRune(r)] = struct{}{}
			}
			continue
		}
		if r, size := utf8.DecodeRuneInString(v); size == len(v) {
			out[foldRune(r)] = struct{}{}
		}
	}
	return out
}

// normalize trims and case-folds s. It reports false for empty values and
// values carrying whitespace, control characters or the blank marker.
func normalize(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r == Blank || r == utf8.RuneError || unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", false
		}
	}
	return cases.Fold().String(s), true
}
