package game

import (
	"fmt"
	"time"
)

// Cancel abandons an active game. Cancelling is not idempotent: any game that
// is already terminal, cancelled ones included, is rejected with ErrGameOver.
func (g *Game) Cancel() error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	g.status = StatusCancelled
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// Snapshot is the storable form of a Game. It carries the private word, so
// it must never be handed to players.
type Snapshot struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	PrivateWord       string    `json:"privateWord"`
	PublicWord        string    `json:"publicWord"`
	AttemptsAllowed   int       `json:"attemptsAllowed"`
	AttemptsRemaining int       `json:"attemptsRemaining"`
	Guesses           []Guess   `json:"guesses"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Snapshot copies the full game state, private word included.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:                g.ID,
		UserID:            g.UserID,
		PrivateWord:       g.privateWord,
		PublicWord:        g.publicWord,
		AttemptsAllowed:   g.attemptsAllowed,
		AttemptsRemaining: g.attemptsRemaining,
		Guesses:           g.Guesses(),
		Status:            g.status,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
}

// Restore rebuilds a Game from a snapshot. The guessed set and the public
// word are derived from the history rather than trusted, and a snapshot whose
// attempt count disagrees with its misses is rejected.
func Restore(s Snapshot) (*Game, error) {
	switch s.Status {
	case StatusActive, StatusWon, StatusLost, StatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidSnapshot, s.Status)
	}
	if s.PrivateWord == "" || s.AttemptsAllowed < 1 {
		return nil, fmt.Errorf("%w: game %s", ErrInvalidSnapshot, s.ID)
	}

	g := &Game{
		ID:                s.ID,
		UserID:            s.UserID,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		privateWord:       s.PrivateWord,
		attemptsAllowed:   s.AttemptsAllowed,
		attemptsRemaining: s.AttemptsAllowed,
		guesses:           make([]Guess, 0, len(s.Guesses)),
		seen:              make(map[string]struct{}, len(s.Guesses)),
		status:            s.Status,
	}
	for _, gs := range s.Guesses {
		if gs.Miss {
			g.attemptsRemaining--
		}
		g.record(gs.Value, gs.Miss, gs.Message)
	}
	if g.attemptsRemaining != s.AttemptsRemaining {
		return nil, fmt.Errorf("%w: game %s has %d attempts remaining, history implies %d",
			ErrInvalidSnapshot, s.ID, s.AttemptsRemaining, g.attemptsRemaining)
	}
	g.publicWord = Mask(g.privateWord, g.revealed())
	return g, nil
}
