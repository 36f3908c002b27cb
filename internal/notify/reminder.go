package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
)

// Reminder emails every user who has an address and at least one active game.
type Reminder struct {
	users  store.UserStore
	games  store.GameStore
	mailer Mailer
}

// NewReminder wires a Reminder.
func NewReminder(users store.UserStore, games store.GameStore, mailer Mailer) *Reminder {
	return &Reminder{users: users, games: games, mailer: mailer}
}

// Run sends one round of reminders and returns how many were sent. A failed
// send is logged and does not stop the round.
func (r *Reminder) Run(ctx context.Context) (int, error) {
	users, err := r.users.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	sent := 0
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		active, err := r.games.ListGames(ctx, store.GameFilter{UserID: u.ID, Status: game.StatusActive})
		if err != nil {
			return sent, fmt.Errorf("list games of %s: %w", u.ID, err)
		}
		if len(active) == 0 {
			continue
		}

		msg := Message{
			To:      u.Email,
			Subject: "Your Hangman game is waiting!",
			Body: fmt.Sprintf("Hello %s, you have %d unfinished Hangman %s. Come back and finish!",
				u.Name, len(active), plural(len(active), "game", "games")),
		}
		if err := r.mailer.Send(ctx, msg); err != nil {
			log.Warn().Err(err).Str("user", u.ID).Msg("send reminder")
			continue
		}
		sent++
	}
	return sent, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
