// internal/httpserver/routes_games.go
//
// HTTP routes for games, mounted under /games:
//   - POST   /games                  → start a game for a user
//   - GET    /games/average_attempts → last published average attempts message
//   - GET    /games/{id}             → current game state
//   - PUT    /games/{id}             → submit a guess
//   - DELETE /games/{id}             → cancel an active game
//   - GET    /games/{id}/history     → guesses in the order they were made
//
// The private word is never part of a response.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/hangman/internal/game"
)

func (s *Server) mountGames(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleNewGame)
		r.Get("/average_attempts", s.handleAverageAttempts)
		r.Get("/{id}", s.handleGetGame)
		r.Put("/{id}", s.handleGuess)
		r.Delete("/{id}", s.handleCancel)
		r.Get("/{id}/history", s.handleHistory)
	})
}

// gameView is the public rendering of a game.
type gameView struct {
	ID                string      `json:"id"`
	UserID            string      `json:"userId"`
	PublicWord        string      `json:"publicWord"`
	Status            game.Status `json:"status"`
	AttemptsAllowed   int         `json:"attemptsAllowed"`
	AttemptsRemaining int         `json:"attemptsRemaining"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

func viewGame(g *game.Game) gameView {
	return gameView{
		ID:                g.ID,
		UserID:            g.UserID,
		PublicWord:        g.PublicWord(),
		Status:            g.Status(),
		AttemptsAllowed:   g.AttemptsAllowed(),
		AttemptsRemaining: g.AttemptsRemaining(),
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
}

type newGameReq struct {
	UserName string `json:"userName"`
	Attempts int    `json:"attempts"` // 0 → server default
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !decode(w, r, &req) {
		return
	}
	g, err := s.svc.NewGame(r.Context(), req.UserName, req.Attempts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewGame(g))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewGame(g))
}

type guessReq struct {
	Guess string `json:"guess"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	out, err := s.svc.SubmitGuess(r.Context(), chi.URLParam(r, "id"), req.Guess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.CancelGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewGame(g))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.svc.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if history == nil {
		history = []game.Guess{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleAverageAttempts(w http.ResponseWriter, r *http.Request) {
	msg, err := s.avg.Current(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}
