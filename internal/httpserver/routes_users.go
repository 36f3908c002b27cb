// internal/httpserver/routes_users.go
//
// HTTP routes for players and their results:
//   - POST /users              → register a user
//   - GET  /users/{name}/games → the user's active games
//   - GET  /rankings           → leaderboard
//   - GET  /scores             → all scores (?order=date|misses&limit=N)
//   - GET  /scores/user/{name} → one user's scores

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/hangman/internal/stats"
)

func (s *Server) mountUsers(r chi.Router) {
	r.Post("/users", s.handleCreateUser)
	r.Get("/users/{name}/games", s.handleUserGames)
	r.Get("/rankings", s.handleRankings)
}

func (s *Server) mountScores(r chi.Router) {
	r.Route("/scores", func(r chi.Router) {
		r.Get("/", s.handleScores)
		r.Get("/user/{name}", s.handleUserScores)
	})
}

type createUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if !decode(w, r, &req) {
		return
	}
	u, err := s.svc.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleUserGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.svc.UserGames(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]gameView, 0, len(games))
	for _, g := range games {
		out = append(out, viewGame(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	ranks, err := s.svc.Rankings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ranks == nil {
		ranks = []stats.Ranking{}
	}
	writeJSON(w, http.StatusOK, ranks)
}

// scoreParams reads ?order= and ?limit=; limit must be a non-negative integer.
func scoreParams(w http.ResponseWriter, r *http.Request) (stats.ScoreOrder, int, bool) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return "", 0, false
		}
		limit = n
	}
	return stats.ParseScoreOrder(q.Get("order")), limit, true
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	order, limit, ok := scoreParams(w, r)
	if !ok {
		return
	}
	scores, err := s.svc.Scores(r.Context(), order, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeScores(w, scores)
}

func (s *Server) handleUserScores(w http.ResponseWriter, r *http.Request) {
	order, limit, ok := scoreParams(w, r)
	if !ok {
		return
	}
	scores, err := s.svc.UserScores(r.Context(), chi.URLParam(r, "name"), order, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeScores(w, scores)
}

func writeScores(w http.ResponseWriter, scores []stats.Score) {
	if scores == nil {
		scores = []stats.Score{}
	}
	writeJSON(w, http.StatusOK, scores)
}
