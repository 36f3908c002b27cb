package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/robalobadob/hangman/internal/cache"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/service"
	"github.com/robalobadob/hangman/internal/stats"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

type testEnv struct {
	h   http.Handler
	avg *service.AverageAttempts
}

func newEnv(t *testing.T, word string) testEnv {
	t.Helper()
	st := store.NewMemoryStore()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		t.Fatal(err)
	}
	svc := service.New(service.Config{Store: st, Words: words.Fixed(word), Metrics: m})
	avg := service.NewAverageAttempts(st, cache.NewMemory(), m)
	srv := New(Deps{Service: svc, Average: avg, Gatherer: reg})
	return testEnv{h: srv.Router(), avg: avg}
}

func (e testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	e := newEnv(t, "boat")
	rec := e.do(t, http.MethodGet, "/health", "")
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}
}

func TestPlayFullGame(t *testing.T) {
	e := newEnv(t, "boat")

	rec := e.do(t, http.MethodPost, "/users", `{"name":"ann","email":"ann@example.com"}`)
	expectStatus(t, rec, http.StatusCreated)
	rec = e.do(t, http.MethodPost, "/users", `{"name":"ANN"}`)
	expectStatus(t, rec, http.StatusConflict)

	rec = e.do(t, http.MethodPost, "/games", `{"userName":"ann","attempts":5}`)
	expectStatus(t, rec, http.StatusCreated)
	g := decodeBody[gameView](t, rec)
	if g.PublicWord != "____" || g.AttemptsRemaining != 5 || g.Status != game.StatusActive {
		t.Fatalf("new game = %+v", g)
	}
	if strings.Contains(rec.Body.String(), "boat") {
		t.Fatalf("private word leaked: %s", rec.Body.String())
	}

	rec = e.do(t, http.MethodPut, "/games/"+g.ID, `{"guess":"o"}`)
	expectStatus(t, rec, http.StatusOK)
	out := decodeBody[game.Outcome](t, rec)
	if out.PublicWord != "_o__" || out.Miss || out.Message != "That letter is in the word once!" {
		t.Errorf("outcome = %+v", out)
	}

	rec = e.do(t, http.MethodGet, "/users/ann/games", "")
	expectStatus(t, rec, http.StatusOK)
	if active := decodeBody[[]gameView](t, rec); len(active) != 1 {
		t.Errorf("active games = %d", len(active))
	}

	rec = e.do(t, http.MethodPut, "/games/"+g.ID, `{"guess":"BOAT"}`)
	expectStatus(t, rec, http.StatusOK)
	out = decodeBody[game.Outcome](t, rec)
	if out.Status != game.StatusWon || out.PublicWord != "boat" {
		t.Errorf("outcome = %+v", out)
	}

	rec = e.do(t, http.MethodPut, "/games/"+g.ID, `{"guess":"x"}`)
	expectStatus(t, rec, http.StatusConflict)
	rec = e.do(t, http.MethodDelete, "/games/"+g.ID, "")
	expectStatus(t, rec, http.StatusConflict)

	rec = e.do(t, http.MethodGet, "/games/"+g.ID+"/history", "")
	expectStatus(t, rec, http.StatusOK)
	history := decodeBody[[]game.Guess](t, rec)
	if len(history) != 2 || history[0].Value != "o" || history[1].Value != "boat" {
		t.Errorf("history = %+v", history)
	}

	rec = e.do(t, http.MethodGet, "/scores/user/ann", "")
	expectStatus(t, rec, http.StatusOK)
	scores := decodeBody[[]stats.Score](t, rec)
	if len(scores) != 1 || scores[0].Misses != 0 || scores[0].GameID != g.ID {
		t.Errorf("scores = %+v", scores)
	}

	rec = e.do(t, http.MethodGet, "/rankings", "")
	expectStatus(t, rec, http.StatusOK)
	ranks := decodeBody[[]stats.Ranking](t, rec)
	if len(ranks) != 1 || ranks[0].Name != "ann" || ranks[0].WinPercentage != 1 {
		t.Errorf("rankings = %+v", ranks)
	}
}

func TestCancelGame(t *testing.T) {
	e := newEnv(t, "cat")
	expectStatus(t, e.do(t, http.MethodPost, "/users", `{"name":"bob"}`), http.StatusCreated)
	g := decodeBody[gameView](t, e.do(t, http.MethodPost, "/games", `{"userName":"bob"}`))
	if g.AttemptsAllowed != game.DefaultAttempts {
		t.Errorf("attempts = %d, want default", g.AttemptsAllowed)
	}

	rec := e.do(t, http.MethodDelete, "/games/"+g.ID, "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[gameView](t, rec); got.Status != game.StatusCancelled {
		t.Errorf("status = %q", got.Status)
	}
	expectStatus(t, e.do(t, http.MethodDelete, "/games/"+g.ID, ""), http.StatusConflict)
}

func TestErrorMapping(t *testing.T) {
	e := newEnv(t, "boat")
	expectStatus(t, e.do(t, http.MethodPost, "/users", `{"name":"ann"}`), http.StatusCreated)
	g := decodeBody[gameView](t, e.do(t, http.MethodPost, "/games", `{"userName":"ann","attempts":3}`))

	tests := []struct {
		name, method, path, body string
		want                     int
	}{
		{"unknown game", http.MethodGet, "/games/nope", "", http.StatusNotFound},
		{"guess unknown game", http.MethodPut, "/games/nope", `{"guess":"a"}`, http.StatusNotFound},
		{"blank guess", http.MethodPut, "/games/" + g.ID, `{"guess":" "}`, http.StatusBadRequest},
		{"bad json", http.MethodPut, "/games/" + g.ID, `{`, http.StatusBadRequest},
		{"negative attempts", http.MethodPost, "/games", `{"userName":"ann","attempts":-2}`, http.StatusBadRequest},
		{"unknown user", http.MethodPost, "/games", `{"userName":"zed"}`, http.StatusNotFound},
		{"blank user name", http.MethodPost, "/users", `{"name":""}`, http.StatusBadRequest},
		{"unknown user scores", http.MethodGet, "/scores/user/zed", "", http.StatusNotFound},
		{"bad limit", http.MethodGet, "/scores?limit=x", "", http.StatusBadRequest},
		{"no route", http.MethodGet, "/nowhere", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, tt.method, tt.path, tt.body)
			expectStatus(t, rec, tt.want)
			if body := decodeBody[map[string]any](t, rec); body["error"] == nil {
				t.Errorf("missing error field: %s", rec.Body.String())
			}
		})
	}
}

func TestAverageAttemptsAndMetrics(t *testing.T) {
	e := newEnv(t, "boat")
	expectStatus(t, e.do(t, http.MethodPost, "/users", `{"name":"ann"}`), http.StatusCreated)
	expectStatus(t, e.do(t, http.MethodPost, "/games", `{"userName":"ann","attempts":4}`), http.StatusCreated)

	if _, _, err := e.avg.Recompute(context.Background()); err != nil {
		t.Fatal(err)
	}
	rec := e.do(t, http.MethodGet, "/games/average_attempts", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[map[string]string](t, rec)["message"]; got != "The average moves remaining is 4.00" {
		t.Errorf("message = %q", got)
	}

	rec = e.do(t, http.MethodGet, "/metrics", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "hangman_games_started_total 1") {
		t.Errorf("metrics missing games started:\n%s", rec.Body.String())
	}
}
