package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the game collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Guesses         *prometheus.CounterVec
	GamesStarted    prometheus.Counter
	GamesFinished   *prometheus.CounterVec
	AverageAttempts prometheus.Gauge
}

// New constructs the collectors and registers them with reg
// (prometheus.DefaultRegisterer when nil). Collectors that are already
// registered are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	guesses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hangman",
		Name:      "guesses_total",
		Help:      "Guesses processed, partitioned by result (hit or miss).",
	}, []string{"result"})
	started := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hangman",
		Name:      "games_started_total",
		Help:      "Games created.",
	})
	finished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hangman",
		Name:      "games_finished_total",
		Help:      "Games that reached a terminal status, partitioned by status.",
	}, []string{"status"})
	average := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hangman",
		Name:      "average_attempts_remaining",
		Help:      "Average attempts remaining across active games at the last recompute.",
	})

	m := &Metrics{}
	var err error
	if m.Guesses, err = register(reg, guesses); err != nil {
		return nil, err
	}
	if m.GamesStarted, err = register(reg, started); err != nil {
		return nil, err
	}
	if m.GamesFinished, err = register(reg, finished); err != nil {
		return nil, err
	}
	if m.AverageAttempts, err = register(reg, average); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, returning the existing collector of the same type
// when one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
			return c, fmt.Errorf("existing collector has unexpected type %T", already.ExistingCollector)
		}
		return c, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}

// ObserveGuess counts one processed guess.
func (m *Metrics) ObserveGuess(miss bool) {
	if m == nil {
		return
	}
	result := "hit"
	if miss {
		result = "miss"
	}
	m.Guesses.WithLabelValues(result).Inc()
}

// GameStarted counts one new game.
func (m *Metrics) GameStarted() {
	if m == nil {
		return
	}
	m.GamesStarted.Inc()
}

// GameFinished counts one terminal transition.
func (m *Metrics) GameFinished(status string) {
	if m == nil {
		return
	}
	m.GamesFinished.WithLabelValues(status).Inc()
}

// SetAverageAttempts publishes the latest recomputed average.
func (m *Metrics) SetAverageAttempts(v float64) {
	if m == nil {
		return
	}
	m.AverageAttempts.Set(v)
}
