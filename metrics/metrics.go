package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/vi-snake/game"
)

// Metrics counts gameplay signals across all sessions of a process
type Metrics struct {
	GamesStarted   *prometheus.CounterVec
	FoodEaten      *prometheus.CounterVec
	GamesOver      *prometheus.CounterVec
	FinalScore     prometheus.Histogram
	HighScore      prometheus.Gauge
	ActiveSessions prometheus.Gauge

	mu   sync.Mutex
	best int
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GamesStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snake_games_started_total",
				Help: "Games started or resumed",
			},
			[]string{"difficulty"},
		),
		FoodEaten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snake_food_eaten_total",
				Help: "Food items eaten",
			},
			[]string{"difficulty"},
		),
		GamesOver: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snake_games_over_total",
				Help: "Games ended by collision or a full board",
			},
			[]string{"difficulty"},
		),
		FinalScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "snake_final_score",
				Help:    "Score at game over",
				Buckets: prometheus.LinearBuckets(0, 50, 10),
			},
		),
		HighScore: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "snake_high_score",
				Help: "Best score seen by this process",
			},
		),
		ActiveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "snake_active_sessions",
				Help: "Connected game sessions",
			},
		),
	}

	reg.MustRegister(m.GamesStarted, m.FoodEaten, m.GamesOver, m.FinalScore, m.HighScore, m.ActiveSessions)
	return m
}

// OnSignal records one session signal
func (m *Metrics) OnSignal(sig game.Signal, snap game.Snapshot) {
	label := snap.Difficulty.String()

	switch sig {
	case game.SignalStart:
		m.GamesStarted.WithLabelValues(label).Inc()
	case game.SignalEat:
		m.FoodEaten.WithLabelValues(label).Inc()
	case game.SignalGameOver:
		m.GamesOver.WithLabelValues(label).Inc()
		m.FinalScore.Observe(float64(snap.Score))
	}

	m.observeHighScore(snap.HighScore)
}

// observeHighScore raises the gauge, never lowers it
// Sessions report concurrently
func (m *Metrics) observeHighScore(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.best {
		m.best = score
		m.HighScore.Set(float64(score))
	}
}

// SessionOpened and SessionClosed track live sessions
func (m *Metrics) SessionOpened() { m.ActiveSessions.Inc() }
func (m *Metrics) SessionClosed() { m.ActiveSessions.Dec() }
