// Package metrics exposes tournament activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hattournament/src/core/ports"
)

var _ ports.Metrics = (*Service)(nil)

// Service holds the registered collectors.
type Service struct {
	ResultsSubmitted prometheus.Counter
	ResultsCleared   prometheus.Counter
	Splits           prometheus.Counter
	SplitUndos       prometheus.Counter
	WordsTaken       prometheus.Counter
	GamesPerSplit    prometheus.Histogram
}

// NewHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ResultsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hat_game_results_submitted_total",
			Help: "The total number of game results submitted.",
		}),
		ResultsCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hat_game_results_cleared_total",
			Help: "The total number of game results cleared.",
		}),
		Splits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hat_subround_splits_total",
			Help: "The total number of subrounds split into games.",
		}),
		SplitUndos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hat_subround_split_undos_total",
			Help: "The total number of undone subround splits.",
		}),
		WordsTaken: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hat_words_taken_total",
			Help: "The total number of words taken from word banks.",
		}),
		GamesPerSplit: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hat_games_per_split",
			Help:    "The number of games created by a split.",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16},
		}),
	}

	reg.MustRegister(
		s.ResultsSubmitted,
		s.ResultsCleared,
		s.Splits,
		s.SplitUndos,
		s.WordsTaken,
		s.GamesPerSplit,
	)

	return s
}

func (s *Service) IncResultsSubmitted() {
	s.ResultsSubmitted.Inc()
}

func (s *Service) IncResultsCleared() {
	s.ResultsCleared.Inc()
}

func (s *Service) IncSplits() {
	s.Splits.Inc()
}

func (s *Service) IncSplitUndos() {
	s.SplitUndos.Inc()
}

func (s *Service) AddWordsTaken(n int) {
	s.WordsTaken.Add(float64(n))
}

func (s *Service) ObserveGamesPerSplit(n int) {
	s.GamesPerSplit.Observe(float64(n))
}
