/* service.go
 * Contains the Prometheus backed Metrics implementation and the handler that exposes it
 */

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service holds all the Prometheus metrics for the tracker
type Service struct {
	Picks             *prometheus.CounterVec
	MatchesAdded      prometheus.Counter
	MatchesEnded      prometheus.Counter
	Recomputations    prometheus.Counter
	RecomputeDuration prometheus.Histogram
	LookupFailures    prometheus.Counter
	Commands          *prometheus.CounterVec
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
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
		Picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pickems_picks_total",
			Help: "Pick submissions by outcome.",
		}, []string{"outcome"}),
		MatchesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickems_matches_added_total",
			Help: "The total number of matches created.",
		}),
		MatchesEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickems_matches_ended_total",
			Help: "The total number of results recorded, including overwrites.",
		}),
		Recomputations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickems_score_recomputations_total",
			Help: "The total number of full score recomputations.",
		}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pickems_score_recompute_duration_seconds",
			Help:    "The duration of a full score recomputation, including storage.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		LookupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickems_multiplier_lookup_failures_total",
			Help: "Recomputations aborted because a finished match's stage had no multiplier.",
		}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pickems_commands_total",
			Help: "Chat commands handled, by command name.",
		}, []string{"command"}),
	}

	reg.MustRegister(
		s.Picks,
		s.MatchesAdded,
		s.MatchesEnded,
		s.Recomputations,
		s.RecomputeDuration,
		s.LookupFailures,
		s.Commands,
	)

	return s
}

func (s *Service) IncPicks(outcome string) {
	s.Picks.WithLabelValues(outcome).Inc()
}

func (s *Service) IncMatchesAdded() {
	s.MatchesAdded.Inc()
}

func (s *Service) IncMatchesEnded() {
	s.MatchesEnded.Inc()
}

func (s *Service) ObserveRecompute(duration float64) {
	s.Recomputations.Inc()
	s.RecomputeDuration.Observe(duration)
}

func (s *Service) IncLookupFailures() {
	s.LookupFailures.Inc()
}

func (s *Service) IncCommands(command string) {
	s.Commands.WithLabelValues(command).Inc()
}
