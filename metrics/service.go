package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the collectors.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TournamentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cup_tournaments_created_total",
			Help: "The total number of tournaments created.",
		}),
		TournamentsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cup_tournaments_deleted_total",
			Help: "The total number of tournaments deleted.",
		}),
		MatchTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cup_match_transitions_total",
			Help: "Applied match lifecycle transitions by action.",
		}, []string{"action"}),
		GoalsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cup_goals_recorded_total",
			Help: "The total number of goals recorded.",
		}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cup_auth_failures_total",
			Help: "PIN checks that failed.",
		}),
		PersistDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cup_persist_duration_seconds",
			Help:    "Time spent saving a tournament record and its public mirror.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		WebsocketClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cup_websocket_clients",
			Help: "Connected public viewers.",
		}),
		ClockTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cup_clock_ticks_total",
			Help: "Clock snapshots broadcast to tournament rooms.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cup_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TournamentsCreated,
		s.TournamentsDeleted,
		s.MatchTransitions,
		s.GoalsRecorded,
		s.AuthFailures,
		s.PersistDuration,
		s.WebsocketClients,
		s.ClockTicks,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTournamentsCreated() {
	s.TournamentsCreated.Inc()
}

func (s *Service) IncTournamentsDeleted() {
	s.TournamentsDeleted.Inc()
}

func (s *Service) IncMatchTransition(action string) {
	s.MatchTransitions.WithLabelValues(action).Inc()
}

func (s *Service) IncGoalsRecorded() {
	s.GoalsRecorded.Inc()
}

func (s *Service) IncAuthFailures() {
	s.AuthFailures.Inc()
}

func (s *Service) ObservePersistDuration(seconds float64) {
	s.PersistDuration.Observe(seconds)
}

func (s *Service) SetWebsocketClients(n int) {
	s.WebsocketClients.Set(float64(n))
}

func (s *Service) IncClockTicks() {
	s.ClockTicks.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
