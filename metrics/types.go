package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus collectors of the application.
type Service struct {
	TournamentsCreated prometheus.Counter
	TournamentsDeleted prometheus.Counter
	MatchTransitions   *prometheus.CounterVec
	GoalsRecorded      prometheus.Counter
	AuthFailures       prometheus.Counter
	PersistDuration    prometheus.Histogram
	WebsocketClients   prometheus.Gauge
	ClockTicks         prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
