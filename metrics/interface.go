package metrics

// Metrics is what the services and handlers report to. The Prometheus Service implements it
// in production and Mock in tests.
type Metrics interface {
	IncTournamentsCreated()
	IncTournamentsDeleted()
	IncMatchTransition(action string)
	IncGoalsRecorded()
	IncAuthFailures()
	ObservePersistDuration(seconds float64)
	SetWebsocketClients(n int)
	IncClockTicks()
	SetStartupTime(seconds float64)
}
