package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRecordsToRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncTournamentsCreated()
	s.IncMatchTransition("start")
	s.IncMatchTransition("start")
	s.IncMatchTransition("finish")
	s.SetWebsocketClients(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.TournamentsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.MatchTransitions.WithLabelValues("start")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.MatchTransitions.WithLabelValues("finish")))
	assert.Equal(t, 3.0, testutil.ToFloat64(s.WebsocketClients))
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)
	s.IncGoalsRecorded()

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cup_goals_recorded_total 1")
}

func TestMock(t *testing.T) {
	m := NewMock()
	var _ Metrics = m

	m.IncMatchTransition("pause")
	m.IncAuthFailures()
	m.ObservePersistDuration(0.01)
	m.ObservePersistDuration(0.02)

	assert.Equal(t, 1, m.Transitions("pause"))
	assert.Equal(t, 0, m.Transitions("resume"))
	assert.Equal(t, 1, m.AuthFailures())
	assert.Equal(t, 2, m.PersistCount())
}
