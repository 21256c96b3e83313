package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/youth-cup/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation fields", &services.ValidationError{Fields: map[string]string{"name": "required"}}, http.StatusUnprocessableEntity},
		{"tournament not found", services.ErrTournamentNotFound, http.StatusNotFound},
		{"wrapped match not found", fmt.Errorf("loading: %w", services.ErrMatchNotFound), http.StatusNotFound},
		{"goal not found", services.ErrGoalNotFound, http.StatusNotFound},
		{"jersey taken", services.ErrJerseyNumberTaken, http.StatusConflict},
		{"invalid jersey", services.ErrInvalidJerseyNumber, http.StatusBadRequest},
		{"team not in match", services.ErrGoalTeamNotInMatch, http.StatusBadRequest},
		{"bad pin", services.ErrAuthenticationFailed, http.StatusUnauthorized},
		{"forbidden", services.ErrForbiddenOperation, http.StatusForbidden},
		{"uploads disabled", services.ErrUploadsDisabled, http.StatusServiceUnavailable},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			mapServiceErrorToHTTP(rec, req, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body, "error")
		})
	}
}

func TestServerErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestReadJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Cup"}`))
	require.NoError(t, readJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "Cup", dst.Name)

	cases := map[string]string{
		"unknown field": `{"nope":1}`,
		"two values":    `{"name":"a"}{"name":"b"}`,
		"empty":         ``,
		"wrong type":    `{"name":5}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			assert.Error(t, readJSON(httptest.NewRecorder(), req, &dst))
		})
	}
}

func TestOriginChecker(t *testing.T) {
	withOrigin := func(origin string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		return req
	}

	assert.True(t, originChecker(nil)(withOrigin("https://anything.test")))
	assert.True(t, originChecker([]string{"*"})(withOrigin("https://anything.test")))

	check := originChecker([]string{"https://cup.example"})
	assert.True(t, check(withOrigin("https://cup.example")))
	assert.True(t, check(withOrigin("")))
	assert.False(t, check(withOrigin("https://evil.example")))
}
