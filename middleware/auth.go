package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/youth-cup/services"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const adminClaimsKey contextKey = "admin_claims"

// TokenParser verifies admin tokens.
type TokenParser interface {
	ParseToken(token string) (*services.AdminClaims, error)
}

// RequireTournamentAdmin accepts only a valid admin bearer token issued for the tournament named
// by the tournamentID URL parameter.
func RequireTournamentAdmin(parser TokenParser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			claims, err := parser.ParseToken(token)
			if err != nil {
				logger.DebugContext(r.Context(), "admin token rejected", slog.Any("error", err))
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if claims.TournamentID != chi.URLParam(r, "tournamentID") {
				writeError(w, http.StatusForbidden, services.ErrForbiddenOperation.Error())
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminClaimsFromContext returns the claims stored by RequireTournamentAdmin.
func AdminClaimsFromContext(ctx context.Context) (*services.AdminClaims, error) {
	claims, ok := ctx.Value(adminClaimsKey).(*services.AdminClaims)
	if !ok || claims == nil {
		return nil, errors.New("admin claims not found in context")
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
