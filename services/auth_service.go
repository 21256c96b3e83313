package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/youth-cup/utils"
	"github.com/golang-jwt/jwt/v4"
)

const RoleAdmin = "admin"

// AdminClaims are carried by the token issued after a successful PIN check.
type AdminClaims struct {
	TournamentID string `json:"tournament_id"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthService struct {
	store  *Store
	secret []byte
	ttl    time.Duration
}

func NewAuthService(store *Store, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Authenticate checks pin against the tournament's hash and returns an admin token.
func (s *AuthService) Authenticate(ctx context.Context, tournamentID, pin string) (*AdminToken, error) {
	t, err := s.store.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPinHash(pin, t.PinHash) {
		s.store.metrics.IncAuthFailures()
		s.store.logger.WarnContext(ctx, "pin check failed", slog.String("tournament_id", tournamentID))
		return nil, ErrAuthenticationFailed
	}
	return s.IssueToken(tournamentID)
}

func (s *AuthService) IssueToken(tournamentID string) (*AdminToken, error) {
	now := s.store.clock.Now()
	expiresAt := now.Add(s.ttl)
	claims := AdminClaims{
		TournamentID: tournamentID,
		Role:         RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing admin token: %w", err)
	}
	return &AdminToken{Token: signed, ExpiresAt: expiresAt.UTC()}, nil
}

// ParseToken verifies the signature, expiry and role of an admin token.
func (s *AuthService) ParseToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, fmt.Errorf("%w: token expired", ErrAuthenticationFailed)
		}
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	if !token.Valid || claims.Role != RoleAdmin || claims.TournamentID == "" {
		return nil, ErrAuthenticationFailed
	}
	return claims, nil
}
