package services

import "errors"

// Errors shared by the services and mapped to HTTP statuses by the handlers.
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGoalNotFound       = errors.New("goal not found")

	// Validation
	ErrValidationFailed       = errors.New("validation failed")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrNotEnoughTeams         = errors.New("at least two teams are required")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrPlayerNameRequired     = errors.New("player name is required")
	ErrInvalidSettings        = errors.New("invalid tournament settings")
	ErrInvalidJerseyNumber    = errors.New("jersey number must be between 1 and 99")
	ErrJerseyNumberTaken      = errors.New("jersey number is already taken in this team")
	ErrInvalidPin             = errors.New("pin must be 4 to 8 digits")
	ErrGoalTeamNotInMatch     = errors.New("team does not play in this match")
	ErrUnsupportedLogoType    = errors.New("unsupported logo content type")

	// Authentication
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for this token")

	ErrUploadsDisabled = errors.New("logo uploads are not configured")
)
