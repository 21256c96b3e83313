package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/youth-cup/models"
	"github.com/lib/pq"
)

// Postgres error codes the tournament table can raise on write.
const (
	pqCheckViolation      = "23514"
	pqInvalidTextEncoding = "22P02"
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// mapPostgresError turns constraint failures into ErrTournamentInvalidRecord and passes the rest through.
func mapPostgresError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqCheckViolation, pqInvalidTextEncoding:
			return fmt.Errorf("%w: %s", ErrTournamentInvalidRecord, pqErr.Message)
		}
	}
	return err
}

func decodeTournament(data []byte) (*models.Tournament, error) {
	var t models.Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament record: %w", err)
	}
	return &t, nil
}
