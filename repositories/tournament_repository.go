package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/youth-cup/models"
)

var (
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrTournamentInvalidRecord = errors.New("tournament record rejected by storage")
)

// TournamentRepository persists whole tournament records. Save is last-write-wins: there is no
// version check, a later Save simply replaces the stored record.
type TournamentRepository interface {
	Load(ctx context.Context, id string) (*models.Tournament, error)
	Save(ctx context.Context, tournament *models.Tournament) error
	List(ctx context.Context) ([]models.TournamentSummary, error)
	Delete(ctx context.Context, id string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Load(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT data FROM tournaments WHERE id = $1`

	var data []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return decodeTournament(data)
}

func (r *postgresTournamentRepository) Save(ctx context.Context, tournament *models.Tournament) error {
	data, err := json.Marshal(tournament)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", tournament.ID, err)
	}

	query := `
		INSERT INTO tournaments (id, name, status, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		tournament.ID,
		tournament.Name,
		tournament.Status,
		data,
		tournament.CreatedAt,
		tournament.UpdatedAt,
	)
	return mapPostgresError(err)
}

// List reads the summary columns and counts straight from the JSONB document without decoding
// whole records.
func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.TournamentSummary, error) {
	query := `
		SELECT
			id,
			name,
			status,
			COALESCE(data->'settings'->>'start_date', ''),
			CASE WHEN jsonb_typeof(data->'teams') = 'array' THEN jsonb_array_length(data->'teams') ELSE 0 END,
			CASE WHEN jsonb_typeof(data->'matches') = 'array' THEN jsonb_array_length(data->'matches') ELSE 0 END,
			CASE WHEN jsonb_typeof(data->'matches') = 'array' THEN (
				SELECT count(*) FROM jsonb_array_elements(data->'matches') AS m WHERE m->>'status' = $1
			) ELSE 0 END,
			updated_at
		FROM tournaments
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, string(models.MatchStatusFinished))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.TournamentSummary, 0)
	for rows.Next() {
		var s models.TournamentSummary
		if scanErr := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Status,
			&s.StartDate,
			&s.TeamCount,
			&s.MatchCount,
			&s.FinishedCount,
			&s.UpdatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
