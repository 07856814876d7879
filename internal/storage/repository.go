package storage

import (
	"database/sql"
	"time"

	"github.com/guttosm/b3ofer/internal/domain/models"
	pq "github.com/lib/pq"
)

// RunsRepository defines contract for run-log operations.
type RunsRepository interface {
	HasRun(side string, sessionDate time.Time) (bool, error)
	RecordRun(run models.FilterRun) error
	ListRuns(sides []string, limit int) ([]models.FilterRun, error)
	DeleteRun(side string, sessionDate time.Time) error
	Ping() error
}

type runsRepository struct {
	db *sql.DB
}

// NewRunsRepository returns a PostgreSQL-backed run log.
func NewRunsRepository(db *sql.DB) RunsRepository {
	return &runsRepository{db: db}
}

// HasRun checks if a run was already recorded for a side and session date.
func (r *runsRepository) HasRun(side string, sessionDate time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM filter_runs WHERE side = $1 AND session_date = $2)`, side, sessionDate).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// RecordRun inserts a run, replacing any earlier run for the same side and day.
func (r *runsRepository) RecordRun(run models.FilterRun) error {
	_, err := r.db.Exec(`
		INSERT INTO filter_runs (id, side, session_date, input_file, output_file, rows_read, rows_written, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (side, session_date)
		DO UPDATE SET id = EXCLUDED.id,
					  input_file = EXCLUDED.input_file,
					  output_file = EXCLUDED.output_file,
					  rows_read = EXCLUDED.rows_read,
					  rows_written = EXCLUDED.rows_written,
					  started_at = EXCLUDED.started_at,
					  finished_at = EXCLUDED.finished_at
	`, run.ID, run.Side, run.SessionDate, run.InputFile, run.OutputFile, run.RowsRead, run.RowsWritten, run.StartedAt, run.FinishedAt)
	return err
}

// ListRuns returns the most recent runs for the given sides, newest session first.
// An empty sides slice means both sides.
func (r *runsRepository) ListRuns(sides []string, limit int) ([]models.FilterRun, error) {
	if len(sides) == 0 {
		sides = []string{"CPA", "VDA"}
	}

	rows, err := r.db.Query(`
		SELECT id, side, session_date, input_file, output_file, rows_read, rows_written, started_at, finished_at
		FROM filter_runs
		WHERE side = ANY($1)
		ORDER BY session_date DESC, side
		LIMIT $2
	`, pq.Array(sides), limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.FilterRun
	for rows.Next() {
		var run models.FilterRun
		if err := rows.Scan(
			&run.ID,
			&run.Side,
			&run.SessionDate,
			&run.InputFile,
			&run.OutputFile,
			&run.RowsRead,
			&run.RowsWritten,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// DeleteRun removes the recorded run for a side and session date.
func (r *runsRepository) DeleteRun(side string, sessionDate time.Time) error {
	_, err := r.db.Exec(`DELETE FROM filter_runs WHERE side = $1 AND session_date = $2`, side, sessionDate)
	return err
}

// Ping checks database connectivity.
func (r *runsRepository) Ping() error {
	return r.db.Ping()
}
