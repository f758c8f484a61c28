package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ytxrecon/internal/models"
	"github.com/desertthunder/ytxrecon/internal/shared"
)

// RunRepository tracks reconciliation runs.
//
// A run is created as [models.RunRunning] and moves to completed or failed exactly once.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new running run with a generated ID
func (r *RunRepository) Create(ctx context.Context) (*models.Run, error) {
	run := &models.Run{
		ID:        shared.GenerateID(),
		Status:    models.RunRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO reconciliation_runs (id, status, started_at) VALUES (?, ?, ?)",
		run.ID, run.Status, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	return run, nil
}

// Complete marks a running run as completed and stores its counts.
func (r *RunRepository) Complete(ctx context.Context, id string, counts models.RunCounts) error {
	query := `
		UPDATE reconciliation_runs
		SET status = ?, search_logs = ?, enriched = ?, reconciled = ?, dropped = ?,
			missing_catalog = ?, null_percentage = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		models.RunCompleted,
		counts.SearchLogs,
		counts.Enriched,
		counts.Reconciled,
		counts.Dropped,
		counts.MissingCatalog,
		counts.NullPercentage,
		time.Now().UTC(),
		id,
		models.RunRunning,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	return checkAffected(result, id)
}

// Fail marks a running run as failed with cause as its error message.
func (r *RunRepository) Fail(ctx context.Context, id string, cause error) error {
	var message any
	if cause != nil {
		message = cause.Error()
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE reconciliation_runs
		SET status = ?, error_message = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`, models.RunFailed, message, time.Now().UTC(), id, models.RunRunning)
	if err != nil {
		return fmt.Errorf("failed to mark run as failed: %w", err)
	}

	return checkAffected(result, id)
}

// Get retrieves a run by ID
func (r *RunRepository) Get(ctx context.Context, id string) (*models.Run, error) {
	runs, err := queryAll(ctx, r.db, selectRuns+" WHERE id = ?", scanRun, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}
	return runs[0], nil
}

// List returns the most recent runs first. A limit of zero or less returns every run.
func (r *RunRepository) List(ctx context.Context, limit int) ([]*models.Run, error) {
	query := selectRuns + " ORDER BY started_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	runs, err := queryAll(ctx, r.db, query, scanRun, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	return runs, nil
}

const selectRuns = `
	SELECT
		id, status, search_logs, enriched, reconciled, dropped,
		missing_catalog, null_percentage, error_message, started_at, completed_at
	FROM reconciliation_runs`

// scanRun scans a row from [sql.Rows] into a [models.Run]
func scanRun(rows *sql.Rows) (*models.Run, error) {
	var (
		run          models.Run
		errorMessage sql.NullString
		completedAt  sql.NullTime
	)

	err := rows.Scan(
		&run.ID, &run.Status, &run.SearchLogs, &run.Enriched, &run.Reconciled, &run.Dropped,
		&run.MissingCatalog, &run.NullPercentage, &errorMessage, &run.StartedAt, &completedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	if errorMessage.Valid {
		run.ErrorMessage = errorMessage.String
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}

	return &run, nil
}

func checkAffected(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s is not running", shared.ErrRunNotFound, id)
	}
	return nil
}
