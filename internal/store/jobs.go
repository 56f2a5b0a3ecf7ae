package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const jobColumns = `id, account_id, name, industry, hourly_rate, color, is_default, is_active, end_date, created_at`

// jobUpdateColumns is the whitelist of columns UpdateJob accepts.
var jobUpdateColumns = map[string]bool{
	"name":        true,
	"industry":    true,
	"hourly_rate": true,
	"color":       true,
	"is_default":  true,
	"is_active":   true,
	"end_date":    true,
}

func scanJob(row interface{ Scan(...any) error }) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.AccountID, &j.Name, &j.Industry, &j.HourlyRate,
		&j.Color, &j.IsDefault, &j.IsActive, &j.EndDate, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// InsertJob stores a new job, assigning an id and creation time.
func (s *Store) InsertJob(ctx context.Context, j *Job) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	j.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, account_id, name, industry, hourly_rate, color, is_default, is_active, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.AccountID, j.Name, j.Industry, j.HourlyRate, j.Color,
		j.IsDefault, j.IsActive, j.EndDate, j.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// Jobs returns the account's jobs in creation order, optionally including
// ended ones.
func (s *Store) Jobs(ctx context.Context, accountID string, includeEnded bool) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE account_id = ?`
	if !includeEnded {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// JobByID looks up one of the account's jobs.
func (s *Store) JobByID(ctx context.Context, accountID, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE account_id = ? AND id = ?`, accountID, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query job: %w", err)
	}
	return j, nil
}

// JobByName matches a job by case-insensitive name among active jobs.
func (s *Store) JobByName(ctx context.Context, accountID, name string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+` FROM jobs
		WHERE account_id = ? AND is_active = 1 AND LOWER(name) = LOWER(?)
		LIMIT 1`, accountID, name)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query job by name: %w", err)
	}
	return j, nil
}

// UpdateJob applies a partial update. Column names outside the whitelist are
// rejected rather than silently dropped.
func (s *Store) UpdateJob(ctx context.Context, accountID, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	var sets []string
	var args []any
	for col, val := range updates {
		if !jobUpdateColumns[col] {
			return fmt.Errorf("job column %q is not updatable", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	args = append(args, accountID, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET `+strings.Join(sets, ", ")+` WHERE account_id = ? AND id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDefaultJob flags one job as default and clears the flag everywhere else,
// atomically. The exclusivity invariant lives here, not in callers.
func (s *Store) SetDefaultJob(ctx context.Context, accountID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE jobs SET is_default = 0 WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("failed to clear default flags: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE jobs SET is_default = 1 WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to set default job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// DeleteJob removes a job. Its shifts are either deleted with it or detached
// so their history survives under no job.
func (s *Store) DeleteJob(ctx context.Context, accountID, id string, deleteShifts bool) (shiftsAffected int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var res sql.Result
	if deleteShifts {
		res, err = tx.ExecContext(ctx,
			`DELETE FROM shifts WHERE account_id = ? AND job_id = ?`, accountID, id)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE shifts SET job_id = '' WHERE account_id = ? AND job_id = ?`, accountID, id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to update job shifts: %w", err)
	}
	shiftsAffected, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx,
		`DELETE FROM jobs WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrNotFound
	}
	return shiftsAffected, tx.Commit()
}
