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

const goalColumns = `id, account_id, type, target_amount, target_hours, job_id, is_active, created_at`

var goalUpdateColumns = map[string]bool{
	"type": true, "target_amount": true, "target_hours": true,
	"job_id": true, "is_active": true,
}

func scanGoal(row interface{ Scan(...any) error }) (*Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.AccountID, &g.Type, &g.TargetAmount, &g.TargetHours,
		&g.JobID, &g.IsActive, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// UpsertGoal replaces any active goal of the same type and job scope with the
// given target. One active goal per (type, job) pair.
func (s *Store) UpsertGoal(ctx context.Context, g *Goal) (replaced bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE goals SET is_active = 0
		WHERE account_id = ? AND type = ? AND job_id = ? AND is_active = 1`,
		g.AccountID, g.Type, g.JobID)
	if err != nil {
		return false, fmt.Errorf("failed to retire previous goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		replaced = true
	}

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	g.IsActive = true
	g.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.AccountID, g.Type, g.TargetAmount, g.TargetHours, g.JobID,
		g.IsActive, g.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert goal: %w", err)
	}
	return replaced, tx.Commit()
}

// Goals returns the account's active goals in creation order.
func (s *Store) Goals(ctx context.Context, accountID string) ([]Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE account_id = ? AND is_active = 1
		ORDER BY created_at ASC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// GoalByID looks up one of the account's goals.
func (s *Store) GoalByID(ctx context.Context, accountID, id string) (*Goal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE account_id = ? AND id = ?`, accountID, id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}
	return g, nil
}

// GoalByType returns the active goal of a given period type, if any.
func (s *Store) GoalByType(ctx context.Context, accountID, goalType string) (*Goal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE account_id = ? AND type = ? AND is_active = 1
		ORDER BY created_at DESC LIMIT 1`, accountID, goalType)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal by type: %w", err)
	}
	return g, nil
}

// UpdateGoal applies a partial update.
func (s *Store) UpdateGoal(ctx context.Context, accountID, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	var sets []string
	var args []any
	for col, val := range updates {
		if !goalUpdateColumns[col] {
			return fmt.Errorf("goal column %q is not updatable", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	args = append(args, accountID, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE goals SET `+strings.Join(sets, ", ")+` WHERE account_id = ? AND id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal outright.
func (s *Store) DeleteGoal(ctx context.Context, accountID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM goals WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
