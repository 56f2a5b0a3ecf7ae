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

const shiftColumns = `id, account_id, job_id, date, cash_tips, credit_tips, hourly_rate,
	hours_worked, start_time, end_time, overtime_hours, flat_rate, commission,
	sales_amount, tipout_percent, additional_tipout, additional_tipout_note,
	event_name, event_cost, hostess, guest_count, location, client_name,
	project_name, mileage, notes, created_at`

var shiftUpdateColumns = map[string]bool{
	"job_id": true, "date": true, "cash_tips": true, "credit_tips": true,
	"hourly_rate": true, "hours_worked": true, "start_time": true, "end_time": true,
	"overtime_hours": true, "flat_rate": true, "commission": true, "sales_amount": true,
	"tipout_percent": true, "additional_tipout": true, "additional_tipout_note": true,
	"event_name": true, "event_cost": true, "hostess": true, "guest_count": true,
	"location": true, "client_name": true, "project_name": true, "mileage": true,
	"notes": true,
}

// ShiftFilter narrows shift queries. Zero-value fields are ignored; dates are
// inclusive YYYY-MM-DD bounds.
type ShiftFilter struct {
	JobID     string
	StartDate string
	EndDate   string
	EventName string
	Limit     int
}

func (f ShiftFilter) where() (string, []any) {
	clauses := []string{"account_id = ?"}
	args := []any{} // account id is prepended by callers
	if f.JobID != "" {
		clauses = append(clauses, "job_id = ?")
		args = append(args, f.JobID)
	}
	if f.StartDate != "" {
		clauses = append(clauses, "date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		clauses = append(clauses, "date <= ?")
		args = append(args, f.EndDate)
	}
	if f.EventName != "" {
		clauses = append(clauses, "event_name LIKE ?")
		args = append(args, "%"+f.EventName+"%")
	}
	return strings.Join(clauses, " AND "), args
}

func scanShift(row interface{ Scan(...any) error }) (*Shift, error) {
	var sh Shift
	err := row.Scan(&sh.ID, &sh.AccountID, &sh.JobID, &sh.Date, &sh.CashTips,
		&sh.CreditTips, &sh.HourlyRate, &sh.HoursWorked, &sh.StartTime, &sh.EndTime,
		&sh.OvertimeHours, &sh.FlatRate, &sh.Commission, &sh.SalesAmount,
		&sh.TipoutPercent, &sh.AdditionalTipout, &sh.AdditionalTipoutNote,
		&sh.EventName, &sh.EventCost, &sh.Hostess, &sh.GuestCount, &sh.Location,
		&sh.ClientName, &sh.ProjectName, &sh.Mileage, &sh.Notes, &sh.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// InsertShift stores a new shift, assigning an id and creation time.
func (s *Store) InsertShift(ctx context.Context, sh *Shift) error {
	if sh.ID == "" {
		sh.ID = uuid.New().String()
	}
	sh.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (`+shiftColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sh.ID, sh.AccountID, sh.JobID, sh.Date, sh.CashTips, sh.CreditTips,
		sh.HourlyRate, sh.HoursWorked, sh.StartTime, sh.EndTime, sh.OvertimeHours,
		sh.FlatRate, sh.Commission, sh.SalesAmount, sh.TipoutPercent,
		sh.AdditionalTipout, sh.AdditionalTipoutNote, sh.EventName, sh.EventCost,
		sh.Hostess, sh.GuestCount, sh.Location, sh.ClientName, sh.ProjectName,
		sh.Mileage, sh.Notes, sh.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// Shifts returns the account's shifts matching the filter, newest date first.
func (s *Store) Shifts(ctx context.Context, accountID string, f ShiftFilter) ([]Shift, error) {
	where, args := f.where()
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE ` + where + ` ORDER BY date DESC, created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, append([]any{accountID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *sh)
	}
	return shifts, rows.Err()
}

// ShiftByID looks up one of the account's shifts.
func (s *Store) ShiftByID(ctx context.Context, accountID, id string) (*Shift, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE account_id = ? AND id = ?`, accountID, id)
	sh, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift: %w", err)
	}
	return sh, nil
}

// ShiftByDate returns the most recently created shift on a date, optionally
// narrowed to one job. Multiple shifts on a day are legal; the newest wins
// when the caller did not disambiguate.
func (s *Store) ShiftByDate(ctx context.Context, accountID, date, jobID string) (*Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE account_id = ? AND date = ?`
	args := []any{accountID, date}
	if jobID != "" {
		query += ` AND job_id = ?`
		args = append(args, jobID)
	}
	query += ` ORDER BY created_at DESC LIMIT 1`

	row := s.db.QueryRowContext(ctx, query, args...)
	sh, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift by date: %w", err)
	}
	return sh, nil
}

// UpdateShift applies a partial update to one shift.
func (s *Store) UpdateShift(ctx context.Context, accountID, id string, updates map[string]any) error {
	sets, args, err := buildShiftSets(updates)
	if err != nil {
		return err
	}
	if sets == "" {
		return nil
	}
	args = append(args, accountID, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE shifts SET `+sets+` WHERE account_id = ? AND id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateShifts applies a partial update to every shift matching the filter and
// reports how many rows changed.
func (s *Store) UpdateShifts(ctx context.Context, accountID string, f ShiftFilter, updates map[string]any) (int64, error) {
	sets, setArgs, err := buildShiftSets(updates)
	if err != nil {
		return 0, err
	}
	if sets == "" {
		return 0, nil
	}
	where, whereArgs := f.where()
	args := append(setArgs, accountID)
	args = append(args, whereArgs...)
	res, err := s.db.ExecContext(ctx,
		`UPDATE shifts SET `+sets+` WHERE `+where, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update shifts: %w", err)
	}
	return res.RowsAffected()
}

// DeleteShift removes one shift and its contact links.
func (s *Store) DeleteShift(ctx context.Context, accountID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shift_contacts WHERE account_id = ? AND shift_id = ?`, accountID, id); err != nil {
		return fmt.Errorf("failed to delete shift contact links: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`DELETE FROM shifts WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// DeleteShifts removes every shift matching the filter and reports the count.
func (s *Store) DeleteShifts(ctx context.Context, accountID string, f ShiftFilter) (int64, error) {
	where, args := f.where()
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM shifts WHERE `+where, append([]any{accountID}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete shifts: %w", err)
	}
	return res.RowsAffected()
}

func buildShiftSets(updates map[string]any) (string, []any, error) {
	if len(updates) == 0 {
		return "", nil, nil
	}
	var sets []string
	var args []any
	for col, val := range updates {
		if !shiftUpdateColumns[col] {
			return "", nil, fmt.Errorf("shift column %q is not updatable", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	return strings.Join(sets, ", "), args, nil
}
