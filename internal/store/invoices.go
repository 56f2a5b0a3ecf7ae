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

const invoiceColumns = `id, account_id, invoice_number, client_name, invoice_date,
	due_date, total_amount, amount_paid, status, shift_id, notes, created_at`

var invoiceUpdateColumns = map[string]bool{
	"invoice_number": true, "client_name": true, "invoice_date": true,
	"due_date": true, "total_amount": true, "amount_paid": true,
	"status": true, "shift_id": true, "notes": true,
}

// InvoiceFilter narrows invoice queries. Dates bound invoice_date inclusively.
type InvoiceFilter struct {
	Status     string
	ClientName string
	StartDate  string
	EndDate    string
	SearchTerm string
	Limit      int
}

func scanInvoice(row interface{ Scan(...any) error }) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.AccountID, &inv.InvoiceNumber, &inv.ClientName,
		&inv.InvoiceDate, &inv.DueDate, &inv.TotalAmount, &inv.AmountPaid,
		&inv.Status, &inv.ShiftID, &inv.Notes, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// InsertInvoice stores a new invoice, assigning an id and creation time.
func (s *Store) InsertInvoice(ctx context.Context, inv *Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.Status == "" {
		inv.Status = "sent"
	}
	inv.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.AccountID, inv.InvoiceNumber, inv.ClientName, inv.InvoiceDate,
		inv.DueDate, inv.TotalAmount, inv.AmountPaid, inv.Status, inv.ShiftID,
		inv.Notes, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

// Invoices returns invoices matching the filter, newest invoice date first.
func (s *Store) Invoices(ctx context.Context, accountID string, f InvoiceFilter) ([]Invoice, error) {
	clauses := []string{"account_id = ?"}
	args := []any{accountID}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if f.ClientName != "" {
		clauses = append(clauses, "client_name LIKE ?")
		args = append(args, "%"+f.ClientName+"%")
	}
	if f.StartDate != "" {
		clauses = append(clauses, "invoice_date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		clauses = append(clauses, "invoice_date <= ?")
		args = append(args, f.EndDate)
	}
	if f.SearchTerm != "" {
		clauses = append(clauses, "(invoice_number LIKE ? OR client_name LIKE ? OR notes LIKE ?)")
		pattern := "%" + f.SearchTerm + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE ` + strings.Join(clauses, " AND ") + `
		ORDER BY invoice_date DESC, created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

// InvoiceByID looks up one of the account's invoices.
func (s *Store) InvoiceByID(ctx context.Context, accountID, id string) (*Invoice, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE account_id = ? AND id = ?`, accountID, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice: %w", err)
	}
	return inv, nil
}

// UpdateInvoice applies a partial update.
func (s *Store) UpdateInvoice(ctx context.Context, accountID, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	var sets []string
	var args []any
	for col, val := range updates {
		if !invoiceUpdateColumns[col] {
			return fmt.Errorf("invoice column %q is not updatable", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	args = append(args, accountID, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET `+strings.Join(sets, ", ")+` WHERE account_id = ? AND id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteInvoice removes an invoice.
func (s *Store) DeleteInvoice(ctx context.Context, accountID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM invoices WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
