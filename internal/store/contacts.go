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

const contactColumns = `id, account_id, name, role, custom_role, company, phone,
	email, website, instagram, notes, is_favorite, created_at`

var contactUpdateColumns = map[string]bool{
	"name": true, "role": true, "custom_role": true, "company": true,
	"phone": true, "email": true, "website": true, "instagram": true,
	"notes": true, "is_favorite": true,
}

// ContactFilter narrows contact searches. Query matches name, company, and
// notes; role and company match their own columns.
type ContactFilter struct {
	Query         string
	Role          string
	Company       string
	FavoritesOnly bool
}

func scanContact(row interface{ Scan(...any) error }) (*Contact, error) {
	var c Contact
	err := row.Scan(&c.ID, &c.AccountID, &c.Name, &c.Role, &c.CustomRole,
		&c.Company, &c.Phone, &c.Email, &c.Website, &c.Instagram, &c.Notes,
		&c.IsFavorite, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// InsertContact stores a new contact, assigning an id and creation time.
func (s *Store) InsertContact(ctx context.Context, c *Contact) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (`+contactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.AccountID, c.Name, c.Role, c.CustomRole, c.Company, c.Phone,
		c.Email, c.Website, c.Instagram, c.Notes, c.IsFavorite, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// Contacts returns contacts matching the filter, favorites first then by name.
func (s *Store) Contacts(ctx context.Context, accountID string, f ContactFilter) ([]Contact, error) {
	clauses := []string{"account_id = ?"}
	args := []any{accountID}
	if f.Query != "" {
		clauses = append(clauses, "(name LIKE ? OR company LIKE ? OR notes LIKE ?)")
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if f.Role != "" {
		clauses = append(clauses, "role = ?")
		args = append(args, f.Role)
	}
	if f.Company != "" {
		clauses = append(clauses, "company LIKE ?")
		args = append(args, "%"+f.Company+"%")
	}
	if f.FavoritesOnly {
		clauses = append(clauses, "is_favorite = 1")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+contactColumns+` FROM contacts
		WHERE `+strings.Join(clauses, " AND ")+`
		ORDER BY is_favorite DESC, name COLLATE NOCASE ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// ContactByID looks up one of the account's contacts.
func (s *Store) ContactByID(ctx context.Context, accountID, id string) (*Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE account_id = ? AND id = ?`, accountID, id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}
	return c, nil
}

// ContactByName matches a contact by case-insensitive exact name.
func (s *Store) ContactByName(ctx context.Context, accountID, name string) (*Contact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+contactColumns+` FROM contacts
		WHERE account_id = ? AND LOWER(name) = LOWER(?) LIMIT 1`, accountID, name)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contact by name: %w", err)
	}
	return c, nil
}

// UpdateContact applies a partial update.
func (s *Store) UpdateContact(ctx context.Context, accountID, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	var sets []string
	var args []any
	for col, val := range updates {
		if !contactUpdateColumns[col] {
			return fmt.Errorf("contact column %q is not updatable", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	args = append(args, accountID, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET `+strings.Join(sets, ", ")+` WHERE account_id = ? AND id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContact removes a contact and its shift links.
func (s *Store) DeleteContact(ctx context.Context, accountID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shift_contacts WHERE account_id = ? AND contact_id = ?`, accountID, id); err != nil {
		return fmt.Errorf("failed to delete contact links: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`DELETE FROM contacts WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// LinkContactToShift attaches a contact to a shift. Linking twice is a no-op.
func (s *Store) LinkContactToShift(ctx context.Context, accountID, contactID, shiftID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO shift_contacts (account_id, shift_id, contact_id)
		VALUES (?, ?, ?)`, accountID, shiftID, contactID)
	if err != nil {
		return fmt.Errorf("failed to link contact to shift: %w", err)
	}
	return nil
}

// ContactsForShift returns every contact linked to a shift.
func (s *Store) ContactsForShift(ctx context.Context, accountID, shiftID string) ([]Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+qualifiedContactColumns()+` FROM contacts c
		JOIN shift_contacts sc ON sc.contact_id = c.id
		WHERE sc.account_id = ? AND sc.shift_id = ?
		ORDER BY c.name COLLATE NOCASE ASC`, accountID, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func qualifiedContactColumns() string {
	cols := strings.Split(contactColumns, ",")
	for i, col := range cols {
		cols[i] = "c." + strings.TrimSpace(col)
	}
	return strings.Join(cols, ", ")
}
