// Package store is the SQLite backing store. Every query helper takes the
// authenticated account id and scopes reads and writes to it; nothing above
// this layer concatenates SQL.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup by id matches no row for the account.
var ErrNotFound = errors.New("store: not found")

// Store wraps the database handle.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates or opens the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		name TEXT NOT NULL,
		industry TEXT NOT NULL DEFAULT '',
		hourly_rate REAL NOT NULL DEFAULT 0,
		color TEXT NOT NULL DEFAULT '',
		is_default INTEGER NOT NULL DEFAULT 0,
		is_active INTEGER NOT NULL DEFAULT 1,
		end_date TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_jobs_account ON jobs(account_id);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		job_id TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		cash_tips REAL NOT NULL DEFAULT 0,
		credit_tips REAL NOT NULL DEFAULT 0,
		hourly_rate REAL NOT NULL DEFAULT 0,
		hours_worked REAL NOT NULL DEFAULT 0,
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		overtime_hours REAL NOT NULL DEFAULT 0,
		flat_rate REAL NOT NULL DEFAULT 0,
		commission REAL NOT NULL DEFAULT 0,
		sales_amount REAL NOT NULL DEFAULT 0,
		tipout_percent REAL NOT NULL DEFAULT 0,
		additional_tipout REAL NOT NULL DEFAULT 0,
		additional_tipout_note TEXT NOT NULL DEFAULT '',
		event_name TEXT NOT NULL DEFAULT '',
		event_cost REAL NOT NULL DEFAULT 0,
		hostess TEXT NOT NULL DEFAULT '',
		guest_count INTEGER NOT NULL DEFAULT 0,
		location TEXT NOT NULL DEFAULT '',
		client_name TEXT NOT NULL DEFAULT '',
		project_name TEXT NOT NULL DEFAULT '',
		mileage REAL NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_shifts_account_date ON shifts(account_id, date);
	CREATE INDEX IF NOT EXISTS idx_shifts_job ON shifts(job_id);

	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		type TEXT NOT NULL,
		target_amount REAL NOT NULL DEFAULT 0,
		target_hours REAL NOT NULL DEFAULT 0,
		job_id TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_goals_account ON goals(account_id);

	CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		custom_role TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		instagram TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		is_favorite INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_contacts_account ON contacts(account_id);

	CREATE TABLE IF NOT EXISTS shift_contacts (
		account_id TEXT NOT NULL,
		shift_id TEXT NOT NULL,
		contact_id TEXT NOT NULL,
		PRIMARY KEY (shift_id, contact_id)
	);

	CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		invoice_number TEXT NOT NULL DEFAULT '',
		client_name TEXT NOT NULL DEFAULT '',
		invoice_date TEXT NOT NULL DEFAULT '',
		due_date TEXT NOT NULL DEFAULT '',
		total_amount REAL NOT NULL DEFAULT 0,
		amount_paid REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'sent',
		shift_id TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_invoices_account ON invoices(account_id);

	CREATE TABLE IF NOT EXISTS user_settings (
		account_id TEXT PRIMARY KEY,
		theme TEXT NOT NULL DEFAULT 'cash_app',
		notifications_enabled INTEGER NOT NULL DEFAULT 1,
		shift_reminders INTEGER NOT NULL DEFAULT 0,
		shift_reminder_time TEXT NOT NULL DEFAULT '',
		goal_reminders INTEGER NOT NULL DEFAULT 0,
		goal_reminder_frequency TEXT NOT NULL DEFAULT '',
		quiet_hours_enabled INTEGER NOT NULL DEFAULT 0,
		quiet_start TEXT NOT NULL DEFAULT '',
		quiet_end TEXT NOT NULL DEFAULT '',
		filing_status TEXT NOT NULL DEFAULT 'single',
		dependents INTEGER NOT NULL DEFAULT 0,
		deductions REAL NOT NULL DEFAULT 0,
		is_self_employed INTEGER NOT NULL DEFAULT 1,
		currency_code TEXT NOT NULL DEFAULT 'USD',
		show_cents INTEGER NOT NULL DEFAULT 1,
		date_format TEXT NOT NULL DEFAULT 'MM/DD/YYYY',
		week_start_day TEXT NOT NULL DEFAULT 'sunday',
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS chat_messages (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		is_from_user INTEGER NOT NULL,
		text TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_account ON chat_messages(account_id);

	CREATE TABLE IF NOT EXISTS feature_requests (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		idea TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'other',
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}
