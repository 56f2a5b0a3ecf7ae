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

const settingsColumns = `account_id, theme, notifications_enabled, shift_reminders,
	shift_reminder_time, goal_reminders, goal_reminder_frequency, quiet_hours_enabled,
	quiet_start, quiet_end, filing_status, dependents, deductions, is_self_employed,
	currency_code, show_cents, date_format, week_start_day, updated_at`

var settingsUpdateColumns = map[string]bool{
	"theme": true, "notifications_enabled": true, "shift_reminders": true,
	"shift_reminder_time": true, "goal_reminders": true, "goal_reminder_frequency": true,
	"quiet_hours_enabled": true, "quiet_start": true, "quiet_end": true,
	"filing_status": true, "dependents": true, "deductions": true,
	"is_self_employed": true, "currency_code": true, "show_cents": true,
	"date_format": true, "week_start_day": true,
}

// Settings returns the account's settings, inserting the default row on first
// access so callers always see a concrete value for every preference.
func (s *Store) Settings(ctx context.Context, accountID string) (*Settings, error) {
	for attempt := 0; attempt < 2; attempt++ {
		row := s.db.QueryRowContext(ctx,
			`SELECT `+settingsColumns+` FROM user_settings WHERE account_id = ?`, accountID)
		var st Settings
		err := row.Scan(&st.AccountID, &st.Theme, &st.NotificationsEnabled,
			&st.ShiftReminders, &st.ShiftReminderTime, &st.GoalReminders,
			&st.GoalReminderFreq, &st.QuietHoursEnabled, &st.QuietStart, &st.QuietEnd,
			&st.FilingStatus, &st.Dependents, &st.Deductions, &st.IsSelfEmployed,
			&st.CurrencyCode, &st.ShowCents, &st.DateFormat, &st.WeekStartDay,
			&st.UpdatedAt)
		if err == nil {
			return &st, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to query settings: %w", err)
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO user_settings (account_id, updated_at) VALUES (?, ?)`,
			accountID, time.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("failed to seed settings: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to read settings after seeding account %s", accountID)
}

// UpdateSettings applies a partial update, creating the row first if needed.
func (s *Store) UpdateSettings(ctx context.Context, accountID string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	if _, err := s.Settings(ctx, accountID); err != nil {
		return err
	}
	var sets []string
	var args []any
	for col, val := range updates {
		if !settingsUpdateColumns[col] {
			return fmt.Errorf("settings column %q is not updatable", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), accountID)
	_, err := s.db.ExecContext(ctx,
		`UPDATE user_settings SET `+strings.Join(sets, ", ")+` WHERE account_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// ChatMessageCount reports how many stored chat messages the account has.
func (s *Store) ChatMessageCount(ctx context.Context, accountID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE account_id = ?`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count chat messages: %w", err)
	}
	return n, nil
}

// ClearChatHistory deletes every stored chat message and reports the count.
func (s *Store) ClearChatHistory(ctx context.Context, accountID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE account_id = ?`, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear chat history: %w", err)
	}
	return res.RowsAffected()
}

// AppendChatMessage records one turn of conversation.
func (s *Store) AppendChatMessage(ctx context.Context, accountID string, fromUser bool, text string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, account_id, is_from_user, text, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), accountID, fromUser, text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// InsertFeatureRequest records a user-submitted product idea.
func (s *Store) InsertFeatureRequest(ctx context.Context, accountID, idea, category string) (string, error) {
	id := uuid.New().String()
	if category == "" {
		category = "other"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feature_requests (id, account_id, idea, category, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, accountID, idea, category, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert feature request: %w", err)
	}
	return id, nil
}
