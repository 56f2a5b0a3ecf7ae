package ops

import (
	"context"
	"fmt"
	"strings"

	"tipline/internal/catalog"
	"tipline/internal/store"
)

// themeAliases maps what users actually say to canonical theme names.
var themeAliases = map[string]string{
	"dark":     "cash_app",
	"default":  "cash_app",
	"green":    "cash_app",
	"light":    "cash_light",
	"white":    "cash_light",
	"blue":     "midnight_blue",
	"purple":   "purple_reign",
	"ocean":    "ocean_breeze",
	"sunset":   "sunset_glow",
	"neon":     "neon_cash",
	"paypal":   "paypal_blue",
	"coinbase": "coinbase_pro",
	"pink":     "pink_light",
	"slate":    "slate_light",
	"mint":     "mint_light",
	"lavender": "lavender_light",
	"gold":     "gold_light",
}

var filingStatuses = map[string]bool{
	"single": true, "married_joint": true, "married_separate": true,
	"head_of_household": true,
}

var dateFormats = map[string]bool{
	"MM/DD/YYYY": true, "DD/MM/YYYY": true, "YYYY-MM-DD": true,
}

// SettingsModule owns the preferences family operations.
type SettingsModule struct {
	store *store.Store
}

// NewSettingsModule builds the settings module.
func NewSettingsModule(st *store.Store) *SettingsModule {
	return &SettingsModule{store: st}
}

// Execute runs one settings operation.
func (m *SettingsModule) Execute(ctx context.Context, req Request) (*Result, error) {
	switch req.Name {
	case "change_theme":
		return m.changeTheme(ctx, req)
	case "get_available_themes":
		return m.getAvailableThemes(ctx, req)
	case "toggle_notifications":
		return m.toggleNotifications(ctx, req)
	case "set_shift_reminders":
		return m.setShiftReminders(ctx, req)
	case "set_goal_reminders":
		return m.setGoalReminders(ctx, req)
	case "set_quiet_hours":
		return m.setQuietHours(ctx, req)
	case "get_notification_settings":
		return m.getNotificationSettings(ctx, req)
	case "update_tax_settings":
		return m.updateTaxSettings(ctx, req)
	case "set_currency_format":
		return m.setCurrencyFormat(ctx, req)
	case "set_date_format":
		return m.setDateFormat(ctx, req)
	case "set_week_start_day":
		return m.setWeekStartDay(ctx, req)
	case "clear_chat_history":
		return m.clearChatHistory(ctx, req)
	case "get_user_settings":
		return m.getUserSettings(ctx, req)
	default:
		return nil, fmt.Errorf("settings module: unknown operation %q", req.Name)
	}
}

// parseThemeName normalizes free-form theme input to a canonical name, or ""
// when nothing matches.
func parseThemeName(input string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(input)), " ", "_")
	for _, name := range catalog.ThemeNames {
		if name == normalized {
			return name
		}
	}
	if canonical, found := themeAliases[normalized]; found {
		return canonical
	}
	// "midnight blue theme" and similar: try dropping a trailing "theme".
	trimmed := strings.TrimSuffix(normalized, "_theme")
	if trimmed != normalized {
		return parseThemeName(trimmed)
	}
	return ""
}

func (m *SettingsModule) changeTheme(ctx context.Context, req Request) (*Result, error) {
	theme := parseThemeName(req.Args.Str("theme"))
	if theme == "" {
		return fail("unknown theme %q; ask get_available_themes for the list", req.Args.Str("theme")), nil
	}
	if err := m.store.UpdateSettings(ctx, req.AccountID, map[string]any{"theme": theme}); err != nil {
		return nil, err
	}
	return okData(map[string]any{"theme": theme}, "Switched to the %s theme.",
		strings.ReplaceAll(theme, "_", " ")), nil
}

func (m *SettingsModule) getAvailableThemes(ctx context.Context, req Request) (*Result, error) {
	settings, err := m.store.Settings(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	return okData(map[string]any{
		"themes":       catalog.ThemeNames,
		"currentTheme": settings.Theme,
	}, "There are %d themes; you're on %s.", len(catalog.ThemeNames), settings.Theme), nil
}

func (m *SettingsModule) toggleNotifications(ctx context.Context, req Request) (*Result, error) {
	enabled := req.Args.Bool("enabled")
	if err := m.store.UpdateSettings(ctx, req.AccountID,
		map[string]any{"notifications_enabled": enabled}); err != nil {
		return nil, err
	}
	if enabled {
		return ok("Notifications are on."), nil
	}
	return ok("Notifications are off."), nil
}

func (m *SettingsModule) setShiftReminders(ctx context.Context, req Request) (*Result, error) {
	updates := map[string]any{"shift_reminders": req.Args.Bool("enabled")}
	if t := req.Args.Str("reminderTime"); t != "" {
		updates["shift_reminder_time"] = t
	}
	if err := m.store.UpdateSettings(ctx, req.AccountID, updates); err != nil {
		return nil, err
	}
	if req.Args.Bool("enabled") {
		return ok("Shift reminders are on."), nil
	}
	return ok("Shift reminders are off."), nil
}

func (m *SettingsModule) setGoalReminders(ctx context.Context, req Request) (*Result, error) {
	updates := map[string]any{"goal_reminders": req.Args.Bool("enabled")}
	if f := req.Args.Str("frequency"); f != "" {
		updates["goal_reminder_frequency"] = f
	}
	if err := m.store.UpdateSettings(ctx, req.AccountID, updates); err != nil {
		return nil, err
	}
	if req.Args.Bool("enabled") {
		return ok("Goal reminders are on."), nil
	}
	return ok("Goal reminders are off."), nil
}

func (m *SettingsModule) setQuietHours(ctx context.Context, req Request) (*Result, error) {
	updates := map[string]any{"quiet_hours_enabled": req.Args.Bool("enabled")}
	if t := req.Args.Str("startTime"); t != "" {
		updates["quiet_start"] = t
	}
	if t := req.Args.Str("endTime"); t != "" {
		updates["quiet_end"] = t
	}
	if err := m.store.UpdateSettings(ctx, req.AccountID, updates); err != nil {
		return nil, err
	}
	if req.Args.Bool("enabled") {
		return ok("Quiet hours are set."), nil
	}
	return ok("Quiet hours are off."), nil
}

func (m *SettingsModule) getNotificationSettings(ctx context.Context, req Request) (*Result, error) {
	s, err := m.store.Settings(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	return okData(map[string]any{
		"notificationsEnabled":  s.NotificationsEnabled,
		"shiftReminders":        s.ShiftReminders,
		"shiftReminderTime":     s.ShiftReminderTime,
		"goalReminders":         s.GoalReminders,
		"goalReminderFrequency": s.GoalReminderFreq,
		"quietHoursEnabled":     s.QuietHoursEnabled,
		"quietStart":            s.QuietStart,
		"quietEnd":              s.QuietEnd,
	}, "Here are your notification settings."), nil
}

func (m *SettingsModule) updateTaxSettings(ctx context.Context, req Request) (*Result, error) {
	updates := map[string]any{}
	if status := req.Args.Str("filingStatus"); status != "" {
		if !filingStatuses[status] {
			return fail("unknown filing status %q", status), nil
		}
		updates["filing_status"] = status
	}
	if n, has := req.Args.Int("dependents"); has {
		if n < 0 {
			return fail("dependents must be non-negative"), nil
		}
		updates["dependents"] = n
	}
	if d, has := req.Args.Num("deductions"); has {
		if d < 0 {
			return fail("deductions must be non-negative"), nil
		}
		updates["deductions"] = d
	}
	if req.Args.Has("isSelfEmployed") {
		updates["is_self_employed"] = req.Args.Bool("isSelfEmployed")
	}
	if len(updates) == 0 {
		return fail("nothing to update; provide at least one tax setting"), nil
	}
	if err := m.store.UpdateSettings(ctx, req.AccountID, updates); err != nil {
		return nil, err
	}
	return ok("Updated your tax settings."), nil
}

func (m *SettingsModule) setCurrencyFormat(ctx context.Context, req Request) (*Result, error) {
	code := strings.ToUpper(req.Args.Str("currencyCode"))
	if len(code) != 3 {
		return fail("currencyCode must be a 3-letter code like USD"), nil
	}
	updates := map[string]any{"currency_code": code}
	if req.Args.Has("showCents") {
		updates["show_cents"] = req.Args.Bool("showCents")
	}
	if err := m.store.UpdateSettings(ctx, req.AccountID, updates); err != nil {
		return nil, err
	}
	return ok("Currency set to %s.", code), nil
}

func (m *SettingsModule) setDateFormat(ctx context.Context, req Request) (*Result, error) {
	format := req.Args.Str("format")
	if !dateFormats[format] {
		return fail("format must be MM/DD/YYYY, DD/MM/YYYY, or YYYY-MM-DD"), nil
	}
	if err := m.store.UpdateSettings(ctx, req.AccountID,
		map[string]any{"date_format": format}); err != nil {
		return nil, err
	}
	return ok("Dates will display as %s.", format), nil
}

func (m *SettingsModule) setWeekStartDay(ctx context.Context, req Request) (*Result, error) {
	day := strings.ToLower(req.Args.Str("day"))
	if day != "sunday" && day != "monday" {
		return fail("week start day must be sunday or monday"), nil
	}
	if err := m.store.UpdateSettings(ctx, req.AccountID,
		map[string]any{"week_start_day": day}); err != nil {
		return nil, err
	}
	return ok("Weeks now start on %s%s.", strings.ToUpper(day[:1]), day[1:]), nil
}

func (m *SettingsModule) clearChatHistory(ctx context.Context, req Request) (*Result, error) {
	count, err := m.store.ChatMessageCount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return ok("There's no chat history to clear."), nil
	}
	if !req.Args.Bool("confirmed") {
		return confirm(map[string]any{"messageCount": count},
			"Delete all %d chat message(s)? This can't be undone.", count), nil
	}
	deleted, err := m.store.ClearChatHistory(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	return ok("Cleared %d chat message(s).", deleted), nil
}

func (m *SettingsModule) getUserSettings(ctx context.Context, req Request) (*Result, error) {
	s, err := m.store.Settings(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	return okData(map[string]any{
		"theme":                s.Theme,
		"notificationsEnabled": s.NotificationsEnabled,
		"filingStatus":         s.FilingStatus,
		"dependents":           s.Dependents,
		"deductions":           s.Deductions,
		"isSelfEmployed":       s.IsSelfEmployed,
		"currencyCode":         s.CurrencyCode,
		"showCents":            s.ShowCents,
		"dateFormat":           s.DateFormat,
		"weekStartDay":         s.WeekStartDay,
	}, "Here are your current settings."), nil
}
