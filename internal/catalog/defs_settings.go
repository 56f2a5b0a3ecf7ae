package catalog

// ThemeNames is the fixed set of app themes.
var ThemeNames = []string{
	"cash_app", "midnight_blue", "purple_reign", "ocean_breeze", "sunset_glow",
	"neon_cash", "paypal_blue", "coinbase_pro", "cash_light", "light_blue",
	"purple_light", "sunset_light", "ocean_light", "pink_light", "slate_light",
	"mint_light", "lavender_light", "gold_light",
}

func settingsOps() []Operation {
	return []Operation{
		{
			Name:        "change_theme",
			Description: "Switch app theme/color scheme. Parse natural language: 'light' -> 'cash_light', 'dark' -> 'cash_app'.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"theme": required(enum(str("Theme name"), ThemeNames...)),
			},
		},
		{
			Name:        "get_available_themes",
			Description: "List all available themes.",
			Family:      FamilySettings,
			Params:      map[string]Param{},
		},
		{
			Name:        "toggle_notifications",
			Description: "Turn all notifications on or off.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"enabled": required(boolean("True to enable, false to disable")),
			},
		},
		{
			Name:        "set_shift_reminders",
			Description: "Configure shift reminder notifications.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"enabled":      required(boolean("Enable or disable shift reminders")),
				"reminderTime": enum(str("When to remind"), "morning", "evening", "both"),
			},
		},
		{
			Name:        "set_goal_reminders",
			Description: "Configure goal progress notifications.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"enabled":   required(boolean("Enable or disable goal reminders")),
				"frequency": enum(str("Notification frequency"), "daily", "weekly", "monthly"),
			},
		},
		{
			Name:        "set_quiet_hours",
			Description: "Set times when notifications are silenced.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"enabled":   required(boolean("Enable or disable quiet hours")),
				"startTime": str("HH:MM format"),
				"endTime":   str("HH:MM format"),
			},
		},
		{
			Name:        "get_notification_settings",
			Description: "Retrieve current notification preferences.",
			Family:      FamilySettings,
			Params:      map[string]Param{},
		},
		{
			Name:        "update_tax_settings",
			Description: "Modify tax estimation settings.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"filingStatus":   enum(str("Tax filing status"), "single", "married_joint", "married_separate", "head_of_household"),
				"dependents":     integer("Number of dependents"),
				"deductions":     num("Additional deductions in dollars"),
				"isSelfEmployed": boolean("Whether the user is self-employed"),
			},
		},
		{
			Name:        "set_currency_format",
			Description: "Change currency display.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"currencyCode": required(str("USD, EUR, GBP, etc.")),
				"showCents":    boolean("Display cents"),
			},
		},
		{
			Name:        "set_date_format",
			Description: "Change date display format.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"format": required(enum(str("Display format"), "MM/DD/YYYY", "DD/MM/YYYY", "YYYY-MM-DD")),
			},
		},
		{
			Name:        "set_week_start_day",
			Description: "Set which day starts the week.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"day": required(enum(str("First day of the week"), "sunday", "monday")),
			},
		},
		{
			Name:        "clear_chat_history",
			Description: "Delete all chat messages. Confirm first.",
			Family:      FamilySettings,
			Params: map[string]Param{
				"confirmed": confirmedParam(),
			},
			Confirm: true,
		},
		{
			Name:        "get_user_settings",
			Description: "Retrieve all current settings.",
			Family:      FamilySettings,
			Params:      map[string]Param{},
		},
	}
}
