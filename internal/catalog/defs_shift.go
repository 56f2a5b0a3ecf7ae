package catalog

func shiftOps() []Operation {
	return []Operation{
		{
			Name:        "add_shift",
			Description: "Create a new shift/work session. Use this when the user says they worked, made money, had tips, completed deliveries, performed a gig, etc.",
			Family:      FamilyShift,
			Params: map[string]Param{
				"jobId":                required(str("UUID of the job. If user has one job it is auto-selected. If multiple, ask which one.")),
				"date":                 required(str("Date in YYYY-MM-DD format. Natural expressions like 'today', 'yesterday', 'last Monday' are resolved.")),
				"cashTips":             num("Cash tips earned"),
				"creditTips":           num("Credit card tips"),
				"hourlyRate":           num("Hourly wage rate. Defaults to the job's rate."),
				"hoursWorked":          num("Hours worked (can be calculated from start/end time)"),
				"startTime":            str("Shift start time in HH:MM format"),
				"endTime":              str("Shift end time in HH:MM format"),
				"flatRate":             num("Flat rate payment for the shift"),
				"commission":           num("Commission earned"),
				"overtimeHours":        num("Overtime hours worked"),
				"salesAmount":          num("Total sales amount (for tip % calculation)"),
				"tipoutPercent":        num("Tipout percentage given to others"),
				"additionalTipout":     num("Extra tipout amount in dollars"),
				"additionalTipoutNote": str("Who received the tipout (e.g., 'Busser', 'Bar')"),
				"eventName":            str("Name of the event or party"),
				"eventCost":            num("Event cost/booking fee"),
				"hostess":              str("Hostess or event coordinator name"),
				"guestCount":           integer("Number of guests at the event"),
				"location":             str("Work location or venue name"),
				"clientName":           str("Client or customer name"),
				"projectName":          str("Project or booking name"),
				"mileage":              num("Miles driven for work"),
				"notes":                str("Additional notes about the shift"),
			},
			DateParams: []string{"date"},
			AutoJob:    true,
		},
		{
			Name:        "edit_shift",
			Description: "Modify an existing shift by date. Can update any field.",
			Family:      FamilyShift,
			Params: map[string]Param{
				"date":    required(str("Date of the shift to edit (YYYY-MM-DD or natural language)")),
				"updates": required(object("Fields to update (e.g., {cashTips: 60, notes: 'Busy night'})")),
			},
			DateParams: []string{"date"},
		},
		{
			Name:        "delete_shift",
			Description: "Remove a single shift. Always confirm before deleting.",
			Family:      FamilyShift,
			Params: map[string]Param{
				"date":      required(str("Date of shift to delete")),
				"confirmed": confirmedParam(),
			},
			DateParams: []string{"date"},
			Confirm:    true,
		},
		{
			Name: "bulk_edit_shifts",
			Description: "Edit multiple shifts at once by date range or job. First call with confirmed=false to get a preview of how many shifts are affected, " +
				"report it to the user, and only call again with confirmed=true after they approve.",
			Family: FamilyShift,
			Params: map[string]Param{
				"startDate": str("Start date for range (YYYY-MM-DD)"),
				"endDate":   str("End date for range (YYYY-MM-DD)"),
				"jobId":     str("Optional: only affect shifts for this job"),
				"jobName":   str("Optional: job name to filter by (matched against the user's jobs)"),
				"updates":   required(object("Fields to update on all matching shifts (cashTips, creditTips, hourlyRate, hoursWorked, startTime, endTime, notes, eventName, location, ...)")),
				"confirmed": confirmedParam(),
			},
			DateParams: []string{"startDate", "endDate"},
			Confirm:    true,
		},
		{
			Name:        "bulk_delete_shifts",
			Description: "Delete multiple shifts by date range or job. ALWAYS requires explicit confirmation; confirmed=false returns a preview with the affected count.",
			Family:      FamilyShift,
			Params: map[string]Param{
				"startDate": str("Start date for range (YYYY-MM-DD)"),
				"endDate":   str("End date for range (YYYY-MM-DD)"),
				"jobId":     str("Optional: only delete shifts for this job"),
				"confirmed": confirmedParam(),
			},
			DateParams: []string{"startDate", "endDate"},
			Confirm:    true,
		},
		{
			Name:        "search_shifts",
			Description: "Find shifts matching specific criteria.",
			Family:      FamilyShift,
			Params: map[string]Param{
				"startDate": str("From date (YYYY-MM-DD)"),
				"endDate":   str("To date (YYYY-MM-DD)"),
				"jobId":     str("Filter by job"),
				"eventName": str("Filter by event name"),
				"minAmount": num("Minimum total income"),
				"maxAmount": num("Maximum total income"),
				"limit":     integer("Maximum results (default 20)"),
			},
			DateParams: []string{"startDate", "endDate"},
		},
		{
			Name:        "get_shift_details",
			Description: "Get complete details of a specific shift.",
			Family:      FamilyShift,
			Params: map[string]Param{
				"date":  required(str("Date of shift")),
				"jobId": str("Optional: specify job if multiple shifts on the same date"),
			},
			DateParams: []string{"date"},
		},
		{
			Name:        "calculate_shift_total",
			Description: "Recalculate earnings totals for a shift.",
			Family:      FamilyShift,
			Params: map[string]Param{
				"date": required(str("Date of shift")),
			},
			DateParams: []string{"date"},
		},
		{
			Name:        "duplicate_shift",
			Description: "Copy a shift to another date.",
			Family:      FamilyShift,
			Params: map[string]Param{
				"sourceDate": required(str("Date of the shift to copy")),
				"targetDate": required(str("Date for the new shift")),
			},
			DateParams: []string{"sourceDate", "targetDate"},
		},
	}
}
