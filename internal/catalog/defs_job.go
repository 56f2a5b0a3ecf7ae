package catalog

func jobOps() []Operation {
	return []Operation{
		{
			Name:        "add_job",
			Description: "Create a new job. Infer industry from the job title (bartender -> Food Service, barber -> Beauty, etc.).",
			Family:      FamilyJob,
			Params: map[string]Param{
				"name":       required(str("Job title (e.g., 'Bartender', 'Server', 'Barber')")),
				"industry":   enum(str("Industry category, auto-detected from name if not provided"), "Food Service", "Beauty & Personal Care", "Events", "Hospitality", "Rideshare", "Delivery", "Other Services"),
				"hourlyRate": num("Hourly wage in dollars"),
				"color":      str("Hex color code"),
				"isDefault":  boolean("Set as default job for new shifts"),
			},
		},
		{
			Name:        "edit_job",
			Description: "Modify job details.",
			Family:      FamilyJob,
			Params: map[string]Param{
				"jobId":   required(str("Job UUID")),
				"updates": required(object("Fields to update (name, industry, hourlyRate, color)")),
			},
		},
		{
			Name:        "delete_job",
			Description: "Remove a job. Ask the user whether associated shifts should be deleted too.",
			Family:      FamilyJob,
			Params: map[string]Param{
				"jobId":        required(str("Job UUID")),
				"deleteShifts": boolean("If true, delete all shifts for this job as well"),
				"confirmed":    confirmedParam(),
			},
			Confirm: true,
		},
		{
			Name:        "set_default_job",
			Description: "Mark a job as the default for new shifts.",
			Family:      FamilyJob,
			Params: map[string]Param{
				"jobId": required(str("Job UUID")),
			},
		},
		{
			Name:        "end_job",
			Description: "Mark a job as inactive/ended but keep all its data.",
			Family:      FamilyJob,
			Params: map[string]Param{
				"jobId":   required(str("Job UUID")),
				"endDate": str("When the job ended (default today)"),
			},
			DateParams: []string{"endDate"},
		},
		{
			Name:        "restore_job",
			Description: "Reactivate an ended job.",
			Family:      FamilyJob,
			Params: map[string]Param{
				"jobId": required(str("Job UUID")),
			},
		},
		{
			Name:        "get_jobs",
			Description: "List the user's jobs.",
			Family:      FamilyJob,
			Params: map[string]Param{
				"includeEnded": boolean("Include inactive jobs"),
			},
		},
		{
			Name:        "get_job_stats",
			Description: "Get detailed earnings statistics for a specific job.",
			Family:      FamilyJob,
			Params: map[string]Param{
				"jobId":  required(str("Job UUID")),
				"period": enum(str("Time period for stats"), "week", "month", "year", "all_time"),
			},
		},
		{
			Name:        "compare_jobs",
			Description: "Compare earnings across all jobs.",
			Family:      FamilyJob,
			Params: map[string]Param{
				"period": enum(str("Time period for the comparison"), "week", "month", "year", "all_time"),
			},
		},
		{
			Name:        "set_job_hourly_rate",
			Description: "Update a job's hourly wage.",
			Family:      FamilyJob,
			Params: map[string]Param{
				"jobId":      required(str("Job UUID")),
				"hourlyRate": required(num("New hourly rate in dollars")),
			},
		},
	}
}
