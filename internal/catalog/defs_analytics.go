package catalog

func analyticsOps() []Operation {
	return []Operation{
		{
			Name:        "get_income_summary",
			Description: "Get total income for a time period.",
			Family:      FamilyAnalytics,
			Params: map[string]Param{
				"period":    required(enum(str("Time period"), "today", "week", "month", "year", "all_time", "custom")),
				"startDate": str("Required if period=custom: from date (YYYY-MM-DD)"),
				"endDate":   str("Required if period=custom: to date (YYYY-MM-DD)"),
				"jobId":     str("Optional: filter by job"),
			},
			DateParams: []string{"startDate", "endDate"},
		},
		{
			Name:        "compare_periods",
			Description: "Compare income across two date ranges.",
			Family:      FamilyAnalytics,
			Params: map[string]Param{
				"period1Start": required(str("First range start (YYYY-MM-DD)")),
				"period1End":   required(str("First range end (YYYY-MM-DD)")),
				"period2Start": required(str("Second range start (YYYY-MM-DD)")),
				"period2End":   required(str("Second range end (YYYY-MM-DD)")),
			},
			DateParams: []string{"period1Start", "period1End", "period2Start", "period2End"},
		},
		{
			Name:        "get_best_days",
			Description: "Find the highest-earning days of the week.",
			Family:      FamilyAnalytics,
			Params: map[string]Param{
				"limit": integer("Number of days to return (default 5)"),
				"jobId": str("Optional: filter by job"),
			},
		},
		{
			Name:        "get_worst_days",
			Description: "Find the lowest-earning days of the week.",
			Family:      FamilyAnalytics,
			Params: map[string]Param{
				"limit": integer("Number of days to return (default 5)"),
				"jobId": str("Optional: filter by job"),
			},
		},
		{
			Name:        "get_tax_estimate",
			Description: "Calculate a simplified federal tax estimate for the year.",
			Family:      FamilyAnalytics,
			Params: map[string]Param{
				"year": integer("Tax year (default current year)"),
			},
		},
		{
			Name:        "get_projected_year_end",
			Description: "Project year-end income based on the current pace.",
			Family:      FamilyAnalytics,
			Params: map[string]Param{
				"year": integer("Year to project (default current year)"),
			},
		},
		{
			Name:        "get_year_over_year",
			Description: "Compare this year's income to last year's.",
			Family:      FamilyAnalytics,
			Params:      map[string]Param{},
		},
		{
			Name:        "get_event_earnings",
			Description: "Total earnings from a specific event or party.",
			Family:      FamilyAnalytics,
			Params: map[string]Param{
				"eventName": required(str("Event name to match")),
			},
		},
	}
}
