package catalog

func goalOps() []Operation {
	setGoalParams := func() map[string]Param {
		return map[string]Param{
			"amount":      required(num("Target dollar amount")),
			"jobId":       str("Optional: scope the goal to one job"),
			"targetHours": num("Optional: target hours alongside the dollar amount"),
		}
	}
	return []Operation{
		{
			Name:        "set_daily_goal",
			Description: "Set or update the daily earnings goal.",
			Family:      FamilyGoal,
			Params:      setGoalParams(),
		},
		{
			Name:        "set_weekly_goal",
			Description: "Set or update the weekly earnings goal.",
			Family:      FamilyGoal,
			Params:      setGoalParams(),
		},
		{
			Name:        "set_monthly_goal",
			Description: "Set or update the monthly earnings goal.",
			Family:      FamilyGoal,
			Params:      setGoalParams(),
		},
		{
			Name:        "set_yearly_goal",
			Description: "Set or update the yearly earnings goal.",
			Family:      FamilyGoal,
			Params:      setGoalParams(),
		},
		{
			Name:        "edit_goal",
			Description: "Modify an existing goal.",
			Family:      FamilyGoal,
			Params: map[string]Param{
				"goalId":  required(str("Goal UUID")),
				"updates": required(object("Fields to update (amount, targetHours, jobId, type)")),
			},
		},
		{
			Name:        "delete_goal",
			Description: "Delete a goal. Confirm first.",
			Family:      FamilyGoal,
			Params: map[string]Param{
				"goalId":    required(str("Goal UUID")),
				"confirmed": confirmedParam(),
			},
			Confirm: true,
		},
		{
			Name:        "get_goals",
			Description: "List all goals with current progress.",
			Family:      FamilyGoal,
			Params:      map[string]Param{},
		},
		{
			Name:        "get_goal_progress",
			Description: "Get progress toward a specific goal.",
			Family:      FamilyGoal,
			Params: map[string]Param{
				"goalId": required(str("Goal UUID")),
			},
		},
	}
}
