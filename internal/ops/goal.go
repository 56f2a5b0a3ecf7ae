package ops

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tipline/internal/store"
)

var goalColumnsByArg = map[string]string{
	"amount":      "target_amount",
	"targetHours": "target_hours",
	"jobId":       "job_id",
	"type":        "type",
}

var goalTypes = map[string]bool{
	"daily": true, "weekly": true, "monthly": true, "yearly": true,
}

// GoalModule owns the goal family operations.
type GoalModule struct {
	store *store.Store
}

// NewGoalModule builds the goal module.
func NewGoalModule(st *store.Store) *GoalModule {
	return &GoalModule{store: st}
}

// Execute runs one goal operation.
func (m *GoalModule) Execute(ctx context.Context, req Request) (*Result, error) {
	switch req.Name {
	case "set_daily_goal":
		return m.setGoal(ctx, req, "daily")
	case "set_weekly_goal":
		return m.setGoal(ctx, req, "weekly")
	case "set_monthly_goal":
		return m.setGoal(ctx, req, "monthly")
	case "set_yearly_goal":
		return m.setGoal(ctx, req, "yearly")
	case "edit_goal":
		return m.editGoal(ctx, req)
	case "delete_goal":
		return m.deleteGoal(ctx, req)
	case "get_goals":
		return m.getGoals(ctx, req)
	case "get_goal_progress":
		return m.getGoalProgress(ctx, req)
	default:
		return nil, fmt.Errorf("goal module: unknown operation %q", req.Name)
	}
}

func (m *GoalModule) setGoal(ctx context.Context, req Request, goalType string) (*Result, error) {
	amount, hasAmount := req.Args.Num("amount")
	if !hasAmount || amount <= 0 {
		return fail("amount must be a positive number"), nil
	}

	goal := store.Goal{
		AccountID:    req.AccountID,
		Type:         goalType,
		TargetAmount: amount,
		TargetHours:  req.Args.NumOr("targetHours", 0),
		JobID:        req.Args.Str("jobId"),
	}
	replaced, err := m.store.UpsertGoal(ctx, &goal)
	if err != nil {
		return nil, err
	}

	verb := "Set"
	if replaced {
		verb = "Updated"
	}
	return okData(map[string]any{
		"goalId": goal.ID,
		"type":   goalType,
		"amount": round2(amount),
	}, "%s your %s goal to %s.", verb, goalType, money(amount)), nil
}

func (m *GoalModule) editGoal(ctx context.Context, req Request) (*Result, error) {
	goalID := req.Args.Str("goalId")
	updates := req.Args.Object("updates")
	if goalID == "" {
		return fail("goalId is required"), nil
	}
	if len(updates) == 0 {
		return fail("updates object is required"), nil
	}

	columns := make(map[string]any, len(updates))
	for arg := range updates {
		col, known := goalColumnsByArg[arg]
		if !known {
			return fail("unknown goal field %q", arg), nil
		}
		switch arg {
		case "amount", "targetHours":
			v, okNum := updates.Num(arg)
			if !okNum || v < 0 {
				return fail("%s must be a non-negative number", arg), nil
			}
			columns[col] = v
		case "type":
			v := updates.Str(arg)
			if !goalTypes[v] {
				return fail("goal type must be daily, weekly, monthly, or yearly"), nil
			}
			columns[col] = v
		default:
			columns[col] = updates.Str(arg)
		}
	}

	err := m.store.UpdateGoal(ctx, req.AccountID, goalID, columns)
	if errors.Is(err, store.ErrNotFound) {
		return fail("goal %s not found", goalID), nil
	}
	if err != nil {
		return nil, err
	}
	return ok("Updated the goal."), nil
}

func (m *GoalModule) deleteGoal(ctx context.Context, req Request) (*Result, error) {
	goalID := req.Args.Str("goalId")
	if goalID == "" {
		return fail("goalId is required"), nil
	}
	goal, err := m.store.GoalByID(ctx, req.AccountID, goalID)
	if errors.Is(err, store.ErrNotFound) {
		return fail("goal %s not found", goalID), nil
	}
	if err != nil {
		return nil, err
	}

	if !req.Args.Bool("confirmed") {
		return confirm(map[string]any{
			"goalId": goal.ID,
			"type":   goal.Type,
			"amount": round2(goal.TargetAmount),
		}, "Delete your %s goal of %s?", goal.Type, money(goal.TargetAmount)), nil
	}

	if err := m.store.DeleteGoal(ctx, req.AccountID, goalID); err != nil {
		return nil, err
	}
	return ok("Deleted your %s goal.", goal.Type), nil
}

func (m *GoalModule) getGoals(ctx context.Context, req Request) (*Result, error) {
	goals, err := m.store.Goals(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return ok("You don't have any goals set yet."), nil
	}

	var list []map[string]any
	for i := range goals {
		entry, err := m.goalProgress(ctx, req.AccountID, &goals[i], req.Anchor)
		if err != nil {
			return nil, err
		}
		list = append(list, entry)
	}
	return okData(map[string]any{"goals": list, "count": len(list)},
		"You have %d active goal(s).", len(list)), nil
}

func (m *GoalModule) getGoalProgress(ctx context.Context, req Request) (*Result, error) {
	goalID := req.Args.Str("goalId")
	if goalID == "" {
		return fail("goalId is required"), nil
	}
	goal, err := m.store.GoalByID(ctx, req.AccountID, goalID)
	if errors.Is(err, store.ErrNotFound) {
		return fail("goal %s not found", goalID), nil
	}
	if err != nil {
		return nil, err
	}

	entry, err := m.goalProgress(ctx, req.AccountID, goal, req.Anchor)
	if err != nil {
		return nil, err
	}
	return okData(entry, "You're at %s of your %s %s goal (%.0f%%).",
		money(entry["earned"].(float64)), money(goal.TargetAmount), goal.Type,
		entry["percent"].(float64)), nil
}

// goalProgress computes earnings inside the goal's current period window.
func (m *GoalModule) goalProgress(ctx context.Context, accountID string, goal *store.Goal, anchor time.Time) (map[string]any, error) {
	start, end := goalPeriodRange(goal.Type, anchor)
	shifts, err := m.store.Shifts(ctx, accountID, store.ShiftFilter{
		JobID: goal.JobID, StartDate: start, EndDate: end,
	})
	if err != nil {
		return nil, err
	}

	var earned, hours float64
	for i := range shifts {
		earned += shifts[i].Total()
		hours += shifts[i].HoursWorked
	}
	percent := 0.0
	if goal.TargetAmount > 0 {
		percent = round2(earned / goal.TargetAmount * 100)
	}

	entry := map[string]any{
		"goalId":      goal.ID,
		"type":        goal.Type,
		"amount":      round2(goal.TargetAmount),
		"earned":      round2(earned),
		"remaining":   round2(max(goal.TargetAmount-earned, 0)),
		"percent":     percent,
		"periodStart": start,
		"periodEnd":   end,
	}
	if goal.TargetHours > 0 {
		entry["targetHours"] = goal.TargetHours
		entry["hoursWorked"] = round2(hours)
	}
	if goal.JobID != "" {
		entry["jobId"] = goal.JobID
	}
	return entry, nil
}

// goalPeriodRange is the goal's current calendar window: today, the week
// starting Sunday, the month, or the year, each ending at the anchor.
func goalPeriodRange(goalType string, anchor time.Time) (start, end string) {
	end = anchor.Format(isoDate)
	switch goalType {
	case "daily":
		return end, end
	case "weekly":
		return anchor.AddDate(0, 0, -int(anchor.Weekday())).Format(isoDate), end
	case "monthly":
		return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location()).Format(isoDate), end
	case "yearly":
		return time.Date(anchor.Year(), 1, 1, 0, 0, 0, 0, anchor.Location()).Format(isoDate), end
	default:
		return "", ""
	}
}
