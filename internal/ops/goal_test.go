package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGoalUpserts(t *testing.T) {
	s := newTestStore(t)
	m := NewGoalModule(s)
	ctx := context.Background()

	res, err := m.Execute(ctx, execReq("set_weekly_goal", Args{"amount": 500.0}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Contains(t, res.Message, "Set your weekly goal")

	res, err = m.Execute(ctx, execReq("set_weekly_goal", Args{"amount": 800.0}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Contains(t, res.Message, "Updated your weekly goal")

	goals, err := s.Goals(ctx, testAccount)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 800.0, goals[0].TargetAmount)
}

func TestSetGoalRejectsNonPositiveAmount(t *testing.T) {
	s := newTestStore(t)
	m := NewGoalModule(s)

	res, err := m.Execute(context.Background(), execReq("set_daily_goal", Args{"amount": -5.0}))
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestGoalProgressCountsPeriodEarnings(t *testing.T) {
	s := newTestStore(t)
	goalMod := NewGoalModule(s)
	shiftMod := NewShiftModule(s)
	job := newTestJob(t, s, "Bartender", 0)
	ctx := context.Background()

	res, err := goalMod.Execute(ctx, execReq("set_weekly_goal", Args{"amount": 500.0}))
	require.NoError(t, err)
	goalID := res.Data["goalId"].(string)

	// Anchor 2026-01-09 is a Friday; the weekly window starts Sunday the 4th.
	for date, tips := range map[string]float64{
		"2026-01-05": 100, // inside the window
		"2026-01-08": 150, // inside the window
		"2026-01-02": 999, // previous week, excluded
	} {
		_, err := shiftMod.Execute(ctx, execReq("add_shift", Args{
			"jobId": job.ID, "date": date, "cashTips": tips,
		}))
		require.NoError(t, err)
	}

	res, err = goalMod.Execute(ctx, execReq("get_goal_progress", Args{"goalId": goalID}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 250.0, res.Data["earned"])
	assert.Equal(t, 250.0, res.Data["remaining"])
	assert.Equal(t, 50.0, res.Data["percent"])
}

func TestDeleteGoalConfirmationProtocol(t *testing.T) {
	s := newTestStore(t)
	m := NewGoalModule(s)
	ctx := context.Background()

	res, err := m.Execute(ctx, execReq("set_monthly_goal", Args{"amount": 2000.0}))
	require.NoError(t, err)
	goalID := res.Data["goalId"].(string)

	preview, err := m.Execute(ctx, execReq("delete_goal", Args{"goalId": goalID}))
	require.NoError(t, err)
	assert.True(t, preview.NeedsConfirmation)

	goals, err := s.Goals(ctx, testAccount)
	require.NoError(t, err)
	require.Len(t, goals, 1)

	applied, err := m.Execute(ctx, execReq("delete_goal", Args{"goalId": goalID, "confirmed": true}))
	require.NoError(t, err)
	assert.True(t, applied.Success)

	goals, err = s.Goals(ctx, testAccount)
	require.NoError(t, err)
	assert.Empty(t, goals)
}
