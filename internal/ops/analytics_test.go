package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedShifts(t *testing.T, m *ShiftModule, jobID string, byDate map[string]float64) {
	t.Helper()
	for date, tips := range byDate {
		_, err := m.Execute(context.Background(), execReq("add_shift", Args{
			"jobId": jobID, "date": date, "cashTips": tips,
		}))
		require.NoError(t, err)
	}
}

func TestIncomeSummaryCustomPeriod(t *testing.T) {
	s := newTestStore(t)
	shiftMod := NewShiftModule(s)
	m := NewAnalyticsModule(s)
	job := newTestJob(t, s, "Bartender", 0)

	seedShifts(t, shiftMod, job.ID, map[string]float64{
		"2026-01-05": 100,
		"2026-01-06": 200,
		"2025-12-20": 999,
	})

	res, err := m.Execute(context.Background(), execReq("get_income_summary", Args{
		"period": "custom", "startDate": "2026-01-01", "endDate": "2026-01-31",
	}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 300.0, res.Data["totalIncome"])
	assert.Equal(t, 2, res.Data["shiftCount"])
}

func TestIncomeSummaryCustomRequiresDates(t *testing.T) {
	s := newTestStore(t)
	m := NewAnalyticsModule(s)

	res, err := m.Execute(context.Background(), execReq("get_income_summary", Args{"period": "custom"}))
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestComparePeriods(t *testing.T) {
	s := newTestStore(t)
	shiftMod := NewShiftModule(s)
	m := NewAnalyticsModule(s)
	job := newTestJob(t, s, "Bartender", 0)

	seedShifts(t, shiftMod, job.ID, map[string]float64{
		"2026-01-05": 300,
		"2025-12-05": 200,
	})

	res, err := m.Execute(context.Background(), execReq("compare_periods", Args{
		"period1Start": "2026-01-01", "period1End": "2026-01-31",
		"period2Start": "2025-12-01", "period2End": "2025-12-31",
	}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 100.0, res.Data["difference"])
	assert.Equal(t, 50.0, res.Data["percentChange"])
}

func TestBestDaysRanking(t *testing.T) {
	s := newTestStore(t)
	shiftMod := NewShiftModule(s)
	m := NewAnalyticsModule(s)
	job := newTestJob(t, s, "Bartender", 0)

	// Fridays pay better than Mondays in this fixture.
	seedShifts(t, shiftMod, job.ID, map[string]float64{
		"2026-01-02": 300, // Friday
		"2026-01-09": 280, // Friday
		"2026-01-05": 80,  // Monday
	})

	res, err := m.Execute(context.Background(), execReq("get_best_days", Args{"limit": 1.0}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Contains(t, res.Message, "Friday")

	res, err = m.Execute(context.Background(), execReq("get_worst_days", Args{"limit": 1.0}))
	require.NoError(t, err)
	assert.Contains(t, res.Message, "Monday")
}

func TestTaxEstimate(t *testing.T) {
	s := newTestStore(t)
	shiftMod := NewShiftModule(s)
	m := NewAnalyticsModule(s)
	job := newTestJob(t, s, "Bartender", 0)

	seedShifts(t, shiftMod, job.ID, map[string]float64{"2026-03-01": 10000})

	res, err := m.Execute(context.Background(), execReq("get_tax_estimate", Args{}))
	require.NoError(t, err)
	require.True(t, res.Success)

	// 10% bracket on 10k plus SE tax of 10000 * 0.9235 * 0.153.
	assert.InDelta(t, 1000.0, res.Data["incomeTax"].(float64), 0.01)
	assert.InDelta(t, 1412.96, res.Data["selfEmploymentTax"].(float64), 0.01)
	assert.Contains(t, res.Message, "not tax advice")
}

func TestEventEarnings(t *testing.T) {
	s := newTestStore(t)
	shiftMod := NewShiftModule(s)
	m := NewAnalyticsModule(s)
	job := newTestJob(t, s, "Bartender", 0)
	ctx := context.Background()

	for _, args := range []Args{
		{"jobId": job.ID, "date": "2026-01-03", "flatRate": 500.0, "eventName": "Smith Wedding"},
		{"jobId": job.ID, "date": "2026-01-04", "cashTips": 150.0, "eventName": "Smith Wedding"},
		{"jobId": job.ID, "date": "2026-01-05", "cashTips": 999.0},
	} {
		_, err := shiftMod.Execute(ctx, execReq("add_shift", args))
		require.NoError(t, err)
	}

	res, err := m.Execute(ctx, execReq("get_event_earnings", Args{"eventName": "Smith Wedding"}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 650.0, res.Data["total"])

	res, err = m.Execute(ctx, execReq("get_event_earnings", Args{"eventName": "Nope Gala"}))
	require.NoError(t, err)
	assert.False(t, res.Success)
}
