package ops

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipline/internal/store"
)

const testAccount = "acct-1"

var testAnchor = time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "ops.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestJob(t *testing.T, s *store.Store, name string, rate float64) *store.Job {
	t.Helper()
	job := store.Job{AccountID: testAccount, Name: name, HourlyRate: rate, IsActive: true, IsDefault: true}
	require.NoError(t, s.InsertJob(context.Background(), &job))
	return &job
}

func execReq(name string, args Args) Request {
	return Request{AccountID: testAccount, Name: name, Args: args, Anchor: testAnchor}
}

func TestAddShiftComputesTotal(t *testing.T) {
	s := newTestStore(t)
	m := NewShiftModule(s)
	job := newTestJob(t, s, "Bartender", 12)

	res, err := m.Execute(context.Background(), execReq("add_shift", Args{
		"jobId":    job.ID,
		"date":     "2026-01-08",
		"cashTips": 150.0,
	}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 150.0, res.Data["total"])
	assert.Contains(t, res.Message, "$150.00")
}

// Hours without an explicit rate inherit the job's hourly wage.
func TestAddShiftBackfillsHourlyRate(t *testing.T) {
	s := newTestStore(t)
	m := NewShiftModule(s)
	job := newTestJob(t, s, "Bartender", 12)

	res, err := m.Execute(context.Background(), execReq("add_shift", Args{
		"jobId":       job.ID,
		"date":        "2026-01-08",
		"cashTips":    100.0,
		"hoursWorked": 5.0,
	}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 160.0, res.Data["total"]) // 100 tips + 5h * $12
}

func TestAddShiftRejectsBadValues(t *testing.T) {
	s := newTestStore(t)
	m := NewShiftModule(s)
	job := newTestJob(t, s, "Bartender", 12)

	res, err := m.Execute(context.Background(), execReq("add_shift", Args{
		"jobId":       job.ID,
		"date":        "2026-01-08",
		"hoursWorked": 30.0,
	}))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "hoursWorked")

	res, err = m.Execute(context.Background(), execReq("add_shift", Args{
		"jobId": job.ID,
		"date":  "not-a-date",
	}))
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestDeleteShiftConfirmationProtocol(t *testing.T) {
	s := newTestStore(t)
	m := NewShiftModule(s)
	job := newTestJob(t, s, "Bartender", 12)
	ctx := context.Background()

	_, err := m.Execute(ctx, execReq("add_shift", Args{
		"jobId": job.ID, "date": "2026-01-08", "cashTips": 150.0,
	}))
	require.NoError(t, err)

	// Omitted confirmed flag behaves exactly like confirmed=false.
	preview, err := m.Execute(ctx, execReq("delete_shift", Args{"date": "2026-01-08"}))
	require.NoError(t, err)
	assert.True(t, preview.NeedsConfirmation)
	assert.False(t, preview.Success, "a preview performs nothing, so it must not report success")

	// The preview must not have deleted anything.
	shifts, err := s.Shifts(ctx, testAccount, store.ShiftFilter{})
	require.NoError(t, err)
	require.Len(t, shifts, 1)

	applied, err := m.Execute(ctx, execReq("delete_shift", Args{"date": "2026-01-08", "confirmed": true}))
	require.NoError(t, err)
	assert.True(t, applied.Success)
	assert.False(t, applied.NeedsConfirmation)

	shifts, err = s.Shifts(ctx, testAccount, store.ShiftFilter{})
	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestBulkDeletePreviewMatchesApply(t *testing.T) {
	s := newTestStore(t)
	m := NewShiftModule(s)
	job := newTestJob(t, s, "Bartender", 12)
	ctx := context.Background()

	for _, date := range []string{"2026-01-05", "2026-01-06", "2026-01-07"} {
		_, err := m.Execute(ctx, execReq("add_shift", Args{
			"jobId": job.ID, "date": date, "cashTips": 50.0,
		}))
		require.NoError(t, err)
	}

	args := Args{"startDate": "2026-01-01", "endDate": "2026-01-31"}
	preview, err := m.Execute(ctx, execReq("bulk_delete_shifts", args))
	require.NoError(t, err)
	require.True(t, preview.NeedsConfirmation)
	assert.Equal(t, 3, preview.Data["affectedCount"])

	// Previewing again without confirming changes nothing and reports the
	// same count.
	again, err := m.Execute(ctx, execReq("bulk_delete_shifts", args))
	require.NoError(t, err)
	require.True(t, again.NeedsConfirmation)
	assert.Equal(t, preview.Data["affectedCount"], again.Data["affectedCount"])

	args["confirmed"] = true
	applied, err := m.Execute(ctx, execReq("bulk_delete_shifts", args))
	require.NoError(t, err)
	assert.False(t, applied.NeedsConfirmation)
	assert.Equal(t, int64(3), applied.Data["deletedCount"])
}

func TestBulkEditRequiresCriteria(t *testing.T) {
	s := newTestStore(t)
	m := NewShiftModule(s)

	res, err := m.Execute(context.Background(), execReq("bulk_edit_shifts", Args{
		"updates": map[string]any{"cashTips": 60.0},
	}))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "range or job")
}

func TestEditShiftRejectsUnknownField(t *testing.T) {
	s := newTestStore(t)
	m := NewShiftModule(s)
	job := newTestJob(t, s, "Bartender", 12)
	ctx := context.Background()

	_, err := m.Execute(ctx, execReq("add_shift", Args{
		"jobId": job.ID, "date": "2026-01-08",
	}))
	require.NoError(t, err)

	res, err := m.Execute(ctx, execReq("edit_shift", Args{
		"date":    "2026-01-08",
		"updates": map[string]any{"accountId": "evil"},
	}))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "unknown shift field")
}

func TestDuplicateShift(t *testing.T) {
	s := newTestStore(t)
	m := NewShiftModule(s)
	job := newTestJob(t, s, "Bartender", 12)
	ctx := context.Background()

	_, err := m.Execute(ctx, execReq("add_shift", Args{
		"jobId": job.ID, "date": "2026-01-03", "cashTips": 90.0, "eventName": "Smith Wedding",
	}))
	require.NoError(t, err)

	res, err := m.Execute(ctx, execReq("duplicate_shift", Args{
		"sourceDate": "2026-01-03", "targetDate": "2026-01-10",
	}))
	require.NoError(t, err)
	require.True(t, res.Success)

	copied, err := s.ShiftByDate(ctx, testAccount, "2026-01-10", "")
	require.NoError(t, err)
	assert.Equal(t, 90.0, copied.CashTips)
	assert.Equal(t, "Smith Wedding", copied.EventName)
}

func TestSearchShiftsAmountFilter(t *testing.T) {
	s := newTestStore(t)
	m := NewShiftModule(s)
	job := newTestJob(t, s, "Bartender", 12)
	ctx := context.Background()

	for date, tips := range map[string]float64{"2026-01-05": 40, "2026-01-06": 120, "2026-01-07": 300} {
		_, err := m.Execute(ctx, execReq("add_shift", Args{
			"jobId": job.ID, "date": date, "cashTips": tips,
		}))
		require.NoError(t, err)
	}

	res, err := m.Execute(ctx, execReq("search_shifts", Args{"minAmount": 100.0}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.Data["count"])
	assert.Equal(t, 420.0, res.Data["totalIncome"])
}
