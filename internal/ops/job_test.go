package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipline/internal/store"
)

func TestDeleteJobWithShifts(t *testing.T) {
	s := newTestStore(t)
	m := NewJobModule(s)
	job := newTestJob(t, s, "Bartender", 12)
	ctx := context.Background()

	for _, date := range []string{"2026-01-05", "2026-01-06"} {
		sh := store.Shift{AccountID: testAccount, JobID: job.ID, Date: date, CashTips: 50}
		require.NoError(t, s.InsertShift(ctx, &sh))
	}

	preview, err := m.Execute(ctx, execReq("delete_job", Args{
		"jobId": job.ID, "deleteShifts": true,
	}))
	require.NoError(t, err)
	assert.True(t, preview.NeedsConfirmation)
	assert.False(t, preview.Success)
	assert.Equal(t, 2, preview.Data["shiftCount"])

	applied, err := m.Execute(ctx, execReq("delete_job", Args{
		"jobId": job.ID, "deleteShifts": true, "confirmed": true,
	}))
	require.NoError(t, err)
	require.True(t, applied.Success)
	assert.Contains(t, applied.Message, "2 shift(s)")

	_, err = s.JobByID(ctx, testAccount, job.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	shifts, err := s.Shifts(ctx, testAccount, store.ShiftFilter{})
	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestDeleteJobKeepsShiftsByDefault(t *testing.T) {
	s := newTestStore(t)
	m := NewJobModule(s)
	job := newTestJob(t, s, "Bartender", 12)
	ctx := context.Background()

	sh := store.Shift{AccountID: testAccount, JobID: job.ID, Date: "2026-01-05", CashTips: 50}
	require.NoError(t, s.InsertShift(ctx, &sh))

	applied, err := m.Execute(ctx, execReq("delete_job", Args{
		"jobId": job.ID, "confirmed": true,
	}))
	require.NoError(t, err)
	require.True(t, applied.Success)
	assert.Contains(t, applied.Message, "kept")

	shifts, err := s.Shifts(ctx, testAccount, store.ShiftFilter{})
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Empty(t, shifts[0].JobID)
}

func TestAddJobFirstBecomesDefault(t *testing.T) {
	s := newTestStore(t)
	m := NewJobModule(s)
	ctx := context.Background()

	res, err := m.Execute(ctx, execReq("add_job", Args{
		"name": "Bartender", "hourlyRate": 15.0,
	}))
	require.NoError(t, err)
	require.True(t, res.Success)

	jobs, err := s.Jobs(ctx, testAccount, false)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].IsDefault)

	// A duplicate name is rejected.
	res, err = m.Execute(ctx, execReq("add_job", Args{"name": "bartender"}))
	require.NoError(t, err)
	assert.False(t, res.Success)
}
