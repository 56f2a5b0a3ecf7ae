package brief

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
	s, err := store.Open(filepath.Join(t.TempDir(), "brief.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBuildEmptyAccount(t *testing.T) {
	b := New(newTestStore(t))

	text, err := b.Build(context.Background(), testAccount, testAnchor)
	require.NoError(t, err)

	assert.Contains(t, text, "Today is Friday, 2026-01-09.")
	assert.Contains(t, text, "none yet")
	assert.Contains(t, text, "LAST 7 DAYS: 0 shift(s), $0.00 earned.")
	assert.Contains(t, text, "theme=cash_app")
	assert.NotContains(t, text, "ACTIVE GOALS")
	assert.NotContains(t, text, "OUTSTANDING INVOICES")
}

func TestBuildSingleJobCarriesAutoUseHint(t *testing.T) {
	s := newTestStore(t)
	b := New(s)
	ctx := context.Background()

	job := store.Job{AccountID: testAccount, Name: "Bartender", Industry: "Food Service", HourlyRate: 12, IsActive: true, IsDefault: true}
	require.NoError(t, s.InsertJob(ctx, &job))

	text, err := b.Build(ctx, testAccount, testAnchor)
	require.NoError(t, err)
	assert.Contains(t, text, "AUTO-USE THIS JOB ID: "+job.ID)
	assert.Contains(t, text, "[DEFAULT]")
}

func TestBuildMultipleJobsNoAutoUseHint(t *testing.T) {
	s := newTestStore(t)
	b := New(s)
	ctx := context.Background()

	for _, name := range []string{"Bartender", "Barber"} {
		job := store.Job{AccountID: testAccount, Name: name, IsActive: true}
		require.NoError(t, s.InsertJob(ctx, &job))
	}

	text, err := b.Build(ctx, testAccount, testAnchor)
	require.NoError(t, err)
	assert.NotContains(t, text, "AUTO-USE THIS JOB ID")
	assert.Contains(t, text, "Bartender")
	assert.Contains(t, text, "Barber")
}

func TestBuildRecentEarningsGoalsAndReceivables(t *testing.T) {
	s := newTestStore(t)
	b := New(s)
	ctx := context.Background()

	job := store.Job{AccountID: testAccount, Name: "Bartender", IsActive: true}
	require.NoError(t, s.InsertJob(ctx, &job))

	// One shift inside the 7-day window, one outside.
	in := store.Shift{AccountID: testAccount, JobID: job.ID, Date: "2026-01-07", CashTips: 120}
	out := store.Shift{AccountID: testAccount, JobID: job.ID, Date: "2025-12-20", CashTips: 999}
	require.NoError(t, s.InsertShift(ctx, &in))
	require.NoError(t, s.InsertShift(ctx, &out))

	goal := store.Goal{AccountID: testAccount, Type: "weekly", TargetAmount: 500}
	_, err := s.UpsertGoal(ctx, &goal)
	require.NoError(t, err)

	inv := store.Invoice{AccountID: testAccount, ClientName: "Acme", TotalAmount: 800, Status: "sent"}
	require.NoError(t, s.InsertInvoice(ctx, &inv))

	text, err := b.Build(ctx, testAccount, testAnchor)
	require.NoError(t, err)
	assert.Contains(t, text, "LAST 7 DAYS: 1 shift(s), $120.00 earned.")
	assert.Contains(t, text, "weekly: $500.00 target")
	assert.Contains(t, text, "OUTSTANDING INVOICES: $800.00 owed")
}
