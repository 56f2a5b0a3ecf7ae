// Package brief assembles the per-turn context block injected into the
// system prompt: the user's jobs, recent earnings, active goals, receivables,
// and display preferences. The sections are independent reads, so they are
// fetched concurrently.
package brief

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tipline/internal/store"
)

const isoDate = "2006-01-02"

// Builder assembles turn briefs from the store.
type Builder struct {
	store *store.Store
}

// New builds a brief builder.
func New(st *store.Store) *Builder {
	return &Builder{store: st}
}

// Build renders the context block for one turn, anchored to the caller's
// local date.
func (b *Builder) Build(ctx context.Context, accountID string, anchor time.Time) (string, error) {
	var (
		jobs     []store.Job
		recent   []store.Shift
		goals    []store.Goal
		settings *store.Settings
		owed     float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = b.store.Jobs(gctx, accountID, false)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = b.store.Shifts(gctx, accountID, store.ShiftFilter{
			StartDate: anchor.AddDate(0, 0, -6).Format(isoDate),
			EndDate:   anchor.Format(isoDate),
		})
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = b.store.Goals(gctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = b.store.Settings(gctx, accountID)
		return err
	})
	g.Go(func() error {
		invoices, err := b.store.Invoices(gctx, accountID, store.InvoiceFilter{})
		if err != nil {
			return err
		}
		for i := range invoices {
			if invoices[i].Status != "paid" {
				owed += invoices[i].Outstanding()
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to build brief: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Today is %s, %s.\n\n", anchor.Weekday(), anchor.Format(isoDate))

	writeJobs(&sb, jobs)
	writeRecent(&sb, recent)
	writeGoals(&sb, goals)
	if owed > 0 {
		fmt.Fprintf(&sb, "OUTSTANDING INVOICES: $%.2f owed to the user.\n\n", owed)
	}
	writePreferences(&sb, settings)

	return strings.TrimRight(sb.String(), "\n"), nil
}

func writeJobs(sb *strings.Builder, jobs []store.Job) {
	if len(jobs) == 0 {
		sb.WriteString("USER'S JOBS: none yet. Suggest creating one before logging shifts.\n\n")
		return
	}
	sb.WriteString("USER'S JOBS:\n")
	for _, j := range jobs {
		fmt.Fprintf(sb, "- %s (%s), id: %s", j.Name, j.Industry, j.ID)
		if j.HourlyRate > 0 {
			fmt.Fprintf(sb, ", $%.2f/hr", j.HourlyRate)
		}
		if j.IsDefault {
			sb.WriteString(" [DEFAULT]")
		}
		sb.WriteString("\n")
	}
	if len(jobs) == 1 {
		fmt.Fprintf(sb, "The user has only one job. AUTO-USE THIS JOB ID: %s\n", jobs[0].ID)
	}
	sb.WriteString("\n")
}

func writeRecent(sb *strings.Builder, shifts []store.Shift) {
	var total float64
	for i := range shifts {
		total += shifts[i].Total()
	}
	fmt.Fprintf(sb, "LAST 7 DAYS: %d shift(s), $%.2f earned.\n\n", len(shifts), total)
}

func writeGoals(sb *strings.Builder, goals []store.Goal) {
	if len(goals) == 0 {
		return
	}
	sb.WriteString("ACTIVE GOALS:\n")
	for _, g := range goals {
		fmt.Fprintf(sb, "- %s: $%.2f target (id: %s)\n", g.Type, g.TargetAmount, g.ID)
	}
	sb.WriteString("\n")
}

func writePreferences(sb *strings.Builder, s *store.Settings) {
	fmt.Fprintf(sb, "PREFERENCES: theme=%s, currency=%s, dates=%s, week starts %s.\n",
		s.Theme, s.CurrencyCode, s.DateFormat, s.WeekStartDay)
}
