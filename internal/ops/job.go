package ops

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"tipline/internal/store"
)

var jobColumnsByArg = map[string]string{
	"name":       "name",
	"industry":   "industry",
	"hourlyRate": "hourly_rate",
	"color":      "color",
}

// JobModule owns the job family operations.
type JobModule struct {
	store *store.Store
}

// NewJobModule builds the job module.
func NewJobModule(st *store.Store) *JobModule {
	return &JobModule{store: st}
}

// Execute runs one job operation.
func (m *JobModule) Execute(ctx context.Context, req Request) (*Result, error) {
	switch req.Name {
	case "add_job":
		return m.addJob(ctx, req)
	case "edit_job":
		return m.editJob(ctx, req)
	case "delete_job":
		return m.deleteJob(ctx, req)
	case "set_default_job":
		return m.setDefaultJob(ctx, req)
	case "end_job":
		return m.endJob(ctx, req)
	case "restore_job":
		return m.restoreJob(ctx, req)
	case "get_jobs":
		return m.getJobs(ctx, req)
	case "get_job_stats":
		return m.getJobStats(ctx, req)
	case "compare_jobs":
		return m.compareJobs(ctx, req)
	case "set_job_hourly_rate":
		return m.setJobHourlyRate(ctx, req)
	default:
		return nil, fmt.Errorf("job module: unknown operation %q", req.Name)
	}
}

func (m *JobModule) addJob(ctx context.Context, req Request) (*Result, error) {
	name := strings.TrimSpace(req.Args.Str("name"))
	if name == "" {
		return fail("job name is required"), nil
	}

	industry := req.Args.Str("industry")
	if industry == "" {
		industry = detectIndustry(name)
	}

	existing, err := m.store.Jobs(ctx, req.AccountID, false)
	if err != nil {
		return nil, err
	}
	for _, j := range existing {
		if strings.EqualFold(j.Name, name) {
			return fail("you already have a job named %q", j.Name), nil
		}
	}

	job := store.Job{
		AccountID:  req.AccountID,
		Name:       name,
		Industry:   industry,
		HourlyRate: req.Args.NumOr("hourlyRate", 0),
		Color:      req.Args.Str("color"),
		IsActive:   true,
		// First job becomes the default automatically.
		IsDefault: len(existing) == 0 || req.Args.Bool("isDefault"),
	}
	if err := m.store.InsertJob(ctx, &job); err != nil {
		return nil, err
	}
	if job.IsDefault && len(existing) > 0 {
		if err := m.store.SetDefaultJob(ctx, req.AccountID, job.ID); err != nil {
			return nil, err
		}
	}
	return okData(map[string]any{
		"jobId":    job.ID,
		"name":     job.Name,
		"industry": job.Industry,
	}, "Added job %q in %s.", job.Name, job.Industry), nil
}

func (m *JobModule) editJob(ctx context.Context, req Request) (*Result, error) {
	jobID := req.Args.Str("jobId")
	updates := req.Args.Object("updates")
	if jobID == "" {
		return fail("jobId is required"), nil
	}
	if len(updates) == 0 {
		return fail("updates object is required"), nil
	}

	columns := make(map[string]any, len(updates))
	for arg := range updates {
		col, known := jobColumnsByArg[arg]
		if !known {
			return fail("unknown job field %q", arg), nil
		}
		if arg == "hourlyRate" {
			v, okNum := updates.Num(arg)
			if !okNum || v < 0 || v > maxDollarAmount {
				return fail("hourlyRate must be between 0 and %d", maxDollarAmount), nil
			}
			columns[col] = v
		} else {
			columns[col] = updates.Str(arg)
		}
	}

	err := m.store.UpdateJob(ctx, req.AccountID, jobID, columns)
	if errors.Is(err, store.ErrNotFound) {
		return fail("job %s not found", jobID), nil
	}
	if err != nil {
		return nil, err
	}
	return ok("Updated the job."), nil
}

func (m *JobModule) deleteJob(ctx context.Context, req Request) (*Result, error) {
	jobID := req.Args.Str("jobId")
	if jobID == "" {
		return fail("jobId is required"), nil
	}
	job, err := m.store.JobByID(ctx, req.AccountID, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return fail("job %s not found", jobID), nil
	}
	if err != nil {
		return nil, err
	}

	deleteShifts := req.Args.Bool("deleteShifts")
	shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{JobID: jobID})
	if err != nil {
		return nil, err
	}

	if !req.Args.Bool("confirmed") {
		action := "keep its shift history"
		if deleteShifts {
			action = fmt.Sprintf("also delete its %d shift(s)", len(shifts))
		}
		return confirm(map[string]any{
			"jobId":      job.ID,
			"name":       job.Name,
			"shiftCount": len(shifts),
		}, "Delete job %q and %s? This can't be undone.", job.Name, action), nil
	}

	affected, err := m.store.DeleteJob(ctx, req.AccountID, jobID, deleteShifts)
	if err != nil {
		return nil, err
	}
	if deleteShifts {
		return ok("Deleted job %q and %d shift(s).", job.Name, affected), nil
	}
	return ok("Deleted job %q; its shifts were kept.", job.Name), nil
}

func (m *JobModule) setDefaultJob(ctx context.Context, req Request) (*Result, error) {
	jobID := req.Args.Str("jobId")
	if jobID == "" {
		return fail("jobId is required"), nil
	}
	err := m.store.SetDefaultJob(ctx, req.AccountID, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return fail("job %s not found", jobID), nil
	}
	if err != nil {
		return nil, err
	}
	return ok("Set that job as your default."), nil
}

func (m *JobModule) endJob(ctx context.Context, req Request) (*Result, error) {
	jobID := req.Args.Str("jobId")
	if jobID == "" {
		return fail("jobId is required"), nil
	}
	endDate := req.Args.Str("endDate")
	if endDate == "" {
		endDate = req.Anchor.Format("2006-01-02")
	}
	if !validISODate(endDate) {
		return fail("invalid endDate %q, expected YYYY-MM-DD", endDate), nil
	}
	err := m.store.UpdateJob(ctx, req.AccountID, jobID, map[string]any{
		"is_active": false,
		"end_date":  endDate,
	})
	if errors.Is(err, store.ErrNotFound) {
		return fail("job %s not found", jobID), nil
	}
	if err != nil {
		return nil, err
	}
	return ok("Marked the job as ended on %s. All its data is kept.", endDate), nil
}

func (m *JobModule) restoreJob(ctx context.Context, req Request) (*Result, error) {
	jobID := req.Args.Str("jobId")
	if jobID == "" {
		return fail("jobId is required"), nil
	}
	err := m.store.UpdateJob(ctx, req.AccountID, jobID, map[string]any{
		"is_active": true,
		"end_date":  "",
	})
	if errors.Is(err, store.ErrNotFound) {
		return fail("job %s not found", jobID), nil
	}
	if err != nil {
		return nil, err
	}
	return ok("Restored the job to active."), nil
}

func (m *JobModule) getJobs(ctx context.Context, req Request) (*Result, error) {
	jobs, err := m.store.Jobs(ctx, req.AccountID, req.Args.Bool("includeEnded"))
	if err != nil {
		return nil, err
	}
	list := make([]map[string]any, 0, len(jobs))
	for _, j := range jobs {
		entry := map[string]any{
			"jobId":      j.ID,
			"name":       j.Name,
			"industry":   j.Industry,
			"hourlyRate": j.HourlyRate,
			"isDefault":  j.IsDefault,
			"isActive":   j.IsActive,
		}
		if j.EndDate != "" {
			entry["endDate"] = j.EndDate
		}
		list = append(list, entry)
	}
	return okData(map[string]any{"jobs": list, "count": len(list)},
		"You have %d job(s).", len(list)), nil
}

func (m *JobModule) getJobStats(ctx context.Context, req Request) (*Result, error) {
	jobID := req.Args.Str("jobId")
	if jobID == "" {
		return fail("jobId is required"), nil
	}
	job, err := m.store.JobByID(ctx, req.AccountID, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return fail("job %s not found", jobID), nil
	}
	if err != nil {
		return nil, err
	}

	start, end := periodRange(req.Args.Str("period"), req.Anchor)
	shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{
		JobID: jobID, StartDate: start, EndDate: end,
	})
	if err != nil {
		return nil, err
	}

	stats := summarizeShifts(shifts)
	stats["jobId"] = job.ID
	stats["jobName"] = job.Name
	return okData(stats, "%s: %d shift(s), %s earned.",
		job.Name, len(shifts), money(stats["totalIncome"].(float64))), nil
}

func (m *JobModule) compareJobs(ctx context.Context, req Request) (*Result, error) {
	jobs, err := m.store.Jobs(ctx, req.AccountID, true)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return fail("you don't have any jobs yet"), nil
	}

	start, end := periodRange(req.Args.Str("period"), req.Anchor)
	var comparison []map[string]any
	for _, j := range jobs {
		shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{
			JobID: j.ID, StartDate: start, EndDate: end,
		})
		if err != nil {
			return nil, err
		}
		stats := summarizeShifts(shifts)
		stats["jobId"] = j.ID
		stats["jobName"] = j.Name
		comparison = append(comparison, stats)
	}
	sort.Slice(comparison, func(i, k int) bool {
		return comparison[i]["totalIncome"].(float64) > comparison[k]["totalIncome"].(float64)
	})

	top := comparison[0]
	return okData(map[string]any{"jobs": comparison},
		"%s is your top earner at %s.", top["jobName"], money(top["totalIncome"].(float64))), nil
}

func (m *JobModule) setJobHourlyRate(ctx context.Context, req Request) (*Result, error) {
	jobID := req.Args.Str("jobId")
	rate, hasRate := req.Args.Num("hourlyRate")
	if jobID == "" {
		return fail("jobId is required"), nil
	}
	if !hasRate || rate < 0 || rate > maxDollarAmount {
		return fail("hourlyRate must be between 0 and %d", maxDollarAmount), nil
	}
	err := m.store.UpdateJob(ctx, req.AccountID, jobID, map[string]any{"hourly_rate": rate})
	if errors.Is(err, store.ErrNotFound) {
		return fail("job %s not found", jobID), nil
	}
	if err != nil {
		return nil, err
	}
	return ok("Set the hourly rate to %s.", money(rate)), nil
}

// detectIndustry infers the industry bucket from a job title.
func detectIndustry(name string) string {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "bartend", "server", "wait", "barista", "cook", "chef", "host", "busser"):
		return "Food Service"
	case containsAny(lower, "barber", "hair", "stylist", "nail", "makeup", "lash", "esthet", "massage", "tattoo"):
		return "Beauty & Personal Care"
	case containsAny(lower, "dj", "event", "wedding", "photo", "video", "caterer", "catering"):
		return "Events"
	case containsAny(lower, "hotel", "concierge", "valet", "bell", "housekeep"):
		return "Hospitality"
	case containsAny(lower, "uber", "lyft", "rideshare", "taxi", "driver"):
		return "Rideshare"
	case containsAny(lower, "doordash", "delivery", "courier", "instacart", "grubhub"):
		return "Delivery"
	default:
		return "Other Services"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// summarizeShifts aggregates a shift slice into the shared stats shape.
func summarizeShifts(shifts []store.Shift) map[string]any {
	var total, tips, wages, hours float64
	for i := range shifts {
		sh := &shifts[i]
		total += sh.Total()
		tips += sh.CashTips + sh.CreditTips
		wages += sh.HourlyRate * sh.HoursWorked
		hours += sh.HoursWorked
	}
	stats := map[string]any{
		"shiftCount":  len(shifts),
		"totalIncome": round2(total),
		"totalTips":   round2(tips),
		"totalWages":  round2(wages),
		"totalHours":  round2(hours),
	}
	if len(shifts) > 0 {
		stats["averagePerShift"] = round2(total / float64(len(shifts)))
	}
	if hours > 0 {
		stats["effectiveHourly"] = round2(total / hours)
	}
	return stats
}
