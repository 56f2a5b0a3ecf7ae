package ops

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tipline/internal/store"
)

// shiftColumnsByArg maps wire argument names to shift table columns. Anything
// absent here is rejected in updates rather than guessed at.
var shiftColumnsByArg = map[string]string{
	"jobId":                "job_id",
	"date":                 "date",
	"cashTips":             "cash_tips",
	"creditTips":           "credit_tips",
	"hourlyRate":           "hourly_rate",
	"hoursWorked":          "hours_worked",
	"startTime":            "start_time",
	"endTime":              "end_time",
	"overtimeHours":        "overtime_hours",
	"flatRate":             "flat_rate",
	"commission":           "commission",
	"salesAmount":          "sales_amount",
	"tipoutPercent":        "tipout_percent",
	"additionalTipout":     "additional_tipout",
	"additionalTipoutNote": "additional_tipout_note",
	"eventName":            "event_name",
	"eventCost":            "event_cost",
	"hostess":              "hostess",
	"guestCount":           "guest_count",
	"location":             "location",
	"clientName":           "client_name",
	"projectName":          "project_name",
	"mileage":              "mileage",
	"notes":                "notes",
}

const (
	maxDollarAmount = 100000
	maxShiftHours   = 24
)

// ShiftModule owns the shift family operations.
type ShiftModule struct {
	store *store.Store
}

// NewShiftModule builds the shift module.
func NewShiftModule(st *store.Store) *ShiftModule {
	return &ShiftModule{store: st}
}

// Execute runs one shift operation.
func (m *ShiftModule) Execute(ctx context.Context, req Request) (*Result, error) {
	switch req.Name {
	case "add_shift":
		return m.addShift(ctx, req)
	case "edit_shift":
		return m.editShift(ctx, req)
	case "delete_shift":
		return m.deleteShift(ctx, req)
	case "bulk_edit_shifts":
		return m.bulkEditShifts(ctx, req)
	case "bulk_delete_shifts":
		return m.bulkDeleteShifts(ctx, req)
	case "search_shifts":
		return m.searchShifts(ctx, req)
	case "get_shift_details":
		return m.getShiftDetails(ctx, req)
	case "calculate_shift_total":
		return m.calculateShiftTotal(ctx, req)
	case "duplicate_shift":
		return m.duplicateShift(ctx, req)
	default:
		return nil, fmt.Errorf("shift module: unknown operation %q", req.Name)
	}
}

func (m *ShiftModule) addShift(ctx context.Context, req Request) (*Result, error) {
	jobID := req.Args.Str("jobId")
	date := req.Args.Str("date")
	if jobID == "" {
		return fail("jobId is required"), nil
	}
	if !validISODate(date) {
		return fail("invalid date %q, expected YYYY-MM-DD", date), nil
	}

	job, err := m.store.JobByID(ctx, req.AccountID, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return fail("job %s not found", jobID), nil
	}
	if err != nil {
		return nil, err
	}

	sh := store.Shift{
		AccountID:            req.AccountID,
		JobID:                jobID,
		Date:                 date,
		CashTips:             req.Args.NumOr("cashTips", 0),
		CreditTips:           req.Args.NumOr("creditTips", 0),
		HourlyRate:           req.Args.NumOr("hourlyRate", 0),
		HoursWorked:          req.Args.NumOr("hoursWorked", 0),
		StartTime:            req.Args.Str("startTime"),
		EndTime:              req.Args.Str("endTime"),
		OvertimeHours:        req.Args.NumOr("overtimeHours", 0),
		FlatRate:             req.Args.NumOr("flatRate", 0),
		Commission:           req.Args.NumOr("commission", 0),
		SalesAmount:          req.Args.NumOr("salesAmount", 0),
		TipoutPercent:        req.Args.NumOr("tipoutPercent", 0),
		AdditionalTipout:     req.Args.NumOr("additionalTipout", 0),
		AdditionalTipoutNote: req.Args.Str("additionalTipoutNote"),
		EventName:            req.Args.Str("eventName"),
		EventCost:            req.Args.NumOr("eventCost", 0),
		Hostess:              req.Args.Str("hostess"),
		GuestCount:           req.Args.IntOr("guestCount", 0),
		Location:             req.Args.Str("location"),
		ClientName:           req.Args.Str("clientName"),
		ProjectName:          req.Args.Str("projectName"),
		Mileage:              req.Args.NumOr("mileage", 0),
		Notes:                req.Args.Str("notes"),
	}

	// Hours without a rate inherit the job's wage, so "worked 6 hours" alone
	// still produces real earnings.
	if sh.HoursWorked > 0 && !req.Args.Has("hourlyRate") {
		sh.HourlyRate = job.HourlyRate
	}
	if msg := checkShiftValues(&sh); msg != "" {
		return fail("%s", msg), nil
	}

	if err := m.store.InsertShift(ctx, &sh); err != nil {
		return nil, err
	}
	return okData(map[string]any{
		"shiftId": sh.ID,
		"date":    sh.Date,
		"jobName": job.Name,
		"total":   round2(sh.Total()),
	}, "Added %s shift on %s totaling %s.", job.Name, sh.Date, money(sh.Total())), nil
}

func (m *ShiftModule) editShift(ctx context.Context, req Request) (*Result, error) {
	date := req.Args.Str("date")
	if !validISODate(date) {
		return fail("invalid date %q, expected YYYY-MM-DD", date), nil
	}
	updates := req.Args.Object("updates")
	if len(updates) == 0 {
		return fail("updates object is required"), nil
	}

	sh, err := m.store.ShiftByDate(ctx, req.AccountID, date, req.Args.Str("jobId"))
	if errors.Is(err, store.ErrNotFound) {
		return fail("no shift found on %s", date), nil
	}
	if err != nil {
		return nil, err
	}

	columns, msg := shiftUpdateMap(updates)
	if msg != "" {
		return fail("%s", msg), nil
	}
	if err := m.store.UpdateShift(ctx, req.AccountID, sh.ID, columns); err != nil {
		return nil, err
	}

	updated, err := m.store.ShiftByID(ctx, req.AccountID, sh.ID)
	if err != nil {
		return nil, err
	}
	return okData(map[string]any{
		"shiftId": updated.ID,
		"date":    updated.Date,
		"total":   round2(updated.Total()),
	}, "Updated the shift on %s; new total is %s.", updated.Date, money(updated.Total())), nil
}

func (m *ShiftModule) deleteShift(ctx context.Context, req Request) (*Result, error) {
	date := req.Args.Str("date")
	if !validISODate(date) {
		return fail("invalid date %q, expected YYYY-MM-DD", date), nil
	}

	sh, err := m.store.ShiftByDate(ctx, req.AccountID, date, "")
	if errors.Is(err, store.ErrNotFound) {
		return fail("no shift found on %s", date), nil
	}
	if err != nil {
		return nil, err
	}

	if !req.Args.Bool("confirmed") {
		return confirm(map[string]any{
			"shiftId": sh.ID,
			"date":    sh.Date,
			"total":   round2(sh.Total()),
		}, "Delete the shift on %s totaling %s? This can't be undone.", sh.Date, money(sh.Total())), nil
	}

	if err := m.store.DeleteShift(ctx, req.AccountID, sh.ID); err != nil {
		return nil, err
	}
	return ok("Deleted the shift on %s.", sh.Date), nil
}

func (m *ShiftModule) bulkEditShifts(ctx context.Context, req Request) (*Result, error) {
	updates := req.Args.Object("updates")
	if len(updates) == 0 {
		return fail("updates object is required"), nil
	}
	columns, msg := shiftUpdateMap(updates)
	if msg != "" {
		return fail("%s", msg), nil
	}

	filter, res, err := m.bulkFilter(ctx, req)
	if res != nil || err != nil {
		return res, err
	}

	// Preview and apply compute the match set identically, so the count the
	// user approved is the count that changes.
	matching, err := m.store.Shifts(ctx, req.AccountID, filter)
	if err != nil {
		return nil, err
	}
	if len(matching) == 0 {
		return fail("no shifts match that range"), nil
	}

	if !req.Args.Bool("confirmed") {
		return confirm(map[string]any{"affectedCount": len(matching)},
			"This will update %d shift(s). Proceed?", len(matching)), nil
	}

	n, err := m.store.UpdateShifts(ctx, req.AccountID, filter, columns)
	if err != nil {
		return nil, err
	}
	return okData(map[string]any{"updatedCount": n}, "Updated %d shift(s).", n), nil
}

func (m *ShiftModule) bulkDeleteShifts(ctx context.Context, req Request) (*Result, error) {
	filter, res, err := m.bulkFilter(ctx, req)
	if res != nil || err != nil {
		return res, err
	}

	matching, err := m.store.Shifts(ctx, req.AccountID, filter)
	if err != nil {
		return nil, err
	}
	if len(matching) == 0 {
		return fail("no shifts match that range"), nil
	}

	var total float64
	for i := range matching {
		total += matching[i].Total()
	}

	if !req.Args.Bool("confirmed") {
		return confirm(map[string]any{
			"affectedCount": len(matching),
			"totalIncome":   round2(total),
		}, "This will permanently delete %d shift(s) totaling %s. Proceed?",
			len(matching), money(total)), nil
	}

	n, err := m.store.DeleteShifts(ctx, req.AccountID, filter)
	if err != nil {
		return nil, err
	}
	return okData(map[string]any{"deletedCount": n}, "Deleted %d shift(s).", n), nil
}

// bulkFilter builds the shared filter for bulk operations, resolving an
// optional jobName against the account's jobs. A non-nil Result short
// circuits the operation (unknown job name, no criteria at all).
func (m *ShiftModule) bulkFilter(ctx context.Context, req Request) (store.ShiftFilter, *Result, error) {
	filter := store.ShiftFilter{
		JobID:     req.Args.Str("jobId"),
		StartDate: req.Args.Str("startDate"),
		EndDate:   req.Args.Str("endDate"),
	}
	if name := req.Args.Str("jobName"); name != "" && filter.JobID == "" {
		job, err := m.store.JobByName(ctx, req.AccountID, name)
		if errors.Is(err, store.ErrNotFound) {
			return filter, fail("no job named %q", name), nil
		}
		if err != nil {
			return filter, nil, err
		}
		filter.JobID = job.ID
	}
	if filter.JobID == "" && filter.StartDate == "" && filter.EndDate == "" {
		return filter, fail("a date range or job is required for bulk changes"), nil
	}
	return filter, nil, nil
}

func (m *ShiftModule) searchShifts(ctx context.Context, req Request) (*Result, error) {
	filter := store.ShiftFilter{
		JobID:     req.Args.Str("jobId"),
		StartDate: req.Args.Str("startDate"),
		EndDate:   req.Args.Str("endDate"),
		EventName: req.Args.Str("eventName"),
	}
	shifts, err := m.store.Shifts(ctx, req.AccountID, filter)
	if err != nil {
		return nil, err
	}

	minAmount, hasMin := req.Args.Num("minAmount")
	maxAmount, hasMax := req.Args.Num("maxAmount")
	limit := req.Args.IntOr("limit", 20)

	var results []map[string]any
	var total float64
	for i := range shifts {
		t := shifts[i].Total()
		if hasMin && t < minAmount {
			continue
		}
		if hasMax && t > maxAmount {
			continue
		}
		if len(results) >= limit {
			break
		}
		results = append(results, shiftSummary(&shifts[i]))
		total += t
	}

	return okData(map[string]any{
		"shifts":      results,
		"count":       len(results),
		"totalIncome": round2(total),
	}, "Found %d shift(s) totaling %s.", len(results), money(total)), nil
}

func (m *ShiftModule) getShiftDetails(ctx context.Context, req Request) (*Result, error) {
	date := req.Args.Str("date")
	if !validISODate(date) {
		return fail("invalid date %q, expected YYYY-MM-DD", date), nil
	}
	sh, err := m.store.ShiftByDate(ctx, req.AccountID, date, req.Args.Str("jobId"))
	if errors.Is(err, store.ErrNotFound) {
		return fail("no shift found on %s", date), nil
	}
	if err != nil {
		return nil, err
	}
	return okData(shiftDetails(sh), "Shift on %s totals %s.", sh.Date, money(sh.Total())), nil
}

func (m *ShiftModule) calculateShiftTotal(ctx context.Context, req Request) (*Result, error) {
	date := req.Args.Str("date")
	if !validISODate(date) {
		return fail("invalid date %q, expected YYYY-MM-DD", date), nil
	}
	sh, err := m.store.ShiftByDate(ctx, req.AccountID, date, "")
	if errors.Is(err, store.ErrNotFound) {
		return fail("no shift found on %s", date), nil
	}
	if err != nil {
		return nil, err
	}

	tips := sh.CashTips + sh.CreditTips
	wages := sh.HourlyRate * sh.HoursWorked
	tipout := sh.AdditionalTipout
	if sh.TipoutPercent > 0 {
		tipout += tips * sh.TipoutPercent / 100
	}
	return okData(map[string]any{
		"date":       sh.Date,
		"tips":       round2(tips),
		"wages":      round2(wages),
		"flatRate":   round2(sh.FlatRate),
		"commission": round2(sh.Commission),
		"tipout":     round2(tipout),
		"total":      round2(sh.Total()),
	}, "The shift on %s totals %s.", sh.Date, money(sh.Total())), nil
}

func (m *ShiftModule) duplicateShift(ctx context.Context, req Request) (*Result, error) {
	sourceDate := req.Args.Str("sourceDate")
	targetDate := req.Args.Str("targetDate")
	if !validISODate(sourceDate) || !validISODate(targetDate) {
		return fail("sourceDate and targetDate must be YYYY-MM-DD"), nil
	}

	src, err := m.store.ShiftByDate(ctx, req.AccountID, sourceDate, "")
	if errors.Is(err, store.ErrNotFound) {
		return fail("no shift found on %s to copy", sourceDate), nil
	}
	if err != nil {
		return nil, err
	}

	dup := *src
	dup.ID = ""
	dup.Date = targetDate
	if err := m.store.InsertShift(ctx, &dup); err != nil {
		return nil, err
	}
	return okData(map[string]any{
		"shiftId": dup.ID,
		"date":    dup.Date,
		"total":   round2(dup.Total()),
	}, "Copied the %s shift to %s.", sourceDate, targetDate), nil
}

// shiftUpdateMap converts a wire updates object into store columns, rejecting
// unknown fields and out-of-range values.
func shiftUpdateMap(updates Args) (map[string]any, string) {
	columns := make(map[string]any, len(updates))
	for arg := range updates {
		col, known := shiftColumnsByArg[arg]
		if !known {
			return nil, fmt.Sprintf("unknown shift field %q", arg)
		}
		switch arg {
		case "cashTips", "creditTips", "hourlyRate", "flatRate", "commission",
			"salesAmount", "additionalTipout", "eventCost", "overtimeHours",
			"tipoutPercent", "mileage":
			v, okNum := updates.Num(arg)
			if !okNum || v < 0 || v > maxDollarAmount {
				return nil, fmt.Sprintf("%s must be between 0 and %d", arg, maxDollarAmount)
			}
			columns[col] = v
		case "hoursWorked":
			v, okNum := updates.Num(arg)
			if !okNum || v < 0 || v > maxShiftHours {
				return nil, fmt.Sprintf("hoursWorked must be between 0 and %d", maxShiftHours)
			}
			columns[col] = v
		case "guestCount":
			v, okNum := updates.Int(arg)
			if !okNum || v < 0 {
				return nil, "guestCount must be a non-negative integer"
			}
			columns[col] = v
		case "date":
			v := updates.Str(arg)
			if !validISODate(v) {
				return nil, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", v)
			}
			columns[col] = v
		default:
			columns[col] = updates.Str(arg)
		}
	}
	return columns, ""
}

func checkShiftValues(sh *store.Shift) string {
	for name, v := range map[string]float64{
		"cashTips": sh.CashTips, "creditTips": sh.CreditTips,
		"hourlyRate": sh.HourlyRate, "flatRate": sh.FlatRate,
		"commission": sh.Commission, "salesAmount": sh.SalesAmount,
		"additionalTipout": sh.AdditionalTipout, "eventCost": sh.EventCost,
	} {
		if v < 0 || v > maxDollarAmount {
			return fmt.Sprintf("%s must be between 0 and %d", name, maxDollarAmount)
		}
	}
	if sh.HoursWorked < 0 || sh.HoursWorked > maxShiftHours {
		return fmt.Sprintf("hoursWorked must be between 0 and %d", maxShiftHours)
	}
	return ""
}

func shiftSummary(sh *store.Shift) map[string]any {
	s := map[string]any{
		"shiftId": sh.ID,
		"date":    sh.Date,
		"total":   round2(sh.Total()),
	}
	if sh.EventName != "" {
		s["eventName"] = sh.EventName
	}
	if sh.JobID != "" {
		s["jobId"] = sh.JobID
	}
	return s
}

func shiftDetails(sh *store.Shift) map[string]any {
	d := shiftSummary(sh)
	d["cashTips"] = round2(sh.CashTips)
	d["creditTips"] = round2(sh.CreditTips)
	d["hourlyRate"] = round2(sh.HourlyRate)
	d["hoursWorked"] = sh.HoursWorked
	if sh.StartTime != "" {
		d["startTime"] = sh.StartTime
	}
	if sh.EndTime != "" {
		d["endTime"] = sh.EndTime
	}
	if sh.FlatRate > 0 {
		d["flatRate"] = round2(sh.FlatRate)
	}
	if sh.Commission > 0 {
		d["commission"] = round2(sh.Commission)
	}
	if sh.Location != "" {
		d["location"] = sh.Location
	}
	if sh.ClientName != "" {
		d["clientName"] = sh.ClientName
	}
	if sh.GuestCount > 0 {
		d["guestCount"] = sh.GuestCount
	}
	if sh.Notes != "" {
		d["notes"] = sh.Notes
	}
	return d
}

func validISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
