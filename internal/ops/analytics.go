package ops

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"tipline/internal/store"
)

// AnalyticsModule owns the reporting operations. Everything is computed from
// shifts at query time; there are no materialized aggregates to drift.
type AnalyticsModule struct {
	store *store.Store
}

// NewAnalyticsModule builds the analytics module.
func NewAnalyticsModule(st *store.Store) *AnalyticsModule {
	return &AnalyticsModule{store: st}
}

// Execute runs one analytics operation.
func (m *AnalyticsModule) Execute(ctx context.Context, req Request) (*Result, error) {
	switch req.Name {
	case "get_income_summary":
		return m.getIncomeSummary(ctx, req)
	case "compare_periods":
		return m.comparePeriods(ctx, req)
	case "get_best_days":
		return m.rankWeekdays(ctx, req, true)
	case "get_worst_days":
		return m.rankWeekdays(ctx, req, false)
	case "get_tax_estimate":
		return m.getTaxEstimate(ctx, req)
	case "get_projected_year_end":
		return m.getProjectedYearEnd(ctx, req)
	case "get_year_over_year":
		return m.getYearOverYear(ctx, req)
	case "get_event_earnings":
		return m.getEventEarnings(ctx, req)
	default:
		return nil, fmt.Errorf("analytics module: unknown operation %q", req.Name)
	}
}

func (m *AnalyticsModule) getIncomeSummary(ctx context.Context, req Request) (*Result, error) {
	period := req.Args.Str("period")
	var start, end string
	if period == "custom" {
		start, end = req.Args.Str("startDate"), req.Args.Str("endDate")
		if !validISODate(start) || !validISODate(end) {
			return fail("custom period requires startDate and endDate in YYYY-MM-DD"), nil
		}
	} else {
		start, end = periodRange(period, req.Anchor)
	}

	shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{
		JobID: req.Args.Str("jobId"), StartDate: start, EndDate: end,
	})
	if err != nil {
		return nil, err
	}

	stats := summarizeShifts(shifts)
	stats["period"] = period
	if start != "" {
		stats["startDate"] = start
	}
	if end != "" {
		stats["endDate"] = end
	}
	return okData(stats, "You earned %s across %d shift(s).",
		money(stats["totalIncome"].(float64)), len(shifts)), nil
}

func (m *AnalyticsModule) comparePeriods(ctx context.Context, req Request) (*Result, error) {
	bounds := [4]string{
		req.Args.Str("period1Start"), req.Args.Str("period1End"),
		req.Args.Str("period2Start"), req.Args.Str("period2End"),
	}
	for _, d := range bounds {
		if !validISODate(d) {
			return fail("all four period bounds must be YYYY-MM-DD dates"), nil
		}
	}

	totals := [2]float64{}
	counts := [2]int{}
	for i := 0; i < 2; i++ {
		shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{
			StartDate: bounds[i*2], EndDate: bounds[i*2+1],
		})
		if err != nil {
			return nil, err
		}
		counts[i] = len(shifts)
		for k := range shifts {
			totals[i] += shifts[k].Total()
		}
	}

	diff := totals[0] - totals[1]
	var pct float64
	if totals[1] > 0 {
		pct = round2(diff / totals[1] * 100)
	}
	direction := "more"
	if diff < 0 {
		direction = "less"
	}
	return okData(map[string]any{
		"period1Income":  round2(totals[0]),
		"period1Shifts":  counts[0],
		"period2Income":  round2(totals[1]),
		"period2Shifts":  counts[1],
		"difference":     round2(diff),
		"percentChange":  pct,
	}, "First period earned %s, second period %s. That's %s %s.",
		money(totals[0]), money(totals[1]), money(math.Abs(diff)), direction), nil
}

func (m *AnalyticsModule) rankWeekdays(ctx context.Context, req Request, best bool) (*Result, error) {
	shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{
		JobID: req.Args.Str("jobId"),
	})
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return ok("No shifts recorded yet, so there's nothing to rank."), nil
	}

	type dayStats struct {
		total float64
		count int
	}
	byDay := map[time.Weekday]*dayStats{}
	for i := range shifts {
		d, err := time.Parse(isoDate, shifts[i].Date)
		if err != nil {
			continue
		}
		ds := byDay[d.Weekday()]
		if ds == nil {
			ds = &dayStats{}
			byDay[d.Weekday()] = ds
		}
		ds.total += shifts[i].Total()
		ds.count++
	}

	type ranked struct {
		day     time.Weekday
		average float64
		total   float64
		count   int
	}
	var ranking []ranked
	for day, ds := range byDay {
		ranking = append(ranking, ranked{
			day:     day,
			average: ds.total / float64(ds.count),
			total:   ds.total,
			count:   ds.count,
		})
	}
	sort.Slice(ranking, func(i, k int) bool {
		if best {
			return ranking[i].average > ranking[k].average
		}
		return ranking[i].average < ranking[k].average
	})

	limit := req.Args.IntOr("limit", 5)
	if limit > len(ranking) {
		limit = len(ranking)
	}
	list := make([]map[string]any, 0, limit)
	for _, r := range ranking[:limit] {
		list = append(list, map[string]any{
			"day":        r.day.String(),
			"average":    round2(r.average),
			"total":      round2(r.total),
			"shiftCount": r.count,
		})
	}

	label := "best"
	if !best {
		label = "slowest"
	}
	top := ranking[0]
	return okData(map[string]any{"days": list},
		"Your %s day is %s, averaging %s per shift.",
		label, top.day.String(), money(top.average)), nil
}

// Simplified single-filer federal brackets plus self-employment tax. This is
// a ballpark for planning, not tax advice; the reply must say so.
func (m *AnalyticsModule) getTaxEstimate(ctx context.Context, req Request) (*Result, error) {
	year := req.Args.IntOr("year", req.Anchor.Year())
	start := fmt.Sprintf("%04d-01-01", year)
	end := fmt.Sprintf("%04d-12-31", year)

	shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{
		StartDate: start, EndDate: end,
	})
	if err != nil {
		return nil, err
	}
	var income float64
	for i := range shifts {
		income += shifts[i].Total()
	}

	settings, err := m.store.Settings(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	taxable := max(income-settings.Deductions, 0)
	incomeTax := bracketTax(taxable)
	var seTax float64
	if settings.IsSelfEmployed {
		seTax = taxable * 0.9235 * 0.153
	}
	total := incomeTax + seTax

	return okData(map[string]any{
		"year":             year,
		"grossIncome":      round2(income),
		"estimatedTax":     round2(total),
		"incomeTax":        round2(incomeTax),
		"selfEmploymentTax": round2(seTax),
		"quarterlyPayment": round2(total / 4),
		"effectiveRate":    round2(safePct(total, income)),
	}, "Rough %d estimate: %s in taxes on %s of income, about %s per quarter. This is a ballpark, not tax advice.",
		year, money(total), money(income), money(total/4)), nil
}

func (m *AnalyticsModule) getProjectedYearEnd(ctx context.Context, req Request) (*Result, error) {
	year := req.Args.IntOr("year", req.Anchor.Year())
	start := fmt.Sprintf("%04d-01-01", year)
	end := fmt.Sprintf("%04d-12-31", year)

	shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{
		StartDate: start, EndDate: end,
	})
	if err != nil {
		return nil, err
	}
	var income float64
	for i := range shifts {
		income += shifts[i].Total()
	}

	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, req.Anchor.Location())
	elapsed := int(req.Anchor.Sub(yearStart).Hours()/24) + 1
	if year != req.Anchor.Year() || elapsed < 1 {
		elapsed = 365
	}
	projected := income
	if elapsed < 365 {
		projected = income / float64(elapsed) * 365
	}

	return okData(map[string]any{
		"year":         year,
		"incomeSoFar":  round2(income),
		"daysElapsed":  elapsed,
		"projected":    round2(projected),
		"dailyAverage": round2(income / float64(elapsed)),
	}, "At the current pace you'd finish %d around %s.", year, money(projected)), nil
}

func (m *AnalyticsModule) getYearOverYear(ctx context.Context, req Request) (*Result, error) {
	thisYear := req.Anchor.Year()
	totals := map[int]float64{}
	counts := map[int]int{}
	for _, year := range []int{thisYear, thisYear - 1} {
		shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{
			StartDate: fmt.Sprintf("%04d-01-01", year),
			EndDate:   fmt.Sprintf("%04d-12-31", year),
		})
		if err != nil {
			return nil, err
		}
		counts[year] = len(shifts)
		for i := range shifts {
			totals[year] += shifts[i].Total()
		}
	}

	diff := totals[thisYear] - totals[thisYear-1]
	direction := "up"
	if diff < 0 {
		direction = "down"
	}
	return okData(map[string]any{
		"currentYear":       thisYear,
		"currentIncome":     round2(totals[thisYear]),
		"currentShifts":     counts[thisYear],
		"previousIncome":    round2(totals[thisYear-1]),
		"previousShifts":    counts[thisYear-1],
		"difference":        round2(diff),
		"percentChange":     round2(safePct(diff, totals[thisYear-1])),
	}, "You're %s %s versus %d.", direction, money(math.Abs(diff)), thisYear-1), nil
}

func (m *AnalyticsModule) getEventEarnings(ctx context.Context, req Request) (*Result, error) {
	eventName := req.Args.Str("eventName")
	if eventName == "" {
		return fail("eventName is required"), nil
	}
	shifts, err := m.store.Shifts(ctx, req.AccountID, store.ShiftFilter{EventName: eventName})
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return fail("no shifts found for event %q", eventName), nil
	}

	var total float64
	var list []map[string]any
	for i := range shifts {
		total += shifts[i].Total()
		list = append(list, shiftSummary(&shifts[i]))
	}
	return okData(map[string]any{
		"eventName": eventName,
		"shifts":    list,
		"total":     round2(total),
	}, "%q earned you %s across %d shift(s).", eventName, money(total), len(shifts)), nil
}

// bracketTax applies the simplified progressive brackets.
func bracketTax(taxable float64) float64 {
	brackets := []struct {
		upTo float64
		rate float64
	}{
		{11600, 0.10},
		{47150, 0.12},
		{100525, 0.22},
		{0, 0.24},
	}
	var tax, prev float64
	for _, b := range brackets {
		if b.upTo == 0 || taxable <= b.upTo {
			tax += (taxable - prev) * b.rate
			return tax
		}
		tax += (b.upTo - prev) * b.rate
		prev = b.upTo
	}
	return tax
}

func safePct(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
