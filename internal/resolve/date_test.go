package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func anchorDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDateISOPassthrough(t *testing.T) {
	anchor := anchorDate("2026-01-09")
	assert.Equal(t, "2025-03-17", Date("2025-03-17", anchor))
}

func TestDateRelativeWords(t *testing.T) {
	anchor := anchorDate("2026-01-09")

	assert.Equal(t, "2026-01-09", Date("today", anchor))
	assert.Equal(t, "2026-01-08", Date("yesterday", anchor))
	assert.Equal(t, "2026-01-10", Date("tomorrow", anchor))
	assert.Equal(t, "2026-01-09", Date("  Today  ", anchor))
}

func TestDateRelativeOffsets(t *testing.T) {
	anchor := anchorDate("2026-01-09")

	assert.Equal(t, "2026-01-06", Date("3 days ago", anchor))
	assert.Equal(t, "2026-01-08", Date("1 day ago", anchor))
	assert.Equal(t, "2025-12-26", Date("2 weeks ago", anchor))
	assert.Equal(t, "2026-01-23", Date("2 weeks from now", anchor))
	assert.Equal(t, "2025-10-09", Date("3 months ago", anchor))
}

func TestDateWeekdays(t *testing.T) {
	// 2026-01-09 is a Friday.
	anchor := anchorDate("2026-01-09")

	assert.Equal(t, "2026-01-06", Date("last tuesday", anchor))
	assert.Equal(t, "2026-01-13", Date("next tuesday", anchor))
	// The matching weekday never resolves to the anchor itself.
	assert.Equal(t, "2026-01-02", Date("last friday", anchor))
	assert.Equal(t, "2026-01-16", Date("next friday", anchor))
	assert.Equal(t, "2026-01-04", Date("last Sunday", anchor))
}

func TestDateDayOfMonth(t *testing.T) {
	// Day already passed this month: stay in the month.
	assert.Equal(t, "2026-01-22", Date("the 22nd", anchorDate("2026-01-25")))
	// Day hasn't happened yet: previous month.
	assert.Equal(t, "2025-12-22", Date("the 22nd", anchorDate("2026-01-09")))
	// The anchor day itself stays.
	assert.Equal(t, "2026-01-09", Date("the 9th", anchorDate("2026-01-09")))
	assert.Equal(t, "2026-01-01", Date("the 1st", anchorDate("2026-01-31")))
}

func TestDateMonthDay(t *testing.T) {
	anchor := anchorDate("2026-01-09")

	assert.Equal(t, "2026-01-05", Date("january 5", anchor))
	// A future month-day falls back a year.
	assert.Equal(t, "2025-12-22", Date("december 22", anchor))
	assert.Equal(t, "2025-12-22", Date("dec 22", anchor))
	assert.Equal(t, "2025-06-15", Date("June 15", anchor))
}

func TestDateUnrecognizedPassesThrough(t *testing.T) {
	anchor := anchorDate("2026-01-09")

	assert.Equal(t, "whenever", Date("whenever", anchor))
	assert.Equal(t, "", Date("", anchor))
}

func TestAnchor(t *testing.T) {
	a := Anchor("2026-01-09")
	assert.Equal(t, 2026, a.Year())
	assert.Equal(t, time.January, a.Month())
	assert.Equal(t, 9, a.Day())
	assert.Equal(t, 0, a.Hour())

	// Malformed input falls back to server time, normalized to midnight.
	fallback := Anchor("not-a-date")
	assert.Equal(t, 0, fallback.Hour())
	assert.Equal(t, 0, fallback.Minute())
}
