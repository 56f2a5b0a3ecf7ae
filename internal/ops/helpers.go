package ops

import (
	"fmt"
	"math"
	"time"
)

const isoDate = "2006-01-02"

// periodRange converts a named period into inclusive date bounds relative to
// the anchor. "week" is the trailing 7 days including the anchor; "month" and
// "year" are calendar to-date. Unknown or all_time means unbounded.
func periodRange(period string, anchor time.Time) (start, end string) {
	end = anchor.Format(isoDate)
	switch period {
	case "today":
		return end, end
	case "week":
		return anchor.AddDate(0, 0, -6).Format(isoDate), end
	case "month":
		return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location()).Format(isoDate), end
	case "year":
		return time.Date(anchor.Year(), 1, 1, 0, 0, 0, 0, anchor.Location()).Format(isoDate), end
	default:
		return "", ""
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}
