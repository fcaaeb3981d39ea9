package utils

import (
	"time"

	"github.com/meenmo/qfmath/types"
)

// Day count conventions accepted by YearFraction.
const (
	Act360     = "ACT/360"
	Act365F    = "ACT/365F"
	Thirty360  = "30/360"
	ThirtyE360 = "30E/360"
)

// YearFraction computes year fraction between two dates using the specified day count convention.
// Supported conventions: ACT/360, ACT/365F, 30E/360, 30/360. Unknown conventions fall back to ACT/365F.
// The result is negative when end is before start.
func YearFraction(start, end time.Time, convention string) types.Time {
	switch convention {
	case Act360:
		return Days(start, end) / 360.0
	case ThirtyE360, Thirty360:
		// 30E/360: day of month capped at 30
		d1 := min(start.Day(), 30)
		d2 := min(end.Day(), 30)
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return Days(start, end) / 365.0
	}
}

// TimeAxis places dates on the model time axis, measured in years from Anchor.
type TimeAxis struct {
	Anchor   time.Time
	DayCount string
}

// At returns the model time of date.
func (a TimeAxis) At(date time.Time) types.Time {
	return YearFraction(a.Anchor, date, a.DayCount)
}
