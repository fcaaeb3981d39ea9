package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/qfmath/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	start := date(2025, 1, 31)
	end := date(2025, 7, 31)

	assert.InDelta(t, 181.0/360.0, utils.YearFraction(start, end, utils.Act360), 1e-12)
	assert.InDelta(t, 181.0/365.0, utils.YearFraction(start, end, utils.Act365F), 1e-12)
	assert.InDelta(t, 0.5, utils.YearFraction(start, end, utils.ThirtyE360), 1e-12)
	assert.InDelta(t, 181.0/365.0, utils.YearFraction(start, end, "BUS/252"), 1e-12)
	assert.InDelta(t, -0.5, utils.YearFraction(end, start, utils.Thirty360), 1e-12)
}

func TestTimeAxis(t *testing.T) {
	t.Parallel()

	axis := utils.TimeAxis{Anchor: date(2025, 1, 1), DayCount: utils.Act365F}
	assert.Equal(t, 0.0, axis.At(date(2025, 1, 1)))
	assert.InDelta(t, 1.0, axis.At(date(2026, 1, 1)), 1e-12)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := utils.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.True(t, got.Equal(date(2024, 2, 29)))

	_, err = utils.ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestSortDates(t *testing.T) {
	t.Parallel()

	ds := []time.Time{date(2025, 3, 1), date(2024, 1, 1), date(2025, 1, 1)}
	utils.SortDates(ds)
	assert.Equal(t, []time.Time{date(2024, 1, 1), date(2025, 1, 1), date(2025, 3, 1)}, ds)
}
