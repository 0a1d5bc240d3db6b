package dates_test

import (
	"testing"
	"time"

	"github.com/buildbooks/construction_gl/internal/utils/dates"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, day(2025, time.March, 1), dates.MonthStart(day(2025, time.March, 17)))
	assert.Equal(t, day(2025, time.March, 1), dates.MonthStart(day(2025, time.March, 1)))

	// Non-UTC input normalizes to UTC month boundaries.
	loc := time.FixedZone("X", -8*3600)
	assert.Equal(t, day(2024, time.December, 1), dates.MonthStart(time.Date(2024, time.December, 31, 23, 0, 0, 0, loc)))
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 1, dates.MonthsBetween(day(2025, time.January, 5), day(2025, time.January, 28)))
	assert.Equal(t, 12, dates.MonthsBetween(day(2025, time.January, 1), day(2025, time.December, 31)))
	assert.Equal(t, 13, dates.MonthsBetween(day(2024, time.December, 15), day(2025, time.December, 1)))
	assert.Equal(t, 0, dates.MonthsBetween(day(2025, time.June, 1), day(2025, time.May, 31)))
}

func TestMonthsInRange(t *testing.T) {
	// A standard twelve-month lease enumerates exactly twelve periods.
	months := dates.MonthsInRange(day(2025, time.January, 1), day(2025, time.December, 31))
	assert.Len(t, months, 12)
	assert.Equal(t, day(2025, time.January, 1), months[0])
	assert.Equal(t, day(2025, time.December, 1), months[11])

	// Mid-month boundaries still include both end months.
	months = dates.MonthsInRange(day(2025, time.March, 15), day(2025, time.May, 2))
	assert.Len(t, months, 3)

	assert.Nil(t, dates.MonthsInRange(day(2025, time.June, 1), day(2025, time.May, 1)))
}

func TestExtendForRenewal(t *testing.T) {
	start := day(2025, time.January, 1)
	end := day(2025, time.December, 31)

	// No auto-renew: the end is untouched.
	assert.Equal(t, end, dates.ExtendForRenewal(start, end, false))

	// Auto-renew adds one additional full term.
	extended := dates.ExtendForRenewal(start, end, true)
	assert.Equal(t, day(2026, time.December, 1), extended)

	// A long-running lease is capped at fifteen years from the original start.
	farEnd := day(2039, time.June, 30)
	capped := dates.ExtendForRenewal(start, farEnd, true)
	assert.Equal(t, day(2040, time.January, 1), capped)
}

func TestMinTime(t *testing.T) {
	a := day(2025, time.March, 1)
	b := day(2025, time.April, 1)
	assert.Equal(t, a, dates.MinTime(a, b))
	assert.Equal(t, a, dates.MinTime(b, a))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", dates.MonthKey(day(2025, time.March, 17)))
}
