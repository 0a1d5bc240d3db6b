package dates

import "time"

// MonthKeyFormat renders a month as the YYYY-MM period token used in entry
// references.
const MonthKeyFormat = "2006-01"

// DayKeyFormat renders a day as the YYYY-MM-DD period token used by daily
// generators such as labor accrual.
const DayKeyFormat = "2006-01-02"

// MonthStart truncates t to the first of its month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthKey returns the YYYY-MM token for t.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyFormat)
}

// MonthsBetween counts whole calendar months from the month of start to the
// month of end, inclusive of both. Returns 0 when end precedes start.
func MonthsBetween(start, end time.Time) int {
	s := MonthStart(start)
	e := MonthStart(end)
	if e.Before(s) {
		return 0
	}
	return (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month()) + 1
}

// MonthsInRange enumerates the first-of-month dates for every calendar month
// from start through end, inclusive.
func MonthsInRange(start, end time.Time) []time.Time {
	s := MonthStart(start)
	e := MonthStart(end)
	if e.Before(s) {
		return nil
	}
	var months []time.Time
	for cur := s; !cur.After(e); cur = cur.AddDate(0, 1, 0) {
		months = append(months, cur)
	}
	return months
}

// ExtendForRenewal extends a schedule's end by one additional full term when
// renewing, where the term length is the month count of the original
// start..end range. The extension is capped at fifteen years from the
// original start so perpetually renewing schedules stay bounded.
func ExtendForRenewal(start, end time.Time, autoRenew bool) time.Time {
	if !autoRenew {
		return end
	}
	term := MonthsBetween(start, end)
	if term <= 0 {
		return end
	}
	extended := MonthStart(end).AddDate(0, term, 0)
	limit := MonthStart(start).AddDate(15, 0, 0)
	if extended.After(limit) {
		return limit
	}
	return extended
}

// MinTime returns the earlier of two times.
func MinTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
