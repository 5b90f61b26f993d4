package dates

import "time"

// nowFunc is swapped in tests for deterministic "today" values.
var nowFunc = time.Now

// Midnight truncates a time to midnight of its calendar day, rebuilt in
// UTC. Snapshot keys use this form so equal calendar days compare equal
// regardless of where the value was produced.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day at midnight.
func Today() time.Time {
	return Midnight(nowFunc())
}

// Format renders a date in ISO form (2006-01-02).
func Format(t time.Time) string {
	return t.Format(LayoutISO)
}

// FormatUS renders a date in US form (01/02/2006).
func FormatUS(t time.Time) string {
	return t.Format(LayoutUS)
}

// FormatCompact renders a date in compact form (20060102).
func FormatCompact(t time.Time) string {
	return t.Format(LayoutCompact)
}

// MonthEnd returns the last calendar day of t's month at midnight.
func MonthEnd(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths shifts a date by n months, clamping the day to the target
// month's last day (Jan 31 + 1 month is Feb 28, not Mar 3). The time of
// day is preserved.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), time.Month(int(t.Month())+n), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := MonthEnd(first).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears shifts a date by n years with the same day clamping as
// AddMonths (Feb 29 maps to Feb 28 in non-leap years).
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}
