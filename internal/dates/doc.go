// Package dates normalizes the date representations that show up in
// security data files and queries: strings in several layouts, POSIX
// timestamps, and native time values, all reduced to naive (UTC)
// calendar times.
//
// The package contains three groups:
//
// Coercion: Parse and ParseLayout convert strings (memoized through a
// Cache), FromUnix converts POSIX seconds, and Coerce handles the loose
// values that arrive from spreadsheet cells and config files.
//
// Calendar helpers: Midnight, Today, MonthEnd, AddDays/AddMonths/AddYears
// and the Format variants used when writing files.
//
// Schedules: Schedule generates rebalance-style date sequences between
// two dates at daily through annual frequencies, with holiday exclusion
// for daily stepping.
//
// Example usage:
//
//	d, err := dates.Parse("2021-01-31")
//
//	cache := dates.NewCache()
//	d, err = cache.ParseLayout("31.01.2021", "02.01.2006")
//
//	months, err := dates.Schedule(start, end, dates.Monthly, nil)
package dates
