package dates

import (
	"fmt"
	"time"
)

// Frequency selects the stepping of a generated schedule.
type Frequency string

const (
	// Daily includes weekdays only
	Daily Frequency = "D"
	// Weekly steps 7 days from the start date
	Weekly Frequency = "W"
	// Monthly steps one month from the start date
	Monthly Frequency = "M"
	// Quarterly steps three months
	Quarterly Frequency = "Q"
	// Semiannual steps six months
	Semiannual Frequency = "S"
	// Annual steps twelve months
	Annual Frequency = "Y"
)

// IsValid reports whether the frequency is one of the supported values.
func (f Frequency) IsValid() bool {
	switch f {
	case Daily, Weekly, Monthly, Quarterly, Semiannual, Annual:
		return true
	}
	return false
}

// String returns a human-readable name for logging.
func (f Frequency) String() string {
	switch f {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Semiannual:
		return "semiannual"
	case Annual:
		return "annual"
	default:
		return "unknown"
	}
}

func (f Frequency) months() int {
	switch f {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case Semiannual:
		return 6
	case Annual:
		return 12
	default:
		return 0
	}
}

// Schedule generates the ordered dates from start through end at the given
// frequency, anchored at the start date. Daily schedules include weekdays
// only and skip the supplied holidays (matched by calendar day); holidays
// do not apply to the other frequencies. Month-based frequencies clamp to
// the target month's last day. An equal start and end yields that single
// date; a start after the end yields an empty schedule.
func Schedule(start, end time.Time, freq Frequency, holidays []time.Time) ([]time.Time, error) {
	if !freq.IsValid() {
		return nil, fmt.Errorf("frequency %q: %w", string(freq), ErrInvalidFrequency)
	}
	if start.Equal(end) {
		return []time.Time{start}, nil
	}

	var out []time.Time
	switch freq {
	case Daily:
		skip := make(map[time.Time]bool, len(holidays))
		for _, h := range holidays {
			skip[Midnight(h)] = true
		}
		for d := start; !d.After(end); d = AddDays(d, 1) {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			if skip[Midnight(d)] {
				continue
			}
			out = append(out, d)
		}
	case Weekly:
		for d := start; !d.After(end); d = AddDays(d, 7) {
			out = append(out, d)
		}
	default:
		step := freq.months()
		for i := 0; ; i++ {
			d := AddMonths(start, i*step)
			if d.After(end) {
				break
			}
			out = append(out, d)
		}
	}
	return out, nil
}
