package dates

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Supported string layouts. Inferred layouts assume MONTH appears
// before DAY (US style) when a separator is present.
const (
	LayoutISO     = "2006-01-02"
	LayoutUS      = "01/02/2006"
	LayoutCompact = "20060102"
	LayoutMonth   = "200601"
)

// Cache memoizes string-to-date parses. Identical (input, layout) pairs
// return the cached value without re-parsing. Entries are kept for the
// lifetime of the cache; parses are deterministic so concurrent population
// is idempotent, guarded by the mutex.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]time.Time
}

type cacheKey struct {
	input  string
	layout string
}

// NewCache creates an empty parse cache. Callers that want control over
// cache lifetime own one of these; package-level Parse and ParseLayout
// share a process-wide default.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]time.Time)}
}

var defaultCache = NewCache()

// Parse converts a date string to a time value, inferring the layout:
// a "-" separator means ISO (2006-01-02), a "/" separator means US
// (01/02/2006), 8 characters means compact (20060102), 6 characters
// means year-month (200601). Unrecognized shapes fail with
// ErrUnknownFormat, parse failures with ErrInvalidDate.
func Parse(s string) (time.Time, error) {
	return defaultCache.Parse(s)
}

// ParseLayout converts a date string using an explicit layout.
func ParseLayout(s, layout string) (time.Time, error) {
	return defaultCache.ParseLayout(s, layout)
}

// Parse converts a date string with layout inference. See the package
// Parse function.
func (c *Cache) Parse(s string) (time.Time, error) {
	layout, err := inferLayout(s)
	if err != nil {
		return time.Time{}, err
	}
	return c.ParseLayout(s, layout)
}

// ParseLayout converts a date string using an explicit layout, caching
// the result.
func (c *Cache) ParseLayout(s, layout string) (time.Time, error) {
	key := cacheKey{input: s, layout: layout}

	c.mu.RLock()
	t, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q with layout %q: %w", s, layout, ErrInvalidDate)
	}

	c.mu.Lock()
	c.entries[key] = t
	c.mu.Unlock()

	return t, nil
}

// Len reports the number of cached parses.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func inferLayout(s string) (string, error) {
	switch {
	case strings.Contains(s, "-"):
		return LayoutISO, nil
	case strings.Contains(s, "/"):
		return LayoutUS, nil
	case len(s) == 8:
		return LayoutCompact, nil
	case len(s) == 6:
		return LayoutMonth, nil
	default:
		return "", fmt.Errorf("infer layout for %q: %w", s, ErrUnknownFormat)
	}
}

// FromUnix converts POSIX seconds to the calendar time they denote,
// rebuilt as a naive (UTC) value so dates compare by calendar day
// rather than instant.
func FromUnix(sec int64) time.Time {
	return naive(time.Unix(sec, 0).UTC())
}

// CoerceOptions directs Coerce for inputs that need a hint: an explicit
// string layout, or the flag marking numeric input as a POSIX timestamp.
type CoerceOptions struct {
	// Layout parses string input strictly with this layout instead of
	// inferring one.
	Layout string

	// FromTimestamp interprets the input as POSIX seconds.
	FromTimestamp bool
}

// Coerce normalizes a loosely typed date value, the shapes that arrive
// from spreadsheet cells, CSV fields and config files: a time.Time is
// returned unchanged, numeric input with FromTimestamp set converts via
// FromUnix, anything else is rendered to a string and parsed. Failures
// are ErrInvalidDate or ErrUnknownFormat.
func Coerce(v any, opts CoerceOptions) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}

	if opts.FromTimestamp {
		sec, err := toSeconds(v)
		if err != nil {
			return time.Time{}, err
		}
		return FromUnix(sec), nil
	}

	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	if opts.Layout != "" {
		return defaultCache.ParseLayout(s, opts.Layout)
	}
	return defaultCache.Parse(s)
}

func toSeconds(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("timestamp %q is not numeric: %w", n, ErrInvalidDate)
		}
		return int64(f), nil
	default:
		return 0, fmt.Errorf("timestamp %v (%T) is not numeric: %w", v, v, ErrInvalidDate)
	}
}

func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
