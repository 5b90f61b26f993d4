package panel

import (
	"fmt"
	"sort"
	"time"

	"paneldata/internal/dates"
	"paneldata/internal/frame"
)

// DefaultTag identifies a collection whose constructor was not given an
// explicit tag.
const DefaultTag = "DATA"

// DatedFrame groups one snapshot with the date it was observed and the
// identifier of the data it carries.
type DatedFrame struct {
	Date  time.Time
	Frame *frame.Frame
	Tag   string
}

// Collection maps calendar dates to snapshots and answers as-of queries
// against the sorted date keys. A collection starts with one snapshot,
// grows only through Insert, and never shrinks. It is not safe for
// concurrent mutation; callers serialize access externally.
type Collection struct {
	tag       string
	snapshots map[time.Time]*frame.Frame
	dates     []time.Time
}

// NewCollection creates a collection seeded with one dated snapshot.
// An empty tag defaults to DefaultTag.
func NewCollection(date time.Time, f *frame.Frame, tag string) *Collection {
	if tag == "" {
		tag = DefaultTag
	}
	c := &Collection{
		tag:       tag,
		snapshots: make(map[time.Time]*frame.Frame),
	}
	c.Insert(date, f)
	return c
}

// Insert stores a snapshot under the date's midnight key, replacing any
// snapshot already stored for that day. The sorted key sequence stays
// consistent with the map after every call.
func (c *Collection) Insert(date time.Time, f *frame.Frame) {
	key := dates.Midnight(date)
	_, exists := c.snapshots[key]
	c.snapshots[key] = f
	if !exists {
		c.dates = append(c.dates, key)
		sort.Slice(c.dates, func(i, j int) bool { return c.dates[i].Before(c.dates[j]) })
	}
}

// ResolveAsOf returns the stored date a query resolves to: the exact key
// when one exists, otherwise the greatest stored key strictly before the
// query. A query preceding every stored date fails with ErrNoEarlierData.
func (c *Collection) ResolveAsOf(query time.Time) (time.Time, error) {
	i := sort.Search(len(c.dates), func(i int) bool { return c.dates[i].After(query) })
	if i == 0 {
		return time.Time{}, fmt.Errorf("as of %s: %w", dates.Format(query), ErrNoEarlierData)
	}
	return c.dates[i-1], nil
}

// Latest returns the snapshot on or closest before asOf. A zero asOf
// means today at midnight.
func (c *Collection) Latest(asOf time.Time) (*frame.Frame, error) {
	resolved, err := c.ResolveAsOf(c.queryDate(asOf))
	if err != nil {
		return nil, err
	}
	return c.snapshots[resolved], nil
}

// LatestDated returns the resolved snapshot together with its date and
// the collection's tag.
func (c *Collection) LatestDated(asOf time.Time) (DatedFrame, error) {
	resolved, err := c.ResolveAsOf(c.queryDate(asOf))
	if err != nil {
		return DatedFrame{}, err
	}
	return DatedFrame{Date: resolved, Frame: c.snapshots[resolved], Tag: c.tag}, nil
}

// SelectFields resolves the snapshot as of asOf and extracts the named
// columns, order preserved, all rows retained. An empty resultTag
// defaults to the first requested label. A label absent from the
// resolved snapshot fails with frame.ErrColumnNotFound.
func (c *Collection) SelectFields(labels []string, asOf time.Time, resultTag string) (DatedFrame, error) {
	if len(labels) == 0 {
		return DatedFrame{}, ErrNoFields
	}
	resolved, err := c.ResolveAsOf(c.queryDate(asOf))
	if err != nil {
		return DatedFrame{}, err
	}
	sub, err := c.snapshots[resolved].Select(labels...)
	if err != nil {
		return DatedFrame{}, fmt.Errorf("select fields as of %s: %w", dates.Format(resolved), err)
	}
	if resultTag == "" {
		resultTag = labels[0]
	}
	return DatedFrame{Date: resolved, Frame: sub, Tag: resultTag}, nil
}

// PreviousDate returns the stored date immediately preceding d by
// position. The earliest stored date fails with ErrNoEarlierData; a date
// that is not a stored key fails with ErrUnknownDate.
func (c *Collection) PreviousDate(d time.Time) (time.Time, error) {
	key := dates.Midnight(d)
	i := sort.Search(len(c.dates), func(i int) bool { return !c.dates[i].Before(key) })
	if i >= len(c.dates) || !c.dates[i].Equal(key) {
		return time.Time{}, fmt.Errorf("%s: %w", dates.Format(key), ErrUnknownDate)
	}
	if i == 0 {
		return time.Time{}, fmt.Errorf("before %s: %w", dates.Format(key), ErrNoEarlierData)
	}
	return c.dates[i-1], nil
}

// Dates returns a copy of the sorted stored dates.
func (c *Collection) Dates() []time.Time {
	out := make([]time.Time, len(c.dates))
	copy(out, c.dates)
	return out
}

// Tag returns the collection's identifier.
func (c *Collection) Tag() string { return c.tag }

// Len returns the number of stored snapshots.
func (c *Collection) Len() int { return len(c.dates) }

func (c *Collection) queryDate(asOf time.Time) time.Time {
	if asOf.IsZero() {
		return dates.Today()
	}
	return asOf
}
