// Package dateutil provides calendar-day helpers for devotional dates.
//
// A devotional date is a calendar day, not an instant: the canonical form is
// YYYY-MM-DD built from local calendar fields, with no timezone conversion.
package dateutil

import (
	"fmt"
	"sort"
	"time"
)

// Layout is the canonical date format.
const Layout = "2006-01-02"

// Canonical formats a date as YYYY-MM-DD using its local calendar fields.
func Canonical(t time.Time) string {
	return t.Format(Layout)
}

// StartOfDay strips the time-of-day, keeping the calendar day and location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Parse parses a canonical YYYY-MM-DD string into a start-of-day local date.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Today returns the current local date at start of day.
func Today() time.Time {
	return StartOfDay(time.Now())
}

// AddDays shifts a date by n calendar days, staying at start of day.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t.AddDate(0, 0, n))
}

// DateSet is a set of canonical date strings.
type DateSet map[string]struct{}

// NewDateSet builds a set from canonical date strings.
func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Has reports membership of a canonical date string.
func (s DateSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Add inserts a canonical date string.
func (s DateSet) Add(date string) {
	s[date] = struct{}{}
}

// Sorted returns the members in ascending order.
func (s DateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// dayDistance returns the absolute number of calendar days between two dates.
// Both are reanchored to UTC midnight so DST transitions cannot skew the count.
func dayDistance(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	d := int(bu.Sub(au) / (24 * time.Hour))
	if d < 0 {
		return -d
	}
	return d
}

// Closest returns the candidate date nearest to target.
//
// If target's own canonical date is a member of candidates it is returned
// directly. Otherwise the candidate minimizing absolute day distance wins,
// with ties broken by the first match in ascending order. The second return
// is false when candidates is empty.
func Closest(target time.Time, candidates DateSet) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	canonical := Canonical(target)
	if candidates.Has(canonical) {
		return canonical, true
	}

	best := ""
	bestDist := -1
	for _, c := range candidates.Sorted() {
		ct, err := Parse(c)
		if err != nil {
			continue
		}
		dist := dayDistance(target, ct)
		if bestDist < 0 || dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	if bestDist < 0 {
		return "", false
	}
	return best, true
}
