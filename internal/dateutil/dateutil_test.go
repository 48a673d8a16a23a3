package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalRoundTrip(t *testing.T) {
	dates := []string{
		"2025-01-01",
		"2025-01-05",
		"2025-02-28",
		"2024-02-29",
		"2025-12-31",
		"1999-06-15",
	}

	for _, d := range dates {
		parsed, err := Parse(d)
		require.NoError(t, err)
		assert.Equal(t, d, Canonical(StartOfDay(parsed)))
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2025-13-01", "2025-02-30", "05.01.2025", "2025-1-5"} {
		_, err := Parse(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2025, 3, 14, 15, 9, 26, 535, time.Local)
	got := StartOfDay(at)

	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, 0, got.Second())
	assert.Equal(t, "2025-03-14", Canonical(got))
}

func TestAddDays(t *testing.T) {
	d, err := Parse("2025-01-31")
	require.NoError(t, err)

	assert.Equal(t, "2025-02-01", Canonical(AddDays(d, 1)))
	assert.Equal(t, "2025-01-30", Canonical(AddDays(d, -1)))
	assert.Equal(t, "2025-01-31", Canonical(AddDays(d, 0)))
}

func TestClosestExactMatch(t *testing.T) {
	target, err := Parse("2025-01-05")
	require.NoError(t, err)

	set := NewDateSet("2025-01-01", "2025-01-05", "2025-01-10")
	got, ok := Closest(target, set)
	require.True(t, ok)
	assert.Equal(t, "2025-01-05", got)
}

func TestClosestPicksMinimalDistance(t *testing.T) {
	// 2025-01-01 is 4 days away, 2025-01-10 is 5 days away.
	target, err := Parse("2025-01-05")
	require.NoError(t, err)

	set := NewDateSet("2025-01-01", "2025-01-10")
	got, ok := Closest(target, set)
	require.True(t, ok)
	assert.Equal(t, "2025-01-01", got)
}

func TestClosestTieBreaksAscending(t *testing.T) {
	// Both candidates are 2 days away; the earlier one wins.
	target, err := Parse("2025-01-05")
	require.NoError(t, err)

	set := NewDateSet("2025-01-07", "2025-01-03")
	got, ok := Closest(target, set)
	require.True(t, ok)
	assert.Equal(t, "2025-01-03", got)
}

func TestClosestEmptySet(t *testing.T) {
	target, err := Parse("2025-01-05")
	require.NoError(t, err)

	_, ok := Closest(target, DateSet{})
	assert.False(t, ok)
}

func TestClosestResultIsAlwaysMinimal(t *testing.T) {
	target, err := Parse("2025-06-15")
	require.NoError(t, err)

	set := NewDateSet(
		"2025-01-01", "2025-05-30", "2025-06-01", "2025-06-20",
		"2025-07-04", "2025-12-31", "2024-06-15",
	)

	got, ok := Closest(target, set)
	require.True(t, ok)
	require.True(t, set.Has(got))

	gotTime, err := Parse(got)
	require.NoError(t, err)
	gotDist := dayDistance(target, gotTime)

	for _, c := range set.Sorted() {
		ct, err := Parse(c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, dayDistance(target, ct), gotDist,
			"candidate %s is strictly closer than returned %s", c, got)
	}
}

func TestClosestAcrossDSTBoundary(t *testing.T) {
	// Day distance must count calendar days even when a DST shift makes a
	// day 23 or 25 hours long in local time.
	target, err := Parse("2025-03-30")
	require.NoError(t, err)

	set := NewDateSet("2025-03-28", "2025-04-01")
	got, ok := Closest(target, set)
	require.True(t, ok)
	assert.Equal(t, "2025-03-28", got)
}

func TestDateSetSorted(t *testing.T) {
	set := NewDateSet("2025-03-01", "2025-01-01", "2025-02-01")
	assert.Equal(t, []string{"2025-01-01", "2025-02-01", "2025-03-01"}, set.Sorted())
}
