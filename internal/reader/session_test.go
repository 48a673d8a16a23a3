package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/devotional"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/model"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/navigation"
)

type fakeSource struct {
	dates    []string
	byDate   map[string]*model.Devotional
	byDateFn func(date string) (*model.Devotional, error)
}

func (f *fakeSource) ByDate(ctx context.Context, date string) (*model.Devotional, error) {
	if f.byDateFn != nil {
		return f.byDateFn(date)
	}
	return f.byDate[date], nil
}

func (f *fakeSource) All(ctx context.Context, limit int) ([]model.Devotional, error) {
	return nil, nil
}

func (f *fakeSource) Dates(ctx context.Context) ([]string, error) {
	return f.dates, nil
}

func newTestSession(src *fakeSource, rawDate string) *Session {
	svc := devotional.NewService(src)
	// Debug mode keeps the horizon out of these tests.
	cache := devotional.NewDateCache(svc, true)
	return NewSession(svc, cache, rawDate)
}

func TestInitialRedirectBeforeFirstFetch(t *testing.T) {
	// URL is /?date=2025-01-05, content exists on 2025-01-01 and 2025-01-10.
	src := &fakeSource{
		dates: []string{"2025-01-10", "2025-01-01"},
		byDate: map[string]*model.Devotional{
			"2025-01-01": {ID: "a", Date: "2025-01-01"},
			"2025-01-10": {ID: "b", Date: "2025-01-10"},
		},
	}
	s := newTestSession(src, "2025-01-05")

	require.Equal(t, "2025-01-05", s.Nav().CurrentCanonical(),
		"the initial URL read stands until the readiness check runs")
	assert.True(t, s.Loading())

	effect, redirected := s.EnsureReady(context.Background())
	require.True(t, redirected)
	assert.Equal(t, navigation.HistoryReplace, effect.History)
	assert.Equal(t, "2025-01-01", effect.Date, "distance 4 beats distance 5")
	assert.Equal(t, PhaseRedirecting, s.Phase())
	assert.True(t, s.Loading(), "no empty state may flash mid-redirect")

	// Next render after the replace.
	_, redirected = s.EnsureReady(context.Background())
	require.False(t, redirected)
	assert.Equal(t, PhaseReady, s.Phase())

	s.Fetch(context.Background())
	assert.False(t, s.Loading())
	require.NotNil(t, s.Devotional())
	assert.Equal(t, "a", s.Devotional().ID)
}

func TestNoRedirectWhenDateAvailable(t *testing.T) {
	src := &fakeSource{
		dates:  []string{"2025-01-05"},
		byDate: map[string]*model.Devotional{"2025-01-05": {ID: "a"}},
	}
	s := newTestSession(src, "2025-01-05")

	_, redirected := s.EnsureReady(context.Background())

	assert.False(t, redirected)
	assert.Equal(t, PhaseReady, s.Phase())
}

func TestEmptyDateSetLeavesOriginalDate(t *testing.T) {
	src := &fakeSource{}
	s := newTestSession(src, "2025-01-05")

	_, redirected := s.EnsureReady(context.Background())

	assert.False(t, redirected)
	assert.Equal(t, "2025-01-05", s.Nav().CurrentCanonical())
	assert.Equal(t, PhaseReady, s.Phase())

	s.Fetch(context.Background())
	assert.Nil(t, s.Devotional())
	assert.False(t, s.Loading(), "empty state may render once ready")
}

func TestUserNavigationSkipsInitialCheck(t *testing.T) {
	src := &fakeSource{dates: []string{"2025-02-01"}}
	s := newTestSession(src, "2025-01-05")

	effect := s.NextDay()
	require.Equal(t, navigation.HistoryPush, effect.History)
	assert.Equal(t, PhaseReady, s.Phase(), "explicit navigation always permits fetching")

	// Even a later EnsureReady must not auto-correct a user-chosen date.
	_, redirected := s.EnsureReady(context.Background())
	assert.False(t, redirected)
	assert.Equal(t, "2025-01-06", s.Nav().CurrentCanonical())
}

func TestSkipInitialCheckSuppressesCorrection(t *testing.T) {
	// A reader whose availability check already ran earlier in the visit
	// keeps the requested date even when it has no content.
	src := &fakeSource{dates: []string{"2025-01-01"}}
	s := newTestSession(src, "2025-01-05")

	s.SkipInitialCheck()
	require.Equal(t, PhaseReady, s.Phase())

	_, redirected := s.EnsureReady(context.Background())
	assert.False(t, redirected)
	assert.Equal(t, "2025-01-05", s.Nav().CurrentCanonical())

	s.Fetch(context.Background())
	assert.Nil(t, s.Devotional())
	assert.False(t, s.Loading())
}

func TestStaleFetchResponseIsDropped(t *testing.T) {
	src := &fakeSource{
		dates: []string{"2025-01-01", "2025-01-02"},
		byDate: map[string]*model.Devotional{
			"2025-01-01": {ID: "old"},
			"2025-01-02": {ID: "new"},
		},
	}
	s := newTestSession(src, "2025-01-01")
	s.EnsureReady(context.Background())

	// First fetch goes out, then the user navigates before it resolves.
	oldGen, oldDate := s.BeginFetch()
	s.NextDay()
	newGen, newDate := s.BeginFetch()

	// The newer response lands first.
	applied := s.CompleteFetch(newGen, src.byDate[newDate], nil)
	require.True(t, applied)
	assert.Equal(t, "new", s.Devotional().ID)

	// The stale response must not overwrite it.
	applied = s.CompleteFetch(oldGen, src.byDate[oldDate], nil)
	assert.False(t, applied)
	assert.Equal(t, "new", s.Devotional().ID)
	assert.False(t, s.Loading())
}

func TestFetchErrorDegradesToNil(t *testing.T) {
	src := &fakeSource{
		dates:    []string{"2025-01-05"},
		byDateFn: func(string) (*model.Devotional, error) { return nil, errors.New("boom") },
	}
	s := newTestSession(src, "2025-01-05")
	s.EnsureReady(context.Background())

	s.Fetch(context.Background())

	assert.Nil(t, s.Devotional())
	assert.False(t, s.Loading(), "a failed fetch still completes loading")
}

func TestLoadingDuringFetch(t *testing.T) {
	src := &fakeSource{dates: []string{"2025-01-05"}}
	s := newTestSession(src, "2025-01-05")
	s.EnsureReady(context.Background())

	gen, _ := s.BeginFetch()
	assert.True(t, s.Loading())

	s.CompleteFetch(gen, nil, nil)
	assert.False(t, s.Loading())
}
