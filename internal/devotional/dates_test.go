package devotional

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/model"
)

// fakeSource counts calls so tests can assert the single-fetch guarantee.
type fakeSource struct {
	dates     []string
	datesErr  error
	dateCalls int

	byDate map[string]*model.Devotional
}

func (f *fakeSource) ByDate(ctx context.Context, date string) (*model.Devotional, error) {
	return f.byDate[date], nil
}

func (f *fakeSource) All(ctx context.Context, limit int) ([]model.Devotional, error) {
	return nil, nil
}

func (f *fakeSource) Dates(ctx context.Context) ([]string, error) {
	f.dateCalls++
	return f.dates, f.datesErr
}

func fixedNow(date string) func() time.Time {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestDateCacheFetchesOnce(t *testing.T) {
	src := &fakeSource{dates: []string{"2025-06-01", "2025-06-02"}}
	cache := NewDateCache(NewService(src), false)
	cache.now = fixedNow("2025-06-01")

	assert.False(t, cache.Loaded())

	first := cache.Load(context.Background())
	second := cache.Load(context.Background())

	assert.Equal(t, 1, src.dateCalls)
	assert.True(t, cache.Loaded())
	assert.True(t, first.Has("2025-06-01"))
	assert.True(t, second.Has("2025-06-02"))
}

func TestDateCacheHorizonFilter(t *testing.T) {
	// Today is 2025-06-01, so the horizon ends at 2025-06-08; 2025-06-10
	// exists upstream but must be hidden.
	src := &fakeSource{dates: []string{"2025-05-30", "2025-06-08", "2025-06-10"}}
	cache := NewDateCache(NewService(src), false)
	cache.now = fixedNow("2025-06-01")

	set := cache.Load(context.Background())

	assert.True(t, set.Has("2025-05-30"))
	assert.True(t, set.Has("2025-06-08"), "horizon is inclusive of today+7")
	assert.False(t, set.Has("2025-06-10"))
}

func TestDateCacheDebugDisablesHorizon(t *testing.T) {
	src := &fakeSource{dates: []string{"2025-06-10", "2030-01-01"}}
	cache := NewDateCache(NewService(src), true)
	cache.now = fixedNow("2025-06-01")

	set := cache.Load(context.Background())

	assert.True(t, set.Has("2025-06-10"))
	assert.True(t, set.Has("2030-01-01"))
}

func TestDateCacheFailsOpenToEmptySet(t *testing.T) {
	src := &fakeSource{datesErr: errors.New("upstream down")}
	cache := NewDateCache(NewService(src), false)

	set := cache.Load(context.Background())

	assert.Empty(t, set)
	assert.True(t, cache.Loaded(), "a failed fetch still completes loading")
	assert.Equal(t, 1, src.dateCalls, "failure is not retried")
}

func TestDateCacheSkipsMalformedDates(t *testing.T) {
	src := &fakeSource{dates: []string{"2025-06-01", "garbage", ""}}
	cache := NewDateCache(NewService(src), true)

	set := cache.Load(context.Background())

	require.Len(t, set, 1)
	assert.True(t, set.Has("2025-06-01"))
}

func TestServiceDefaultLimit(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src)

	_, err := svc.All(context.Background(), 0)
	require.NoError(t, err)
}
