package devotional

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/dateutil"
)

// HorizonDays is how far past today a devotional date may lie and still be
// visible to navigation. Far-future content exists in Notion (episodes are
// scheduled ahead) but must stay hidden until it is close to publication.
const HorizonDays = 7

// DateCache holds the set of dates for which content exists. The upstream
// list is fetched exactly once per process; concurrent first callers share
// the same fetch.
//
// A fetch failure resolves to an empty set rather than an error: the UI
// treats "nothing available" and "could not load" identically.
type DateCache struct {
	svc   *Service
	debug bool
	now   func() time.Time

	mu     sync.Mutex
	loaded bool
	dates  dateutil.DateSet
}

// NewDateCache creates a cache over the service. With debug set, the
// visibility horizon is not applied.
func NewDateCache(svc *Service, debug bool) *DateCache {
	return &DateCache{
		svc:   svc,
		debug: debug,
		now:   time.Now,
		dates: dateutil.DateSet{},
	}
}

// Load returns the available-date set, fetching it on first use.
func (c *DateCache) Load(ctx context.Context) dateutil.DateSet {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.dates
	}

	dates, err := c.svc.Dates(ctx)
	if err != nil {
		log.Printf("Error fetching available dates: %v", err)
		dates = nil
	}

	c.dates = c.filter(dates)
	c.loaded = true
	return c.dates
}

// Loaded reports whether the initial fetch has completed.
func (c *DateCache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// filter applies the visibility horizon and drops malformed dates.
func (c *DateCache) filter(dates []string) dateutil.DateSet {
	set := make(dateutil.DateSet, len(dates))
	var cutoff time.Time
	if !c.debug {
		cutoff = dateutil.AddDays(dateutil.StartOfDay(c.now()), HorizonDays)
	}

	for _, d := range dates {
		t, err := dateutil.Parse(d)
		if err != nil {
			log.Printf("Skipping malformed devotional date %q", d)
			continue
		}
		if !c.debug && t.After(cutoff) {
			continue
		}
		set.Add(d)
	}
	return set
}
