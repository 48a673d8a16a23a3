// Package reader coordinates date navigation, the available-dates cache and
// devotional fetching for one reading session.
//
// Fetching is gated behind a small phase machine instead of a pile of ORed
// booleans: no devotional is requested until the initial availability check
// (including any silent redirect to the closest available date) has finished.
// This avoids the flash of "not found" before a redirect lands.
package reader

import (
	"context"
	"log"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/devotional"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/model"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/navigation"
)

// Phase is the readiness state of a session.
type Phase int

const (
	// PhaseInitializing means the initial availability check has not run.
	PhaseInitializing Phase = iota
	// PhaseRedirecting means a silent correction was issued and the session
	// is waiting for the corrected render before fetching.
	PhaseRedirecting
	// PhaseReady permits devotional fetches.
	PhaseReady
)

// Session drives one reader's devotional loading.
type Session struct {
	nav   *navigation.Controller
	svc   *devotional.Service
	cache *devotional.DateCache

	phase    Phase
	fetching bool

	// gen numbers fetch requests so a stale in-flight response can never
	// overwrite the devotional for a newer date.
	gen        int
	devotional *model.Devotional
}

// NewSession creates a session whose initial date comes from the URL's date
// parameter (empty or invalid falls back to today).
func NewSession(svc *devotional.Service, cache *devotional.DateCache, rawDate string) *Session {
	return &Session{
		nav:   navigation.NewController(rawDate),
		svc:   svc,
		cache: cache,
	}
}

// Nav exposes the navigation controller.
func (s *Session) Nav() *navigation.Controller {
	return s.nav
}

// Phase returns the current readiness phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Loading reports whether the UI must still show the loading state. The
// empty/not-found state may only render once this is false.
func (s *Session) Loading() bool {
	return s.phase != PhaseReady || s.fetching
}

// Devotional returns the most recently applied fetch result; nil means no
// content for the current date (or a failed fetch, which renders the same).
func (s *Session) Devotional() *model.Devotional {
	return s.devotional
}

// SkipInitialCheck marks the session ready without running the availability
// check, for a reader whose check already ran earlier in their visit.
func (s *Session) SkipInitialCheck() {
	s.phase = PhaseReady
}

// EnsureReady runs the initial availability check exactly once, before the
// first fetch. When the initially-resolved date has no content, it silently
// corrects to the closest available date and reports the redirect effect;
// the caller applies the history-replace and calls EnsureReady again on the
// next render. The check never runs again after the user has navigated.
func (s *Session) EnsureReady(ctx context.Context) (navigation.Effect, bool) {
	switch s.phase {
	case PhaseReady:
		return navigation.Effect{}, false
	case PhaseRedirecting:
		s.phase = PhaseReady
		return navigation.Effect{}, false
	}

	available := s.cache.Load(ctx)

	if !s.nav.State().HasUserNavigated && !available.Has(s.nav.CurrentCanonical()) {
		effect := s.nav.NavigateToClosest(available)
		if effect.History == navigation.HistoryReplace {
			s.phase = PhaseRedirecting
			return effect, true
		}
	}

	s.phase = PhaseReady
	return navigation.Effect{}, false
}

// Fetch loads the devotional for the current date. Errors degrade to a nil
// devotional and are logged; they are not retried.
func (s *Session) Fetch(ctx context.Context) {
	gen, date := s.BeginFetch()
	d, err := s.svc.ByDate(ctx, date)
	s.CompleteFetch(gen, d, err)
}

// BeginFetch starts a fetch for the current date and returns its generation
// and target date.
func (s *Session) BeginFetch() (int, string) {
	s.gen++
	s.fetching = true
	return s.gen, s.nav.CurrentCanonical()
}

// CompleteFetch applies a fetch result. A result whose generation no longer
// matches is dropped, so a fast double-navigation cannot resurface an older
// date's content. Returns whether the result was applied.
func (s *Session) CompleteFetch(gen int, d *model.Devotional, err error) bool {
	if gen != s.gen {
		return false
	}

	if err != nil {
		log.Printf("Error fetching devotional: %v", err)
		d = nil
	}

	s.devotional = d
	s.fetching = false
	return true
}

// PreviousDay navigates one day back. User navigation always unlocks
// fetching, regardless of the initial-check phase.
func (s *Session) PreviousDay() navigation.Effect {
	effect := s.nav.PreviousDay()
	s.phase = PhaseReady
	return effect
}

// NextDay navigates one day forward.
func (s *Session) NextDay() navigation.Effect {
	effect := s.nav.NextDay()
	s.phase = PhaseReady
	return effect
}

// SelectDate jumps to a picked date.
func (s *Session) SelectDate(rawDate string) navigation.Effect {
	effect := s.nav.SelectDate(rawDate)
	if effect.History == navigation.HistoryPush {
		s.phase = PhaseReady
	}
	return effect
}
