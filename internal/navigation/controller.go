// Package navigation owns the reader's "current date" state and its
// synchronization with the date= URL query parameter.
//
// Every transition is tagged with the kind of actor that caused it, and the
// browser-history side effect is a pure function of that kind: user actions
// push a new history entry, silent auto-corrections replace the current one,
// and transitions replayed from history (back/forward) write nothing at all.
package navigation

import (
	"time"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/dateutil"
)

// HistoryOp is the browser-history side effect of a transition.
type HistoryOp int

const (
	// HistoryNone leaves the URL untouched.
	HistoryNone HistoryOp = iota
	// HistoryPush adds a new history entry for the updated URL.
	HistoryPush
	// HistoryReplace updates the URL without adding a history entry, so the
	// back button never has to undo a correction the user did not make.
	HistoryReplace
)

// Kind tags who caused a transition.
type Kind int

const (
	// KindUser is an explicit user action (prev/next/pick).
	KindUser Kind = iota
	// KindAutoCorrect is a silent system correction to an available date.
	KindAutoCorrect
	// KindHistory is a replay of a past state via browser back/forward.
	KindHistory
)

// Effect describes what the URL/history layer must do after a transition.
type Effect struct {
	History HistoryOp
	// Date is the canonical date= query value reflecting the new state.
	Date string
}

// State is the navigation state visible to the UI.
type State struct {
	Current          time.Time
	HasUserNavigated bool
	ShowPicker       bool
}

// Controller is the date navigation state machine. Current is the single
// source of truth for what is displayed; the URL never diverges from it
// outside the tick in which a transition is applied.
type Controller struct {
	state State
}

// NewController initializes the state from the URL's date parameter. An
// absent or unparseable value falls back to today. Initialization itself
// never writes the URL; the first render replaces, it does not push.
func NewController(rawDate string) *Controller {
	current := dateutil.Today()
	if rawDate != "" {
		if t, err := dateutil.Parse(rawDate); err == nil {
			current = t
		}
	}
	return &Controller{state: State{Current: current}}
}

// State returns a snapshot of the navigation state.
func (c *Controller) State() State {
	return c.state
}

// Current returns the displayed date.
func (c *Controller) Current() time.Time {
	return c.state.Current
}

// CurrentCanonical returns the displayed date in canonical form.
func (c *Controller) CurrentCanonical() string {
	return dateutil.Canonical(c.state.Current)
}

// PreviousDay moves one day back.
func (c *Controller) PreviousDay() Effect {
	return c.apply(KindUser, dateutil.AddDays(c.state.Current, -1))
}

// NextDay moves one day forward. Moving past today is allowed; the empty
// content state communicates unavailability.
func (c *Controller) NextDay() Effect {
	return c.apply(KindUser, dateutil.AddDays(c.state.Current, 1))
}

// SelectDate jumps to a picked date. An unparseable value is ignored.
func (c *Controller) SelectDate(rawDate string) Effect {
	t, err := dateutil.Parse(rawDate)
	if err != nil {
		return Effect{History: HistoryNone, Date: c.CurrentCanonical()}
	}
	return c.apply(KindUser, t)
}

// TogglePicker flips the date picker without touching the date.
func (c *Controller) TogglePicker() {
	c.state.ShowPicker = !c.state.ShowPicker
}

// NavigateToClosest silently corrects the current date to the nearest
// available one. It is a no-op when the set is empty or the current date is
// already available, and it never counts as user navigation.
func (c *Controller) NavigateToClosest(available dateutil.DateSet) Effect {
	closest, ok := dateutil.Closest(c.state.Current, available)
	if !ok || closest == c.CurrentCanonical() {
		return Effect{History: HistoryNone, Date: c.CurrentCanonical()}
	}

	t, err := dateutil.Parse(closest)
	if err != nil {
		return Effect{History: HistoryNone, Date: c.CurrentCanonical()}
	}
	return c.apply(KindAutoCorrect, t)
}

// HandleHistoryChange applies a date read back from the URL on browser
// back/forward. It must never emit another URL write.
func (c *Controller) HandleHistoryChange(rawDate string) {
	current := dateutil.Today()
	if rawDate != "" {
		if t, err := dateutil.Parse(rawDate); err == nil {
			current = t
		}
	}

	c.apply(KindHistory, current)
}

// HasPreviousDate reports whether content exists one day back. Used only for
// affordance; it never blocks navigation.
func (c *Controller) HasPreviousDate(available dateutil.DateSet) bool {
	return available.Has(dateutil.Canonical(dateutil.AddDays(c.state.Current, -1)))
}

// HasNextDate reports whether content exists one day forward.
func (c *Controller) HasNextDate(available dateutil.DateSet) bool {
	return available.Has(dateutil.Canonical(dateutil.AddDays(c.state.Current, 1)))
}

// apply performs the tagged transition and derives its history effect. A
// KindHistory transition must never emit another history write; tagging the
// transition at the call site is what breaks the popstate feedback loop.
func (c *Controller) apply(kind Kind, date time.Time) Effect {
	c.state.Current = dateutil.StartOfDay(date)

	effect := Effect{Date: c.CurrentCanonical()}
	switch kind {
	case KindUser:
		c.state.HasUserNavigated = true
		c.state.ShowPicker = false
		effect.History = HistoryPush
	case KindAutoCorrect:
		effect.History = HistoryReplace
	case KindHistory:
		effect.History = HistoryNone
	}
	return effect
}
