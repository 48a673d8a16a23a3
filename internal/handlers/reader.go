package handlers

import (
	"context"
	"log"
	"sort"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/dateutil"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/devotional"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/navigation"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/reader"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/templates"
)

const (
	sessionInitialCheck  = "initial_check_done"
	sessionUserNavigated = "user_navigated"
)

// ReaderHandler renders the devotional reader. The date= query parameter is
// the only persisted navigation state; each request builds a reader.Session
// around it, and on a visit's first request an unavailable date is silently
// corrected to the closest available one via a redirect, before any
// devotional is fetched. Explicit navigation carries nav=user and permanently
// disables the correction for the visit.
func ReaderHandler(svc *devotional.Service, cache *devotional.DateCache, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		rs := reader.NewSession(svc, cache, c.Query("date"))

		initialChecked := false
		userNavigated := c.Query("nav") == "user"

		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Error loading session: %v", err)
		} else {
			if v, ok := sess.Get(sessionInitialCheck).(bool); ok && v {
				initialChecked = true
			}
			if v, ok := sess.Get(sessionUserNavigated).(bool); ok && v {
				userNavigated = true
			}

			sess.Set(sessionInitialCheck, true)
			if userNavigated {
				sess.Set(sessionUserNavigated, true)
			}
			if err := sess.Save(); err != nil {
				log.Printf("Error saving session: %v", err)
			}
		}

		if initialChecked || userNavigated {
			rs.SkipInitialCheck()
		}
		if effect, redirected := rs.EnsureReady(ctx); redirected && effect.History == navigation.HistoryReplace {
			// A redirect replaces the would-be entry, so the back button
			// never lands on the corrected-away date.
			return c.Redirect("/?date="+effect.Date, fiber.StatusFound)
		}

		rs.Fetch(ctx)

		nav := rs.Nav()
		available := cache.Load(ctx)
		date := nav.CurrentCanonical()

		picker := available.Sorted()
		sort.Sort(sort.Reverse(sort.StringSlice(picker)))

		view := templates.ReaderView{
			Date:           date,
			DisplayDate:    templates.DisplayDate(date),
			IsFuture:       nav.Current().After(dateutil.Today()),
			PrevURL:        "/?date=" + dateutil.Canonical(dateutil.AddDays(nav.Current(), -1)) + "&nav=user",
			NextURL:        "/?date=" + dateutil.Canonical(dateutil.AddDays(nav.Current(), 1)) + "&nav=user",
			HasPrevious:    nav.HasPreviousDate(available),
			HasNext:        nav.HasNextDate(available),
			AvailableDates: picker,
			Devotional:     rs.Devotional(),
		}

		page := templates.Reader(view)
		return adaptor.HTTPHandler(templ.Handler(page))(c)
	}
}
