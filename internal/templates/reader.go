// Package templates renders the reader pages as templ components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/model"
)

// ReaderView is everything the reader page needs to render one date.
type ReaderView struct {
	Date        string
	DisplayDate string
	IsFuture    bool

	PrevURL string
	NextURL string
	// HasPrevious / HasNext only drive affordance; the links always work.
	HasPrevious bool
	HasNext     bool

	// AvailableDates feeds the date picker, newest first.
	AvailableDates []string

	// Devotional is nil when there is no content for the date.
	Devotional *model.Devotional
}

// slovakMonths are genitive month names for display dates.
var slovakMonths = [...]string{
	"januára", "februára", "marca", "apríla", "mája", "júna",
	"júla", "augusta", "septembra", "októbra", "novembra", "decembra",
}

// DisplayDate formats a canonical date as "5. januára 2025".
func DisplayDate(date string) string {
	var y, m, d int
	if _, err := fmt.Sscanf(date, "%d-%d-%d", &y, &m, &d); err != nil || m < 1 || m > 12 {
		return date
	}
	return fmt.Sprintf("%d. %s %d", d, slovakMonths[m-1], y)
}

// Reader is the full devotional reader page.
func Reader(view ReaderView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<!DOCTYPE html><html lang="sk"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>Chlieb náš každodenný</title>`+
				`<link rel="stylesheet" href="/static/app.css"></head><body>`); err != nil {
			return err
		}

		if err := header(view).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main class="content">`); err != nil {
			return err
		}
		var body templ.Component
		if view.Devotional != nil {
			body = DevotionalContent(view.Devotional)
		} else {
			body = EmptyState(view.IsFuture)
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</main>`); err != nil {
			return err
		}

		if err := footer().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// header renders the date navigation bar and picker.
func header(view ReaderView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		disabled := func(has bool) string {
			if has {
				return ""
			}
			return ` class="nav-dimmed"`
		}

		_, err := fmt.Fprintf(w,
			`<header class="header"><h1>Chlieb náš každodenný</h1>`+
				`<nav class="date-nav">`+
				`<a href="%s" rel="nofollow"%s aria-label="Predchádzajúci deň">&larr;</a>`+
				`<span class="current-date">%s</span>`+
				`<a href="%s" rel="nofollow"%s aria-label="Nasledujúci deň">&rarr;</a>`+
				`</nav>`,
			templ.EscapeString(view.PrevURL), disabled(view.HasPrevious),
			templ.EscapeString(view.DisplayDate),
			templ.EscapeString(view.NextURL), disabled(view.HasNext),
		)
		if err != nil {
			return err
		}

		if len(view.AvailableDates) > 0 {
			if _, err := io.WriteString(w,
				`<details class="date-picker"><summary>Vybrať dátum</summary><ul>`); err != nil {
				return err
			}
			for _, d := range view.AvailableDates {
				current := ""
				if d == view.Date {
					current = ` class="current"`
				}
				if _, err := fmt.Fprintf(w, `<li%s><a href="/?date=%s&amp;nav=user">%s</a></li>`,
					current, templ.EscapeString(d), templ.EscapeString(DisplayDate(d))); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</ul></details>`); err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, `</header>`)
		return err
	})
}

// DevotionalContent renders a devotional: title, quote, body blocks, verses,
// prayer, questions and the podcast embed.
func DevotionalContent(d *model.Devotional) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<article class="devotional"><h2>%s</h2>`,
			templ.EscapeString(d.Title)); err != nil {
			return err
		}

		if d.Quote != "" {
			if _, err := fmt.Fprintf(w, `<blockquote class="quote">%s</blockquote>`,
				templ.EscapeString(d.Quote)); err != nil {
				return err
			}
		}

		if d.SpotifyEmbedURI != "" {
			if err := spotifyEmbed(d.SpotifyEmbedURI).Render(ctx, w); err != nil {
				return err
			}
		}

		if err := blocks(d.Text).Render(ctx, w); err != nil {
			return err
		}

		section := func(label, text string) error {
			if text == "" {
				return nil
			}
			_, err := fmt.Fprintf(w, `<section><h3>%s</h3><p>%s</p></section>`,
				label, templ.EscapeString(text))
			return err
		}
		if err := section("Verš na deň", d.VerseDay); err != nil {
			return err
		}
		if err := section("Modlitba", d.Prayer); err != nil {
			return err
		}
		if err := section("Otázky na zamyslenie", d.Questions); err != nil {
			return err
		}
		if err := section("Verš na večer", d.VerseEvening); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</article>`)
		return err
	})
}

// blocks renders Notion content blocks, grouping consecutive list items.
func blocks(bs []model.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		openList := ""
		closeList := func() error {
			if openList == "" {
				return nil
			}
			_, err := fmt.Fprintf(w, `</%s>`, openList)
			openList = ""
			return err
		}

		for _, b := range bs {
			tag := ""
			switch b.Type {
			case "paragraph":
				tag = "p"
			case "heading_1":
				tag = "h2"
			case "heading_2":
				tag = "h3"
			case "heading_3":
				tag = "h4"
			case "quote":
				tag = "blockquote"
			case "bulleted_list_item", "numbered_list_item":
			default:
				continue
			}

			if b.Type == "bulleted_list_item" || b.Type == "numbered_list_item" {
				want := "ul"
				if b.Type == "numbered_list_item" {
					want = "ol"
				}
				if openList != want {
					if err := closeList(); err != nil {
						return err
					}
					if _, err := fmt.Fprintf(w, `<%s>`, want); err != nil {
						return err
					}
					openList = want
				}
				if _, err := io.WriteString(w, `<li>`); err != nil {
					return err
				}
				if err := richText(b.RichText()).Render(ctx, w); err != nil {
					return err
				}
				if _, err := io.WriteString(w, `</li>`); err != nil {
					return err
				}
				continue
			}

			if err := closeList(); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `<%s>`, tag); err != nil {
				return err
			}
			if err := richText(b.RichText()).Render(ctx, w); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `</%s>`, tag); err != nil {
				return err
			}
		}
		return closeList()
	})
}

// richText renders formatted text runs with their annotations.
func richText(nodes []model.TextNode) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, n := range nodes {
			text := templ.EscapeString(n.PlainText)
			if n.Annotations.Code {
				text = "<code>" + text + "</code>"
			}
			if n.Annotations.Bold {
				text = "<strong>" + text + "</strong>"
			}
			if n.Annotations.Italic {
				text = "<em>" + text + "</em>"
			}
			if n.Annotations.Underline {
				text = "<u>" + text + "</u>"
			}
			if n.Annotations.Strikethrough {
				text = "<s>" + text + "</s>"
			}
			if n.Href != "" {
				text = fmt.Sprintf(`<a href="%s" rel="noopener">%s</a>`,
					templ.EscapeString(n.Href), text)
			}
			if _, err := io.WriteString(w, text); err != nil {
				return err
			}
		}
		return nil
	})
}

// spotifyEmbed renders the podcast player iframe for a spotify:episode: URI.
func spotifyEmbed(uri string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		const prefix = "spotify:episode:"
		id := uri
		if len(uri) > len(prefix) && uri[:len(prefix)] == prefix {
			id = uri[len(prefix):]
		}
		_, err := fmt.Fprintf(w,
			`<iframe class="podcast" src="https://open.spotify.com/embed/episode/%s" `+
				`width="100%%" height="152" frameborder="0" loading="lazy" `+
				`allow="autoplay; clipboard-write; encrypted-media; fullscreen; picture-in-picture"></iframe>`,
			templ.EscapeString(id))
		return err
	})
}

// EmptyState renders the "no content" message, future-aware.
func EmptyState(isFuture bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		msg := "Pre tento deň sme nenašli žiadne zamyslenie."
		if isFuture {
			msg = "Toto zamyslenie ešte nie je dostupné. Vráť sa v ten deň."
		}
		_, err := fmt.Fprintf(w, `<div class="empty-state"><p>%s</p></div>`, msg)
		return err
	})
}

func footer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<footer class="footer"><p>Pomáhame ti zastaviť sa, načúvať a rásť. Každý deň.</p></footer>`)
		return err
	})
}
