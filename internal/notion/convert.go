package notion

import (
	"strings"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/model"
)

// queryRequest is the body of a database query.
type queryRequest struct {
	Filter   *filterSpec `json:"filter,omitempty"`
	Sorts    []sortSpec  `json:"sorts,omitempty"`
	PageSize int         `json:"page_size,omitempty"`
}

type filterSpec struct {
	Property string      `json:"property"`
	Date     *dateFilter `json:"date,omitempty"`
}

type dateFilter struct {
	Equals string `json:"equals,omitempty"`
}

type sortSpec struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// queryResponse is a database query result page.
type queryResponse struct {
	Results []pageJSON `json:"results"`
}

// blocksResponse is a block children listing.
type blocksResponse struct {
	Results []model.Block `json:"results"`
}

// pageJSON is a Notion page with the property shapes the devotionals
// database uses.
type pageJSON struct {
	ID             string                  `json:"id"`
	CreatedTime    string                  `json:"created_time"`
	LastEditedTime string                  `json:"last_edited_time"`
	URL            string                  `json:"url"`
	Properties     map[string]propertyJSON `json:"properties"`
}

// propertyJSON covers the property value kinds present on devotional pages:
// title, rich text, date and url.
type propertyJSON struct {
	Title    []model.TextNode  `json:"title,omitempty"`
	RichText []model.TextNode  `json:"rich_text,omitempty"`
	Date     *datePropertyJSON `json:"date,omitempty"`
	URL      *string           `json:"url,omitempty"`
}

type datePropertyJSON struct {
	Start string `json:"start"`
}

// prop looks a property up under any of the given names. The database has
// carried both capitalized and lower-case property names over time.
func prop(p pageJSON, names ...string) (propertyJSON, bool) {
	for _, name := range names {
		if v, ok := p.Properties[name]; ok {
			return v, true
		}
	}
	return propertyJSON{}, false
}

func richTextProp(p pageJSON, names ...string) string {
	v, ok := prop(p, names...)
	if !ok {
		return ""
	}
	return model.PlainText(v.RichText)
}

func pageTitle(p pageJSON) string {
	v, ok := prop(p, "Title", "title")
	if !ok {
		return ""
	}
	return model.PlainText(v.Title)
}

// pageDate returns the page's canonical date, dropping any time component
// Notion may attach.
func pageDate(p pageJSON) string {
	v, ok := prop(p, "Date", "date")
	if !ok || v.Date == nil || v.Date.Start == "" {
		return ""
	}
	date, _, _ := strings.Cut(v.Date.Start, "T")
	return date
}

func pageSpotifyEmbed(p pageJSON) string {
	v, ok := prop(p, "Spotify Embed URI", "spotifyEmbedUri")
	if !ok || v.URL == nil {
		return ""
	}
	return *v.URL
}

// convertPage maps a Notion page plus its content blocks to a Devotional.
func convertPage(p pageJSON, blocks []model.Block) model.Devotional {
	return model.Devotional{
		ID:              p.ID,
		Title:           pageTitle(p),
		Date:            pageDate(p),
		Quote:           richTextProp(p, "Quote", "quote"),
		Text:            blocks,
		SpotifyEmbedURI: pageSpotifyEmbed(p),
		Questions:       richTextProp(p, "Questions", "questions"),
		VerseDay:        richTextProp(p, "VerseDay", "verseDay"),
		Prayer:          richTextProp(p, "Prayer", "prayer"),
		VerseEvening:    richTextProp(p, "VerseEvening", "verseEvening"),
		CreatedAt:       p.CreatedTime,
		UpdatedAt:       p.LastEditedTime,
		URL:             p.URL,
	}
}
