package model

// Devotional is a single day's authored reading, sourced from the Notion
// database. It is read-only from the application's perspective and identified
// by its Date (canonical YYYY-MM-DD) for lookup purposes.
type Devotional struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Date            string  `json:"date"`
	Quote           string  `json:"quote"`
	Text            []Block `json:"text"`
	SpotifyEmbedURI string  `json:"spotifyEmbedUri"`
	Questions       string  `json:"questions"`
	VerseDay        string  `json:"verseDay"`
	Prayer          string  `json:"prayer"`
	VerseEvening    string  `json:"verseEvening"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
	URL             string  `json:"url"`
}

// Block is a Notion content block. Notion's wire format is polymorphic: the
// Type field names which of the payload fields is populated.
type Block struct {
	ID               string         `json:"id,omitempty"`
	Type             string         `json:"type"`
	Paragraph        *RichTextBlock `json:"paragraph,omitempty"`
	Heading1         *RichTextBlock `json:"heading_1,omitempty"`
	Heading2         *RichTextBlock `json:"heading_2,omitempty"`
	Heading3         *RichTextBlock `json:"heading_3,omitempty"`
	BulletedListItem *RichTextBlock `json:"bulleted_list_item,omitempty"`
	NumberedListItem *RichTextBlock `json:"numbered_list_item,omitempty"`
	Quote            *RichTextBlock `json:"quote,omitempty"`
}

// RichText returns the rich text payload for the block's declared type.
func (b Block) RichText() []TextNode {
	switch b.Type {
	case "paragraph":
		if b.Paragraph != nil {
			return b.Paragraph.RichText
		}
	case "heading_1":
		if b.Heading1 != nil {
			return b.Heading1.RichText
		}
	case "heading_2":
		if b.Heading2 != nil {
			return b.Heading2.RichText
		}
	case "heading_3":
		if b.Heading3 != nil {
			return b.Heading3.RichText
		}
	case "bulleted_list_item":
		if b.BulletedListItem != nil {
			return b.BulletedListItem.RichText
		}
	case "numbered_list_item":
		if b.NumberedListItem != nil {
			return b.NumberedListItem.RichText
		}
	case "quote":
		if b.Quote != nil {
			return b.Quote.RichText
		}
	}
	return nil
}

// RichTextBlock holds the rich text content shared by all text-bearing blocks.
type RichTextBlock struct {
	RichText []TextNode `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

// TextNode is one formatted run of text inside a rich text value.
type TextNode struct {
	Type        string      `json:"type"`
	Text        *TextValue  `json:"text,omitempty"`
	Annotations Annotations `json:"annotations"`
	PlainText   string      `json:"plain_text"`
	Href        string      `json:"href,omitempty"`
}

// TextValue is the raw content of a text node.
type TextValue struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Link is an inline link target.
type Link struct {
	URL string `json:"url"`
}

// Annotations carries Notion text formatting flags.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color"`
}

// PlainText flattens a rich text value into its unformatted string form.
func PlainText(nodes []TextNode) string {
	out := ""
	for _, n := range nodes {
		out += n.PlainText
	}
	return out
}
