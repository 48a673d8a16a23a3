// Package bible fetches Slovak verse text from the bible4u.net passage API.
package bible

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://bible4u.net/api/v1"
	// DefaultTranslation is the Roháček Slovak translation.
	DefaultTranslation = "ROH"
	defaultTimeout     = 15 * time.Second
)

// Reference is a parsed Slovak verse reference such as "Ján 3,16-17".
type Reference struct {
	Book       string
	Chapter    int
	StartVerse int
	// EndVerse is 0 for single-verse references.
	EndVerse int
}

// "Book Chapter,Verse" or "Book Chapter,StartVerse-EndVerse"; both "," and
// ":" are accepted as the chapter/verse separator.
var referencePattern = regexp.MustCompile(`^(.+?)\s+(\d+)[,:](\d+)(?:-(\d+))?$`)

// ParseReference parses a Slovak verse reference. The book name is matched
// case-insensitively against the known names and abbreviations.
func ParseReference(reference string) (Reference, error) {
	normalized := strings.ToLower(strings.TrimSpace(reference))

	m := referencePattern.FindStringSubmatch(normalized)
	if m == nil {
		return Reference{}, fmt.Errorf("unparseable verse reference %q", reference)
	}

	book, ok := bookAbbreviations[strings.TrimSpace(m[1])]
	if !ok {
		return Reference{}, fmt.Errorf("unknown book %q", m[1])
	}

	chapter, _ := strconv.Atoi(m[2])
	start, _ := strconv.Atoi(m[3])
	end := 0
	if m[4] != "" {
		end, _ = strconv.Atoi(m[4])
	}

	return Reference{Book: book, Chapter: chapter, StartVerse: start, EndVerse: end}, nil
}

// Client fetches passages from bible4u.net.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a bible4u.net client.
func NewClient() *Client {
	return &Client{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: defaultBaseURL,
	}
}

type passageResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Verses []struct {
			Verse int    `json:"verse"`
			Text  string `json:"text"`
		} `json:"verses"`
	} `json:"data"`
}

// Passage fetches the text for a parsed reference in the given translation,
// joining multi-verse ranges with spaces.
func (c *Client) Passage(ctx context.Context, ref Reference, translation string) (string, error) {
	if translation == "" {
		translation = DefaultTranslation
	}

	last := ref.EndVerse
	if last == 0 {
		last = ref.StartVerse
	}

	url := fmt.Sprintf("%s/passage/%s/%s?start-chapter=%d&start-verse=%d&end-verse=%d",
		c.baseURL, translation, ref.Book, ref.Chapter, ref.StartVerse, last)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch passage: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read passage response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bible4u API error (%d)", resp.StatusCode)
	}

	var parsed passageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse passage response: %w", err)
	}
	if !parsed.Success || len(parsed.Data.Verses) == 0 {
		return "", fmt.Errorf("no verses returned for %s %d,%d", ref.Book, ref.Chapter, ref.StartVerse)
	}

	texts := make([]string, len(parsed.Data.Verses))
	for i, v := range parsed.Data.Verses {
		texts[i] = v.Text
	}
	return strings.Join(texts, " "), nil
}

// Verse resolves a raw Slovak reference to its text.
func (c *Client) Verse(ctx context.Context, reference string) (string, error) {
	ref, err := ParseReference(reference)
	if err != nil {
		return "", err
	}
	return c.Passage(ctx, ref, DefaultTranslation)
}
