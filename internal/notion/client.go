// Package notion is a thin client for the Notion REST API, scoped to the
// devotionals database: querying pages by date, listing dates and fetching
// page content blocks.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/config"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/model"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	// Notion allows roughly 3 requests per second per integration.
	requestDelay = 350 * time.Millisecond
)

// Client handles communication with the Notion API.
type Client struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	databaseID string
}

// NewClient creates a Notion API client for the configured database.
func NewClient(cfg config.NotionConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:    defaultBaseURL,
		apiKey:     cfg.APIKey,
		databaseID: cfg.DatabaseID,
	}
}

// Delay returns the politeness delay to keep between consecutive requests.
func (c *Client) Delay() time.Duration {
	return requestDelay
}

// ByDate retrieves the devotional for a canonical date, including its content
// blocks. Returns nil without error when no page exists for the date.
func (c *Client) ByDate(ctx context.Context, date string) (*model.Devotional, error) {
	page, err := c.pageByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	blocks, err := c.BlockChildren(ctx, page.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content for %s: %w", date, err)
	}

	d := convertPage(*page, blocks)
	return &d, nil
}

// All retrieves up to limit devotionals, newest first, including content blocks.
func (c *Client) All(ctx context.Context, limit int) ([]model.Devotional, error) {
	req := queryRequest{
		Sorts:    []sortSpec{{Property: "Date", Direction: "descending"}},
		PageSize: limit,
	}

	resp, err := c.query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch devotionals: %w", err)
	}

	devotionals := make([]model.Devotional, 0, len(resp.Results))
	for _, page := range resp.Results {
		blocks, err := c.BlockChildren(ctx, page.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch content for page %s: %w", page.ID, err)
		}
		devotionals = append(devotionals, convertPage(page, blocks))
	}

	return devotionals, nil
}

// Dates retrieves the canonical dates of every devotional in the database,
// newest first.
func (c *Client) Dates(ctx context.Context) ([]string, error) {
	req := queryRequest{
		Sorts: []sortSpec{{Property: "Date", Direction: "descending"}},
	}

	resp, err := c.query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dates: %w", err)
	}

	dates := make([]string, 0, len(resp.Results))
	for _, page := range resp.Results {
		if d := pageDate(page); d != "" {
			dates = append(dates, d)
		}
	}

	return dates, nil
}

// PageInfo is the page-level summary used by the sync commands, which never
// need the content blocks.
type PageInfo struct {
	ID              string
	Title           string
	Date            string
	SpotifyEmbedURI string
}

// PageInfoByDate retrieves page metadata for a date without fetching blocks.
// Returns nil without error when no page exists.
func (c *Client) PageInfoByDate(ctx context.Context, date string) (*PageInfo, error) {
	page, err := c.pageByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	return &PageInfo{
		ID:              page.ID,
		Title:           pageTitle(*page),
		Date:            pageDate(*page),
		SpotifyEmbedURI: pageSpotifyEmbed(*page),
	}, nil
}

// EpisodeNumber computes the 1-based position of a date in the ascending
// date ordering of the database, used as the iTunes episode number.
func (c *Client) EpisodeNumber(ctx context.Context, date string) (int, error) {
	req := queryRequest{
		Sorts:    []sortSpec{{Property: "Date", Direction: "ascending"}},
		PageSize: 100,
	}

	resp, err := c.query(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to compute episode number: %w", err)
	}

	for i, page := range resp.Results {
		if pageDate(page) == date {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("no page found for date %s", date)
}

// UpdateSpotifyEmbed writes the Spotify embed URI property on a page.
func (c *Client) UpdateSpotifyEmbed(ctx context.Context, pageID, embedURI string) error {
	payload := map[string]any{
		"properties": map[string]any{
			"Spotify Embed URI": map[string]any{"url": embedURI},
		},
	}

	if err := c.doJSON(ctx, http.MethodPatch, "/pages/"+url.PathEscape(pageID), payload, nil); err != nil {
		return fmt.Errorf("failed to update Spotify embed for page %s: %w", pageID, err)
	}
	return nil
}

// BlockChildren retrieves the content blocks of a page.
func (c *Client) BlockChildren(ctx context.Context, pageID string) ([]model.Block, error) {
	var resp blocksResponse
	if err := c.doJSON(ctx, http.MethodGet, "/blocks/"+url.PathEscape(pageID)+"/children", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// pageByDate queries the database for the single page matching a date.
func (c *Client) pageByDate(ctx context.Context, date string) (*pageJSON, error) {
	req := queryRequest{
		Filter: &filterSpec{
			Property: "Date",
			Date:     &dateFilter{Equals: date},
		},
	}

	resp, err := c.query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to query devotional for %s: %w", date, err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

func (c *Client) query(ctx context.Context, req queryRequest) (*queryResponse, error) {
	var resp queryResponse
	path := "/databases/" + url.PathEscape(c.databaseID) + "/query"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// doJSON performs a JSON request with exponential backoff retry on network
// failures, rate limiting and server errors.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Notion-Version", config.NotionVersion)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			continue
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error (HTTP %d)", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("notion API error (%d): %s", resp.StatusCode, string(respBody))
		}

		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
		}
		return nil
	}

	return fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
