// Package rsscom is a client for the RSS.com v4 podcast hosting API:
// episode listing and creation, keyword management and the presigned-upload
// flow for audio assets.
package rsscom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/config"
)

const (
	defaultBaseURL = "https://api.rss.com/v4"
	defaultTimeout = 2 * time.Minute
	// maxEpisodePage is the API's per-request episode listing cap.
	maxEpisodePage = 100
)

// DefaultDescription is the Slovak episode description applied to every
// uploaded episode.
const DefaultDescription = `<p>Pomáhame ti zastaviť sa, načúvať a rásť. Každý deň.</p><p></p><p>📖 Toto zamyslenie nájdeš aj na našom webe <a href="https://www.chliebnaskazdodenny.sk">chliebnaskazdodenny.sk</a></p><p>#chliebnaskazdodenny #zamyslenie #kazdyden #Boh #stisenie</p>`

// DefaultKeywords are attached to every uploaded episode.
var DefaultKeywords = []string{"chliebnaskazdodenny", "zamyslenie", "kazdyden", "Boh", "stisenie"}

// Client handles communication with the RSS.com API.
type Client struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	podcastID string
}

// NewClient creates an RSS.com client for the configured podcast.
func NewClient(cfg config.RSSConfig) *Client {
	return &Client{
		client:    &http.Client{Timeout: defaultTimeout},
		baseURL:   defaultBaseURL,
		apiKey:    cfg.APIKey,
		podcastID: cfg.PodcastID,
	}
}

// do performs an authenticated JSON request. A 204 or empty body decodes
// into nothing.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("RSS.com API error (%d): %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode == http.StatusNoContent || len(body) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// TestCredentials verifies the API key and podcast ID by fetching the
// podcast record.
func (c *Client) TestCredentials(ctx context.Context) error {
	var podcast struct {
		Title string `json:"title"`
	}
	if err := c.do(ctx, http.MethodGet, "/podcasts/"+c.podcastID, nil, &podcast); err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}
	return nil
}

// Episode is an RSS.com episode record.
type Episode struct {
	ID               json.Number `json:"id"`
	Title            string      `json:"title"`
	PublishDatetime  string      `json:"publish_datetime"`
	ScheduleDatetime string      `json:"schedule_datetime"`
}

// Date returns the episode's canonical publish date, preferring the publish
// timestamp over the schedule.
func (e Episode) Date() string {
	ts := e.PublishDatetime
	if ts == "" {
		ts = e.ScheduleDatetime
	}
	if len(ts) < 10 {
		return ""
	}
	return ts[:10]
}

// Episodes lists existing episodes, newest first.
func (c *Client) Episodes(ctx context.Context) ([]Episode, error) {
	path := fmt.Sprintf("/podcasts/%s/episodes?limit=%d", c.podcastID, maxEpisodePage)

	// The v4 API returns a root array; tolerate wrapped forms as well.
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}

	var episodes []Episode
	if err := json.Unmarshal(raw, &episodes); err == nil {
		return episodes, nil
	}

	var wrapped struct {
		Items    []Episode `json:"items"`
		Data     []Episode `json:"data"`
		Episodes []Episode `json:"episodes"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse episodes response: %w", err)
	}
	switch {
	case wrapped.Items != nil:
		return wrapped.Items, nil
	case wrapped.Data != nil:
		return wrapped.Data, nil
	default:
		return wrapped.Episodes, nil
	}
}

// FindEpisode locates an existing episode by title or publish date.
func FindEpisode(episodes []Episode, title, date string) *Episode {
	for i := range episodes {
		if episodes[i].Title == title || episodes[i].Date() == date {
			return &episodes[i]
		}
	}
	return nil
}

// DeleteEpisode removes an episode.
func (c *Client) DeleteEpisode(ctx context.Context, episodeID string) error {
	path := fmt.Sprintf("/podcasts/%s/episodes/%s", c.podcastID, episodeID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete episode %s: %w", episodeID, err)
	}
	return nil
}

// KeywordIDs resolves keyword labels to IDs, creating missing ones.
func (c *Client) KeywordIDs(ctx context.Context, keywords []string) ([]int64, error) {
	type keyword struct {
		ID    int64  `json:"id"`
		Label string `json:"label"`
	}

	var existing []keyword
	path := fmt.Sprintf("/podcasts/%s/keywords", c.podcastID)
	if err := c.do(ctx, http.MethodGet, path, nil, &existing); err != nil {
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}

	byLabel := make(map[string]int64, len(existing))
	for _, k := range existing {
		byLabel[k.Label] = k.ID
	}

	ids := make([]int64, 0, len(keywords))
	for _, label := range keywords {
		if id, ok := byLabel[label]; ok {
			ids = append(ids, id)
			continue
		}
		var created keyword
		if err := c.do(ctx, http.MethodPost, path, map[string]string{"label": label}, &created); err != nil {
			return nil, fmt.Errorf("failed to create keyword %q: %w", label, err)
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}

// presignedUpload is the asset upload grant.
type presignedUpload struct {
	ID        string `json:"id"`
	UploadURL string `json:"upload_url"`
}

// UploadAudio uploads an audio file through the presigned-upload flow and
// returns the resulting asset ID.
func (c *Client) UploadAudio(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}

	fileName := filePath
	if i := strings.LastIndexByte(filePath, '/'); i >= 0 {
		fileName = filePath[i+1:]
	}

	var grant presignedUpload
	path := fmt.Sprintf("/podcasts/%s/assets/presigned-uploads", c.podcastID)
	err = c.do(ctx, http.MethodPost, path, map[string]any{
		"filename":      fileName,
		"asset_type":    "audio",
		"expected_mime": "audio/mpeg",
	}, &grant)
	if err != nil {
		return "", fmt.Errorf("failed to request upload URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, grant.UploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("audio upload failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("audio upload failed (%d): %s", resp.StatusCode, string(body))
	}

	return grant.ID, nil
}

// CreateEpisodeRequest describes a new episode.
type CreateEpisodeRequest struct {
	Title         string
	AudioUploadID string
	// Date is the canonical publish date; episodes go live at 06:00 CET.
	Date          string
	EpisodeNumber int
	KeywordIDs    []int64
}

// CreateEpisode creates an episode from an uploaded audio asset. Future
// dates are scheduled rather than published immediately.
func (c *Client) CreateEpisode(ctx context.Context, req CreateEpisodeRequest) error {
	publishAt, err := time.Parse(time.RFC3339, req.Date+"T06:00:00+01:00")
	if err != nil {
		return fmt.Errorf("invalid episode date %q: %w", req.Date, err)
	}

	payload := map[string]any{
		"title":             req.Title,
		"description":       DefaultDescription,
		"audio_upload_id":   req.AudioUploadID,
		"schedule_datetime": publishAt.UTC().Format(time.RFC3339),
		"itunes_explicit":   false,
		"itunes_season":     1,
	}
	if req.EpisodeNumber > 0 {
		payload["itunes_episode"] = req.EpisodeNumber
	}
	if len(req.KeywordIDs) > 0 {
		payload["keyword_ids"] = req.KeywordIDs
	}

	path := fmt.Sprintf("/podcasts/%s/episodes", c.podcastID)
	if err := c.do(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("failed to create episode %q: %w", req.Title, err)
	}
	return nil
}
