// Package spotify is a minimal Spotify Web API client using the client
// credentials flow, scoped to listing a show's episodes for the embed sync.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/config"
)

const (
	defaultAPIBase   = "https://api.spotify.com/v1"
	defaultTokenURL  = "https://accounts.spotify.com/api/token"
	defaultTimeout   = 30 * time.Second
	episodePageLimit = 50
)

// Episode is a Spotify show episode.
type Episode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
	URI         string `json:"uri"`
}

// Client handles communication with the Spotify Web API.
type Client struct {
	client       *http.Client
	apiBase      string
	tokenURL     string
	clientID     string
	clientSecret string
	showID       string
}

// NewClient creates a Spotify client for the configured show.
func NewClient(cfg config.SpotifyConfig) *Client {
	return &Client{
		client:       &http.Client{Timeout: defaultTimeout},
		apiBase:      defaultAPIBase,
		tokenURL:     defaultTokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		showID:       cfg.ShowID,
	}
}

// AccessToken obtains a client-credentials access token.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Spotify auth failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Spotify auth failed (%d): %s", resp.StatusCode, string(body))
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	return token.AccessToken, nil
}

// ShowEpisodes lists the show's most recent episodes.
func (c *Client) ShowEpisodes(ctx context.Context, token string, limit int) ([]Episode, error) {
	if limit <= 0 || limit > episodePageLimit {
		limit = episodePageLimit
	}

	url := fmt.Sprintf("%s/shows/%s/episodes?limit=%d", c.apiBase, c.showID, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch episodes: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read episodes response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Spotify API error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Items []Episode `json:"items"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse episodes response: %w", err)
	}
	return parsed.Items, nil
}

// EmbedURI returns the canonical embed URI for an episode.
func (e Episode) EmbedURI() string {
	if e.URI != "" {
		return e.URI
	}
	return "spotify:episode:" + e.ID
}
