// Package config loads the application configuration from YAML with
// environment-variable overrides for credentials.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// NotionVersion is the Notion API version header value the clients send.
const NotionVersion = "2022-06-28"

// NotionConfig holds Notion integration credentials.
type NotionConfig struct {
	// APIKey is the Notion integration token.
	APIKey string `yaml:"api_key"`
	// DatabaseID is the devotionals database.
	DatabaseID string `yaml:"database_id"`
}

// Validate checks that the Notion credentials are present.
func (c NotionConfig) Validate() error {
	if c.APIKey == "" || c.DatabaseID == "" {
		return errors.New("NOTION_API_KEY and NOTION_DATABASE_ID must be set")
	}
	return nil
}

// RSSConfig holds RSS.com hosting credentials.
type RSSConfig struct {
	APIKey    string `yaml:"api_key"`
	PodcastID string `yaml:"podcast_id"`
}

// Validate checks that the RSS.com credentials are present.
func (c RSSConfig) Validate() error {
	if c.APIKey == "" || c.PodcastID == "" {
		return errors.New("RSS_API_KEY and RSS_PODCAST_ID must be set")
	}
	return nil
}

// SpotifyConfig holds Spotify client-credentials settings.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	ShowID       string `yaml:"show_id"`
}

// Validate checks that the Spotify credentials are present.
func (c SpotifyConfig) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" || c.ShowID == "" {
		return errors.New("SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and SPOTIFY_SHOW_ID must be set")
	}
	return nil
}

// Configured reports whether Spotify credentials are available at all; the
// embed sync is skipped entirely when they are not.
func (c SpotifyConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.ShowID != ""
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the web app.
	Listen string `yaml:"listen"`

	// Debug disables the one-week future-visibility horizon on available
	// devotional dates.
	Debug bool `yaml:"debug"`

	// EpisodesDir is the directory scanned for podcast episodes to upload.
	EpisodesDir string `yaml:"episodes_dir"`

	// EmbedSyncCron schedules the daily Spotify embed sync (cron syntax).
	EmbedSyncCron string `yaml:"embed_sync_cron"`

	Notion  NotionConfig  `yaml:"notion"`
	RSS     RSSConfig     `yaml:"rss"`
	Spotify SpotifyConfig `yaml:"spotify"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:        ":8080",
		Debug:         false,
		EpisodesDir:   "",
		EmbedSyncCron: "0 6 * * *",
	}
}

// Normalize fills in missing values so partially-filled configs behave.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.EmbedSyncCron == "" {
		c.EmbedSyncCron = "0 6 * * *"
	}
}

// applyEnv overlays credentials and flags from the environment. Environment
// variables win over the YAML file so deployments never need secrets on disk.
func (c *Config) applyEnv() {
	overlay := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	overlay(&c.Notion.APIKey, "NOTION_API_KEY")
	overlay(&c.Notion.DatabaseID, "NOTION_DATABASE_ID")
	overlay(&c.RSS.APIKey, "RSS_API_KEY")
	overlay(&c.RSS.PodcastID, "RSS_PODCAST_ID")
	overlay(&c.Spotify.ClientID, "SPOTIFY_CLIENT_ID")
	overlay(&c.Spotify.ClientSecret, "SPOTIFY_CLIENT_SECRET")
	overlay(&c.Spotify.ShowID, "SPOTIFY_SHOW_ID")
	overlay(&c.EpisodesDir, "EPISODES_DIR")

	if v := os.Getenv("DEBUG_DATES"); v == "1" || v == "true" {
		c.Debug = true
	}
}

// Load reads the configuration from the given YAML path.
//
// A missing file is not an error: defaults plus environment overrides are
// returned, so a fully env-configured deployment needs no config file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.Normalize()
	cfg.applyEnv()
	return cfg, nil
}
