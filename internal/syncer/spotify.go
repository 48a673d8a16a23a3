package syncer

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/notion"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/spotify"
)

// EmbedStats tracks a Spotify embed sync run.
type EmbedStats struct {
	Total     int
	Updated   int
	Unchanged int
	Unmatched int
	Failed    int
}

// EmbedSyncer back-fills Spotify embed URIs into Notion once episodes have
// synced from the host to Spotify (typically a day or two after upload).
type EmbedSyncer struct {
	notion    *notion.Client
	spotify   *spotify.Client
	logger    *log.Logger
	errLogger *log.Logger
}

// NewEmbedSyncer creates an EmbedSyncer.
func NewEmbedSyncer(notionClient *notion.Client, spotifyClient *spotify.Client) *EmbedSyncer {
	return &EmbedSyncer{
		notion:    notionClient,
		spotify:   spotifyClient,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// Sync matches recent Spotify episodes to Notion pages by release date and
// writes the embed URI for pages that do not have one yet.
func (s *EmbedSyncer) Sync(ctx context.Context) (*EmbedStats, error) {
	stats := &EmbedStats{}

	token, err := s.spotify.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	eps, err := s.spotify.ShowEpisodes(ctx, token, 0)
	if err != nil {
		return nil, err
	}

	stats.Total = len(eps)
	s.logger.Printf("Found %d Spotify episodes to check", stats.Total)

	for _, ep := range eps {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		date := ep.ReleaseDate
		if date == "" {
			stats.Unmatched++
			continue
		}

		page, err := s.notion.PageInfoByDate(ctx, date)
		if err != nil {
			s.errLogger.Printf("Failed to look up Notion page for %s: %v", date, err)
			stats.Failed++
			continue
		}
		if page == nil {
			stats.Unmatched++
			continue
		}

		if page.SpotifyEmbedURI != "" {
			stats.Unchanged++
			continue
		}

		s.logger.Printf("Updating embed for %s (%s)", page.Title, date)
		if err := s.notion.UpdateSpotifyEmbed(ctx, page.ID, ep.EmbedURI()); err != nil {
			s.errLogger.Printf("Failed to update embed for %s: %v", date, err)
			stats.Failed++
			continue
		}
		stats.Updated++

		time.Sleep(s.notion.Delay())
	}

	return stats, nil
}

// PrintSummary writes a run summary.
func (s *EmbedSyncer) PrintSummary(stats *EmbedStats) {
	s.logger.Println("")
	s.logger.Println("=== Spotify Embed Sync Summary ===")
	s.logger.Printf("Checked:     %d", stats.Total)
	s.logger.Printf("Updated:     %d", stats.Updated)
	s.logger.Printf("Unchanged:   %d", stats.Unchanged)
	s.logger.Printf("Unmatched:   %d", stats.Unmatched)
	s.logger.Printf("Failed:      %d", stats.Failed)
}
