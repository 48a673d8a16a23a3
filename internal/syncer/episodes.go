// Package syncer orchestrates the operator-side synchronization flows:
// uploading local podcast episodes to RSS.com and back-filling Spotify embed
// URIs into Notion. All loops are sequential with politeness delays.
package syncer

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/episodes"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/notion"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/rsscom"
)

// uploadDelay paces consecutive episode uploads.
const uploadDelay = 1 * time.Second

// Stats tracks a sync run.
type Stats struct {
	Total           int
	Uploaded        int
	Replaced        int
	Skipped         int
	Unchanged       int
	NeedsConversion int
	Failed          int
}

// EpisodeSyncer uploads scanned episodes to RSS.com, titling them from their
// Notion pages.
type EpisodeSyncer struct {
	notion    *notion.Client
	rss       *rsscom.Client
	logger    *log.Logger
	errLogger *log.Logger
}

// NewEpisodeSyncer creates an EpisodeSyncer.
func NewEpisodeSyncer(notionClient *notion.Client, rssClient *rsscom.Client) *EpisodeSyncer {
	return &EpisodeSyncer{
		notion:    notionClient,
		rss:       rssClient,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// SyncOptions controls an episode sync run.
type SyncOptions struct {
	EpisodesDir string
	StartDate   string
	EndDate     string
	DryRun      bool
	// Replace deletes an already-hosted episode and uploads the local audio
	// in its place, for episodes whose master was re-cut after upload.
	Replace bool
}

// Sync scans the episodes directory and uploads every episode that has a
// Notion page and is not already hosted.
func (s *EpisodeSyncer) Sync(ctx context.Context, opts SyncOptions) (*Stats, error) {
	stats := &Stats{}

	if err := s.rss.TestCredentials(ctx); err != nil {
		return nil, err
	}

	s.logger.Printf("Scanning episodes directory: %s", opts.EpisodesDir)
	found, err := episodes.Scan(opts.EpisodesDir, episodes.Options{
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
	})
	if err != nil {
		return nil, err
	}

	stats.Total = len(found)
	s.logger.Printf("Found %d episodes to process", stats.Total)

	existing, err := s.rss.Episodes(ctx)
	if err != nil {
		s.errLogger.Printf("Could not fetch existing episodes, continuing without duplicate detection: %v", err)
		existing = nil
	}

	for idx, ep := range found {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		progress := fmt.Sprintf("[%d/%d]", idx+1, stats.Total)

		if ep.NeedsConversion {
			s.logger.Printf("%s Skipping %s: WAV master %s needs MP3 conversion first", progress, ep.FolderName, ep.AudioFile)
			stats.NeedsConversion++
			stats.Skipped++
			continue
		}

		page, err := s.notion.PageInfoByDate(ctx, ep.Date)
		if err != nil {
			s.errLogger.Printf("Failed to look up Notion page for %s: %v", ep.Date, err)
			stats.Failed++
			continue
		}
		if page == nil {
			s.logger.Printf("%s Skipping %s: no Notion page for %s", progress, ep.FolderName, ep.Date)
			stats.Skipped++
			continue
		}

		if hosted := rsscom.FindEpisode(existing, page.Title, ep.Date); hosted != nil {
			if !opts.Replace {
				s.logger.Printf("%s Skipping %s: already hosted", progress, ep.FolderName)
				stats.Unchanged++
				continue
			}
			if opts.DryRun {
				s.logger.Printf("%s Would replace hosted episode for %s", progress, ep.Date)
				stats.Replaced++
				stats.Uploaded++
				continue
			}
			s.logger.Printf("%s Replacing hosted episode for %s", progress, ep.Date)
			if err := s.rss.DeleteEpisode(ctx, hosted.ID.String()); err != nil {
				s.errLogger.Printf("Failed to delete hosted episode for %s: %v", ep.Date, err)
				stats.Failed++
				continue
			}
			stats.Replaced++
		}

		if opts.DryRun {
			s.logger.Printf("%s Would upload %s (%s)", progress, page.Title, ep.Date)
			stats.Uploaded++
			continue
		}

		s.logger.Printf("%s Uploading %s (%s)...", progress, page.Title, ep.Date)
		if err := s.upload(ctx, ep.AudioPath, page.Title, ep.Date); err != nil {
			s.errLogger.Printf("Failed to upload %s: %v", ep.FolderName, err)
			stats.Failed++
			continue
		}
		stats.Uploaded++

		if idx < len(found)-1 {
			time.Sleep(uploadDelay)
		}
	}

	return stats, nil
}

func (s *EpisodeSyncer) upload(ctx context.Context, audioPath, title, date string) error {
	assetID, err := s.rss.UploadAudio(ctx, audioPath)
	if err != nil {
		return err
	}

	// Both enrichments are best-effort; the episode uploads without them.
	episodeNumber, err := s.notion.EpisodeNumber(ctx, date)
	if err != nil {
		s.errLogger.Printf("Could not compute episode number for %s: %v", date, err)
		episodeNumber = 0
	}

	keywordIDs, err := s.rss.KeywordIDs(ctx, rsscom.DefaultKeywords)
	if err != nil {
		s.errLogger.Printf("Could not resolve keywords: %v", err)
		keywordIDs = nil
	}

	return s.rss.CreateEpisode(ctx, rsscom.CreateEpisodeRequest{
		Title:         title,
		AudioUploadID: assetID,
		Date:          date,
		EpisodeNumber: episodeNumber,
		KeywordIDs:    keywordIDs,
	})
}

// PrintSummary writes a run summary.
func (s *EpisodeSyncer) PrintSummary(stats *Stats) {
	s.logger.Println("")
	s.logger.Println("=== Episode Sync Summary ===")
	s.logger.Printf("Total:             %d", stats.Total)
	s.logger.Printf("Uploaded:          %d", stats.Uploaded)
	s.logger.Printf("Replaced:          %d", stats.Replaced)
	s.logger.Printf("Already hosted:    %d", stats.Unchanged)
	s.logger.Printf("Skipped:           %d", stats.Skipped)
	s.logger.Printf("Needs conversion:  %d", stats.NeedsConversion)
	s.logger.Printf("Failed:            %d", stats.Failed)
}
