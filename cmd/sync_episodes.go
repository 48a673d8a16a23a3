package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/notion"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/rsscom"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/syncer"
)

var (
	syncStartDate string
	syncEndDate   string
	syncDryRun    bool
	syncReplace   bool
)

var syncEpisodesCmd = &cobra.Command{
	Use:   "sync-episodes",
	Short: "Upload local podcast episodes to RSS.com",
	Long: `Scan the episodes directory for mastered episodes and upload new ones
to RSS.com, titled from their Notion pages.

Episode folders are named YYYYMMDD_episode_name and must contain a FINAL/
subdirectory with the mastered MP3 or M4A. Folders holding only a WAV master
are reported and skipped until converted.

Examples:
  # Upload everything new
  chlieb sync-episodes

  # Upload a date range, without touching anything
  chlieb sync-episodes --start 2025-01-01 --end 2025-01-31 --dry-run

  # Re-upload a re-mastered episode over the hosted one
  chlieb sync-episodes --start 2025-01-05 --end 2025-01-05 --replace`,
	Run: runSyncEpisodes,
}

func init() {
	rootCmd.AddCommand(syncEpisodesCmd)

	syncEpisodesCmd.Flags().StringVar(&syncStartDate, "start", "", "Only episodes on or after this date (YYYY-MM-DD)")
	syncEpisodesCmd.Flags().StringVar(&syncEndDate, "end", "", "Only episodes on or before this date (YYYY-MM-DD)")
	syncEpisodesCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report what would be uploaded without uploading")
	syncEpisodesCmd.Flags().BoolVar(&syncReplace, "replace", false, "Delete and re-upload episodes that are already hosted")
}

func runSyncEpisodes(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Notion.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.RSS.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.EpisodesDir == "" {
		log.Fatal("episodes_dir must be configured (or EPISODES_DIR set)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	s := syncer.NewEpisodeSyncer(notion.NewClient(cfg.Notion), rsscom.NewClient(cfg.RSS))

	stats, err := s.Sync(ctx, syncer.SyncOptions{
		EpisodesDir: cfg.EpisodesDir,
		StartDate:   syncStartDate,
		EndDate:     syncEndDate,
		DryRun:      syncDryRun,
		Replace:     syncReplace,
	})
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Sync cancelled")
			if stats != nil {
				s.PrintSummary(stats)
			}
			os.Exit(1)
		}
		log.Fatalf("Sync failed: %v", err)
	}
	s.PrintSummary(stats)

	if stats.Failed > 0 {
		os.Exit(1)
	}
}
