package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/notion"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/spotify"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/syncer"
)

var syncSpotifyCmd = &cobra.Command{
	Use:   "sync-spotify",
	Short: "Back-fill Spotify embed URIs into Notion",
	Long: `Match recent Spotify show episodes to Notion devotional pages by release
date and write the Spotify embed URI for pages that do not have one yet.

Episodes typically appear on Spotify a day or two after the host upload, so
this runs daily (also scheduled inside 'serve').`,
	Run: runSyncSpotify,
}

func init() {
	rootCmd.AddCommand(syncSpotifyCmd)
}

func runSyncSpotify(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Notion.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.Spotify.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
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

	s := syncer.NewEmbedSyncer(notion.NewClient(cfg.Notion), spotify.NewClient(cfg.Spotify))

	stats, err := s.Sync(ctx)
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
