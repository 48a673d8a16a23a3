package cmd

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/bible"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/devotional"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/handlers"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/notion"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/spotify"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/syncer"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the devotional web server",
	Long:  `Start the web server that renders the daily devotional and serves the devotionals API.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := cfg.Notion.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		// Listen address: config, then PORT env, then the flag.
		listen := cfg.Listen
		if envPort := os.Getenv("PORT"); envPort != "" {
			listen = ":" + envPort
		}
		if port != "" {
			listen = ":" + port
		}

		notionClient := notion.NewClient(cfg.Notion)
		svc := devotional.NewService(notionClient)
		cache := devotional.NewDateCache(svc, cfg.Debug)
		bibleClient := bible.NewClient()
		store := session.New()

		app := fiber.New(fiber.Config{
			AppName: "Chlieb náš každodenný",
		})

		app.Use(logger.New())

		// Routes
		app.Static("/static", "./static")
		app.Get("/", handlers.ReaderHandler(svc, cache, store))

		devotionals := handlers.DevotionalsHandler(svc)
		app.Get("/api/devotionals", devotionals)
		app.Options("/api/devotionals", devotionals)

		verse := handlers.BibleVerseHandler(bibleClient)
		app.Get("/api/bible-verse", verse)
		app.Options("/api/bible-verse", verse)

		// Daily Spotify embed sync, when credentials are configured.
		if cfg.Spotify.Configured() {
			embedSync := syncer.NewEmbedSyncer(notionClient, spotify.NewClient(cfg.Spotify))
			sched := cron.New()
			_, err := sched.AddFunc(cfg.EmbedSyncCron, func() {
				stats, err := embedSync.Sync(context.Background())
				if err != nil {
					log.Printf("Spotify embed sync failed: %v", err)
					return
				}
				embedSync.PrintSummary(stats)
			})
			if err != nil {
				log.Fatalf("Invalid embed sync schedule %q: %v", cfg.EmbedSyncCron, err)
			}
			sched.Start()
			defer sched.Stop()
			log.Printf("Scheduled Spotify embed sync: %s", cfg.EmbedSyncCron)
		}

		log.Printf("Starting server on %s", listen)
		if err := app.Listen(listen); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to run the server on (overrides config)")
}
