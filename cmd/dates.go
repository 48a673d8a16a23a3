package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/devotional"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/notion"
)

var datesAll bool

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List available devotional dates",
	Long: `List the dates for which devotional content exists in Notion, one per
line, oldest first. By default far-future dates are hidden the same way the
reader hides them; --all lists everything.`,
	Run: runDates,
}

func init() {
	rootCmd.AddCommand(datesCmd)

	datesCmd.Flags().BoolVar(&datesAll, "all", false, "Include dates beyond the visibility horizon")
}

func runDates(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Notion.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	svc := devotional.NewService(notion.NewClient(cfg.Notion))
	cache := devotional.NewDateCache(svc, cfg.Debug || datesAll)

	for _, d := range cache.Load(context.Background()).Sorted() {
		fmt.Println(d)
	}
}
