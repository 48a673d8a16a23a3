package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "chlieb",
	Short: "Chlieb náš každodenný",
	Long:  "Web app and podcast sync tooling for the Chlieb náš každodenný daily devotional.",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path (credentials may also come from the environment)")
}

// loadConfig reads the YAML config plus environment overrides.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgPath)
}
