// Package cmd implements the ebay-lister server commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebay-lister/internal/config"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "ebay-lister",
	Short: "Publish trading cards to eBay and keep listing metrics current",
	Long: "An API-first service that manages eBay seller accounts, runs the\n" +
		"staged publish pipeline for each listing, and periodically syncs\n" +
		"views, watchers, and bids for live listings.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config is expanded")

	rootCmd.AddCommand(serveCmd, migrateCmd, openapiCmd, versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the dotenv file, if present, then the YAML config.
// Variables already set in the process environment win over the file.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
