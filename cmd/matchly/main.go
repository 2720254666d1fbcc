// Package main provides the matchly command line tool and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/matchly/internal/config"
	"github.com/jonathan/matchly/internal/logging"
)

var (
	configPath string
	debugLogs  bool
	jsonLogs   bool

	// populated by loadRuntime before any subcommand runs
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "matchly",
	Short: "Semantic resume to job description matching",
	Long: "Matchly scores how well a resume fits a job description using skill normalization, " +
		"semantic matching and a weighted five-part score, and explains the result.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Emit logs as JSON")
}

func loadRuntime(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded.MergeWithDefaults(config.Defaults())
	cfg.Debug = cfg.Debug || debugLogs
	cfg.LogJSON = cfg.LogJSON || jsonLogs

	l, err := logging.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
