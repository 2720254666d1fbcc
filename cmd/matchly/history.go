package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/matchly/internal/db"
	"github.com/jonathan/matchly/internal/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved analyses",
	Long:  "List and show analyses persisted by the server or by `analyze --save`.",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one saved analysis as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var (
	historyJobType  string
	historyMinScore int
	historyLimit    int
	historyOffset   int
)

func init() {
	historyListCmd.Flags().StringVar(&historyJobType, "job-type", "", "Only list analyses of this job domain")
	historyListCmd.Flags().IntVar(&historyMinScore, "min-score", 0, "Only list analyses scoring at least this much")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", db.DefaultListLimit, "Maximum number of analyses to list")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "Number of analyses to skip")

	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory(ctx context.Context) (db.Store, error) {
	store, err := db.Open(ctx, db.Options{DatabaseURL: cfg.DatabaseURL, SQLitePath: cfg.SQLitePath})
	if errors.Is(err, db.ErrNoBackend) {
		return nil, fmt.Errorf("%w: set database_url or sqlite_path", err)
	}
	return store, err
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListAnalyses(ctx, db.ListFilter{
		JobType:  types.JobType(historyJobType),
		MinScore: historyMinScore,
		Limit:    historyLimit,
		Offset:   historyOffset,
	})
	if err != nil {
		return err
	}
	return writeJSON(cmd, "", map[string]any{"analyses": records})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.GetAnalysis(ctx, args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd, "", result)
}
