package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/matchly/internal/observability"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Semantically match requirement terms against candidate terms",
	Long: `Match each requirement against the candidate terms and report the best match,
its confidence and its status (strong, partial or missing).

Example:
  matchly match --require "k8s,aws,react" --have "kubernetes,amazon web services,vue"`,
	RunE: runMatch,
}

var (
	matchRequire   string
	matchHave      string
	matchThreshold float64
	matchTable     bool
)

func init() {
	matchCmd.Flags().StringVar(&matchRequire, "require", "", "Comma-separated requirement terms (required)")
	matchCmd.Flags().StringVar(&matchHave, "have", "", "Comma-separated candidate terms")
	matchCmd.Flags().Float64Var(&matchThreshold, "threshold", 0, "Partial match threshold in (0, 1] (default from config)")
	matchCmd.Flags().BoolVar(&matchTable, "table", false, "Print a readable table instead of JSON")

	_ = matchCmd.MarkFlagRequired("require")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	requirements := splitTerms(matchRequire)
	if len(requirements) == 0 {
		return fmt.Errorf("--require needs at least one term")
	}
	if matchThreshold < 0 || matchThreshold > 1 {
		return fmt.Errorf("--threshold must be in (0, 1]")
	}
	threshold := matchThreshold
	if threshold == 0 {
		threshold = cfg.MatchThreshold
	}

	ctx := context.Background()
	eng, err := newEngine(ctx, cfg, false, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	results := eng.matcher.Match(ctx, requirements, splitTerms(matchHave), threshold)
	if matchTable {
		observability.NewPrinter(cmd.OutOrStdout()).PrintMatchResults(results)
		return nil
	}
	return writeJSON(cmd, "", map[string]any{
		"threshold": threshold,
		"results":   results,
	})
}

// splitTerms splits a comma-separated flag value, dropping blanks
func splitTerms(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
