package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/matchly/internal/parsing"
	"github.com/jonathan/matchly/internal/types"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize TERM...",
	Short: "Print the canonical form and category of skill terms",
	Long: `Normalize skill terms through the alias table and report their taxonomy category.

Example:
  matchly normalize k8s "React.js" golang`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	tax, err := loadTaxonomy(cfg)
	if err != nil {
		return err
	}
	norm := parsing.NewNormalizer(tax)

	skills := make([]types.NormalizedSkill, 0, len(args))
	for _, raw := range args {
		skills = append(skills, types.NormalizedSkill{
			Raw:       raw,
			Canonical: norm.Normalize(raw),
			Category:  norm.Category(raw),
		})
	}
	return writeJSON(cmd, "", map[string]any{"skills": skills})
}
