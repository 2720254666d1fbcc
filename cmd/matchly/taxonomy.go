package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/matchly/internal/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Print or check the skill taxonomy",
	Long: `Print the active skill taxonomy as JSON. With --file, load and check a YAML
taxonomy file instead of the configured one.`,
	RunE: runTaxonomy,
}

var (
	taxonomyFile     string
	taxonomyCategory string
)

func init() {
	taxonomyCmd.Flags().StringVarP(&taxonomyFile, "file", "f", "", "YAML taxonomy file to load and check")
	taxonomyCmd.Flags().StringVar(&taxonomyCategory, "category", "", "Only print the skills of this category")
	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomy(cmd *cobra.Command, _ []string) error {
	var (
		tax *taxonomy.Taxonomy
		err error
	)
	if taxonomyFile != "" {
		tax, err = taxonomy.LoadFile(taxonomyFile)
	} else {
		tax, err = loadTaxonomy(cfg)
	}
	if err != nil {
		return err
	}

	if taxonomyCategory != "" {
		skills := tax.CategorySkills(taxonomyCategory)
		if skills == nil {
			return fmt.Errorf("unknown category %q", taxonomyCategory)
		}
		return writeJSON(cmd, "", map[string]any{
			"category": taxonomyCategory,
			"skills":   skills,
		})
	}

	return writeJSON(cmd, "", map[string]any{
		"categories":  tax.Categories(),
		"skill_count": len(tax.Skills()),
		"alias_count": tax.AliasCount(),
	})
}
