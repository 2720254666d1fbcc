package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/matchly/internal/classify"
	"github.com/jonathan/matchly/internal/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [TEXT]",
	Short: "Detect the technical domain of a job description",
	Long: `Classify text into a technical domain (software, data, ai, devops, cloud, qa, security).
Text with no IT signal is reported as rejected.

The text is read from --file, from the arguments, or from stdin when neither is given.`,
	RunE: runClassify,
}

var classifyFile string

func init() {
	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "Read the text from this file")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := classifyInput(cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to classify")
	}

	result := classify.New().Classify(text)
	return writeJSON(cmd, "", types.ClassifyResponse{
		Domain:       result.Domain,
		Rejected:     result.Rejected,
		Scores:       result.Scores,
		HasITMarkers: result.HasITMarkers,
	})
}

func classifyInput(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case classifyFile != "":
		data, err := os.ReadFile(classifyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		var sb strings.Builder
		if _, err := io.Copy(&sb, cmd.InOrStdin()); err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return sb.String(), nil
	}
}
