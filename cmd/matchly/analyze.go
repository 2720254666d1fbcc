package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/matchly/internal/fetch"
	"github.com/jonathan/matchly/internal/ingestion"
	"github.com/jonathan/matchly/internal/observability"
	"github.com/jonathan/matchly/internal/pipeline"
	"github.com/jonathan/matchly/internal/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: `Extract skills from a resume (PDF, DOCX, TXT, MD or HTML) and a job description,
score the match and print the full analysis as JSON.

The job description comes from exactly one of --jd, --jd-text or --jd-url.`,
	RunE: runAnalyze,
}

var (
	analyzeResume   string
	analyzeJDFile   string
	analyzeJDText   string
	analyzeJDURL    string
	analyzeOut      string
	analyzeBrowser  bool
	analyzeValidate bool
	analyzeVerbose  bool
	analyzeSave     bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to the resume file (required)")
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd", "", "Path to a job description file")
	analyzeCmd.Flags().StringVar(&analyzeJDText, "jd-text", "", "Job description text")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL of a job posting to fetch")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the JSON result to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render job postings with too little text in a headless browser")
	analyzeCmd.Flags().BoolVar(&analyzeValidate, "validate", false, "Validate the result against the analysis JSON schema")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print human-readable summaries to stderr")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Persist the analysis to the configured store")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("jd", "jd-text", "jd-url")
	analyzeCmd.MarkFlagsOneRequired("jd", "jd-text", "jd-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	resumeText, resumeMeta, err := ingestion.IngestFromFile(analyzeResume, cfg.MaxUploadBytes)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	logger.Debug("resume ingested",
		zap.String("filename", resumeMeta.Filename),
		zap.String("format", string(resumeMeta.Format)),
		zap.Int("chars", resumeMeta.Chars))

	jdText, jdSource, err := loadJobDescription(ctx)
	if err != nil {
		return err
	}
	if n := utf8.RuneCountInString(jdText); cfg.MaxJDChars > 0 && n > cfg.MaxJDChars {
		return fmt.Errorf("job description is %d characters, limit is %d", n, cfg.MaxJDChars)
	}

	eng, err := newEngine(ctx, cfg, analyzeSave, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	verbose := analyzeVerbose || cfg.Verbose
	printer := observability.NewPrinter(cmd.ErrOrStderr())

	result, err := eng.analyzer.Analyze(ctx, pipeline.Input{
		ResumeText:         resumeText,
		JobDescriptionText: jdText,
		Filename:           resumeMeta.Filename,
		JDSource:           jdSource,
	})
	if err != nil {
		return err
	}

	if verbose {
		printer.PrintJobDescription(result.JobDescription)
		printer.PrintMatchScore(result.Detail)
		printer.PrintInsights(result.Insights)
	}

	if analyzeValidate {
		if err := schemas.ValidateAnalysis(result); err != nil {
			return fmt.Errorf("analysis failed schema validation: %w", err)
		}
	}

	return writeJSON(cmd, analyzeOut, result)
}

// loadJobDescription reads the job description from whichever source flag was set
func loadJobDescription(ctx context.Context) (text, source string, err error) {
	switch {
	case analyzeJDText != "":
		text = ingestion.CleanText(analyzeJDText)
		if text == "" {
			return "", "", fmt.Errorf("--jd-text is empty")
		}
		return text, "text", nil
	case analyzeJDURL != "":
		text, _, err = ingestion.IngestURL(ctx, analyzeJDURL, fetch.PostingOptions{
			UseBrowser: analyzeBrowser || cfg.UseBrowser,
			Logger:     logger,
		})
		if err != nil {
			return "", "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		return text, analyzeJDURL, nil
	default:
		text, _, err = ingestion.IngestFromFile(analyzeJDFile, cfg.MaxUploadBytes)
		if err != nil {
			return "", "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, filepath.Base(analyzeJDFile), nil
	}
}

// writeJSON writes v as indented JSON to path, or to the command's stdout when path is empty
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("wrote output", zap.String("path", path))
	return nil
}
