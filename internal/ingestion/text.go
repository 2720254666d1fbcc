// Package ingestion converts uploaded documents into clean plain text and
// validates uploads before they reach the matching engine.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings and whitespace while preserving line
// structure, so headings and bullets stay on their own lines.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\x00", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace runs and normalizes bullet glyphs to "- "
func cleanLine(line string) string {
	line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	for _, glyph := range []string{"• ", "· ", "▪ ", "◦ ", "* "} {
		if strings.HasPrefix(line, glyph) {
			return "- " + strings.TrimSpace(strings.TrimPrefix(line, glyph))
		}
	}
	return line
}

// IngestFromFile reads a document from disk, extracts and cleans its text and
// returns it with metadata. maxBytes <= 0 selects DefaultMaxUploadBytes.
func IngestFromFile(path string, maxBytes int64) (string, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	if err := ValidateUpload(name, data, maxBytes); err != nil {
		return "", nil, err
	}
	text, err := ExtractText(data, name)
	if err != nil {
		return "", nil, err
	}

	meta := NewMetadata(text, "")
	meta.Filename = name
	meta.Format = FormatOf(name)
	return text, meta, nil
}
