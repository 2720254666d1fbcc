package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/matchly/internal/fetch"
)

// IngestURL fetches a job posting and returns its cleaned text with metadata
func IngestURL(ctx context.Context, urlStr string, opts fetch.PostingOptions) (string, *Metadata, error) {
	posting, err := fetch.JobPosting(ctx, urlStr, opts)
	if err != nil {
		return "", nil, err
	}

	text := CleanText(posting.Text)
	if text == "" {
		return "", nil, fmt.Errorf("no job description text found at %s", urlStr)
	}

	meta := NewMetadata(text, urlStr)
	meta.Format = FormatHTML
	return text, meta, nil
}
