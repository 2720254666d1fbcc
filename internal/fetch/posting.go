package fetch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// PostingOptions configures JobPosting
type PostingOptions struct {
	HTTP *Options
	// UseBrowser retries pages with too little text in a headless browser
	UseBrowser     bool
	BrowserTimeout time.Duration
	Logger         *zap.Logger
}

// Posting is the text of a job posting and where it came from
type Posting struct {
	URL      string
	Platform Platform
	Text     string
	// Rendered is true when the text came from the headless browser
	Rendered bool
}

// JobPosting fetches a job posting URL and extracts its description text using
// platform-specific selectors. A failed browser retry keeps the HTTP text.
func JobPosting(ctx context.Context, urlStr string, opts PostingOptions) (*Posting, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	platform := DetectPlatform(urlStr)
	logger.Debug("fetching job posting", zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := URL(ctx, urlStr, opts.HTTP)
	if err != nil {
		return nil, err
	}

	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)
	text, err := ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	posting := &Posting{URL: urlStr, Platform: platform, Text: text}
	if !opts.UseBrowser || !ShouldUseBrowser(text) {
		return posting, nil
	}

	logger.Info("posting text too short, rendering in browser",
		zap.String("url", urlStr), zap.Int("chars", len(text)))
	html, err := WithBrowser(ctx, urlStr, opts.BrowserTimeout, logger)
	if err != nil {
		logger.Warn("browser rendering failed, using HTTP content", zap.Error(err))
		return posting, nil
	}
	rendered, err := ExtractMainText(html, content, noise...)
	if err != nil {
		logger.Warn("browser content extraction failed, using HTTP content", zap.Error(err))
		return posting, nil
	}
	posting.Text = rendered
	posting.Rendered = true
	return posting, nil
}

// String describes the posting source for logs and stored analyses
func (p *Posting) String() string {
	return fmt.Sprintf("%s (%s)", p.URL, p.Platform)
}
