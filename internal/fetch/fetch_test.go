package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-valid-url", "ftp://example.com/job", "file:///etc/passwd"} {
		_, err := URL(context.Background(), u, nil)
		require.Error(t, err, u)

		var fetchErr *Error
		assert.ErrorAs(t, err, &fetchErr)
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestExtractMainText_RemovesNoise(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Main Content</h1>
				<p>This is the important text.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Main Content")
	assert.Contains(t, text, "important text")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestExtractMainText_ListItemsBecomeBullets(t *testing.T) {
	html := `<html><body><div class="job-description">
		<h2>Responsibilities</h2>
		<ul><li>Build REST APIs</li><li>Own CI/CD   pipelines</li></ul>
	</div></body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Contains(t, lines, "Responsibilities")
	assert.Contains(t, lines, "- Build REST APIs")
	assert.Contains(t, lines, "- Own CI/CD pipelines")
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	text, err := ExtractMainText(`<html><body><span>Some content here.</span></body></html>`, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractMainText_PlatformNoise(t *testing.T) {
	html := `<html><body><div class="job-description">
		<p>5 years experience in Go</p>
		<form>Apply now</form>
		<div class="eeo-statement">Equal opportunity</div>
	</div></body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors(), PlatformNoiseSelectors(PlatformUnknown)...)
	require.NoError(t, err)
	assert.Contains(t, text, "5 years experience")
	assert.NotContains(t, text, "Apply now")
	assert.NotContains(t, text, "Equal opportunity")
}

func TestJobPosting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><header>Logo</header><div class="job-description">
			<h2>Requirements</h2><ul><li>Python</li><li>Docker</li></ul></div></body></html>`))
	}))
	defer server.Close()

	posting, err := JobPosting(context.Background(), server.URL, PostingOptions{})
	require.NoError(t, err)
	assert.Equal(t, PlatformUnknown, posting.Platform)
	assert.False(t, posting.Rendered)
	assert.Contains(t, posting.Text, "- Python")
	assert.NotContains(t, posting.Text, "Logo")
}

func TestJobPosting_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := JobPosting(context.Background(), server.URL, PostingOptions{})
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   short   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", MinContentLength)))
}
