package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/matchly/internal/fetch"
)

func TestIngestURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><header>Careers</header><div class="job-description"><p>Senior Backend Engineer</p><ul><li>5+ years of Python</li><li>Docker</li></ul></div></body></html>`))
	}))
	defer server.Close()

	text, meta, err := IngestURL(context.Background(), server.URL, fetch.PostingOptions{})
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Backend Engineer")
	assert.Contains(t, text, "- 5+ years of Python")
	assert.NotContains(t, text, "Careers")
	assert.Equal(t, server.URL, meta.URL)
	assert.Equal(t, FormatHTML, meta.Format)
}

func TestIngestURL_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><nav>Only navigation</nav></body></html>`))
	}))
	defer server.Close()

	_, _, err := IngestURL(context.Background(), server.URL, fetch.PostingOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no job description text")
}

func TestIngestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, _, err := IngestURL(context.Background(), server.URL, fetch.PostingOptions{})
	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
}
