package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/website-cloner/internal/fetch"
	"github.com/jonathan/website-cloner/internal/store"
	"github.com/jonathan/website-cloner/internal/urlkey"
)

// fakeCapturer writes a placeholder PNG, or fails when broken.
type fakeCapturer struct {
	broken   bool
	captured []string
}

func (f *fakeCapturer) Capture(_ context.Context, url, outPath string) error {
	if f.broken {
		return errors.New("browser exploded")
	}
	f.captured = append(f.captured, url)
	return os.WriteFile(outPath, []byte("png-bytes"), 0644)
}

const testPage = `
<html>
<head>
	<title>Test Page</title>
	<link rel="stylesheet" href="/css/site.css">
</head>
<body>
	<img src="img/logo.png">
	<img src="data:image/png;base64,AAAA">
	<script src="app.js"></script>
</body>
</html>`

func newTestOrchestrator(t *testing.T, capturer *fakeCapturer) (*Orchestrator, store.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo := store.NewJSON(filepath.Join(dir, "scraped_data.json"))
	orch := NewOrchestrator(repo, capturer, Options{
		ScreenshotsDir: dir,
		PublicPrefix:   "/public/screenshots",
	})
	return orch, repo
}

func TestScrape_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	}))
	defer server.Close()

	capturer := &fakeCapturer{}
	orch, repo := newTestOrchestrator(t, capturer)

	summary, err := orch.Scrape(context.Background(), server.URL)
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.Equal(t, server.URL, summary.URL)
	assert.Equal(t, "Test Page", summary.Title)
	assert.Equal(t, urlkey.Normalize(server.URL), summary.ID)
	assert.Positive(t, summary.HTMLContentLength)
	require.NotNil(t, summary.ScreenshotURL)
	assert.Equal(t, "/public/screenshots/"+summary.ID+".png", *summary.ScreenshotURL)
	assert.Equal(t, 1, summary.AssetsCount.Images)
	assert.Equal(t, 1, summary.AssetsCount.Stylesheets)
	assert.Equal(t, 1, summary.AssetsCount.Scripts)
	assert.Zero(t, summary.AssetsCount.Links)

	rec, err := repo.Get(context.Background(), summary.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, server.URL, rec.URL)
	require.NotNil(t, rec.HTMLContent)
	assert.Contains(t, *rec.HTMLContent, "<title>Test Page</title>")
	require.NotNil(t, rec.ScreenshotPath)
	assert.Len(t, capturer.captured, 1)
}

func TestScrape_ScreenshotFailureIsTolerated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testPage))
	}))
	defer server.Close()

	orch, repo := newTestOrchestrator(t, &fakeCapturer{broken: true})

	summary, err := orch.Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, summary.Success)
	assert.Nil(t, summary.ScreenshotURL)

	rec, err := repo.Get(context.Background(), summary.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotNil(t, rec.HTMLContent)
	assert.Nil(t, rec.ScreenshotPath)
}

func TestScrape_StatusErrorWritesNoRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("denied"))
	}))
	defer server.Close()

	orch, repo := newTestOrchestrator(t, &fakeCapturer{})

	_, err := orch.Scrape(context.Background(), server.URL)
	require.Error(t, err)

	var statusErr *fetch.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestScrape_TransportErrorWritesNoRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := server.URL
	server.Close()

	orch, repo := newTestOrchestrator(t, &fakeCapturer{})

	_, err := orch.Scrape(context.Background(), addr)
	require.Error(t, err)

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestScrape_RescrapingOverwrites(t *testing.T) {
	title := "First"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>" + title + "</title></head><body></body></html>"))
	}))
	defer server.Close()

	orch, repo := newTestOrchestrator(t, &fakeCapturer{})
	ctx := context.Background()

	first, err := orch.Scrape(ctx, server.URL)
	require.NoError(t, err)

	title = "Second"
	second, err := orch.Scrape(ctx, server.URL)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Second", records[first.ID].Title)
}

func TestScrape_MissingTitleUsesSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>no title</p></body></html>"))
	}))
	defer server.Close()

	orch, _ := newTestOrchestrator(t, &fakeCapturer{})

	summary, err := orch.Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, store.TitleNotFound, summary.Title)
}
