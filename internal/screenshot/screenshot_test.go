package screenshot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngMagic is the fixed eight-byte signature every PNG file starts with.
var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestCaptureQualityStaysPNG(t *testing.T) {
	// chromedp.FullScreenshot only produces PNG at quality 100; any other
	// value switches the capture to JPEG, which would no longer match the
	// .png path and image/png media type recorded alongside it.
	assert.Equal(t, 100, pngQuality)
}

func TestCaptureWritesPNGFile(t *testing.T) {
	if !chromeAvailable() {
		t.Skip("requires a Chrome/Chromium binary")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Shot</title></head><body><p>hello</p></body></html>`)
	}))
	defer server.Close()

	c := NewChromeCapturer(30 * time.Second)
	outPath := filepath.Join(t.TempDir(), "page.png")
	require.NoError(t, c.Capture(context.Background(), server.URL, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Greater(t, len(data), len(pngMagic))
	assert.Equal(t, pngMagic, data[:len(pngMagic)])
}

func chromeAvailable() bool {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "chrome", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
