// Package fetch retrieves page markup over HTTP with a bounded timeout.
// It distinguishes transport failures from upstream HTTP status failures so
// callers can surface each with the right diagnostics.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds the markup fetch.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; WebsiteCloner/1.0)"

// maxBodySnippet limits how much of an upstream error body is carried in a
// StatusError.
const maxBodySnippet = 1024

// Result holds the markup fetched from a URL.
type Result struct {
	URL        string
	HTML       string
	StatusCode int
}

// Error represents a network-level fetch failure (connection, timeout).
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusError represents a non-2xx upstream response. It carries the status
// code and a snippet of the response body for diagnostics.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d occurred while fetching %s: %s", e.StatusCode, e.URL, e.Body)
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves markup from a URL. A connection or timeout failure returns a
// *Error; a non-2xx response returns a *StatusError. Redirects are followed
// before the status is inspected.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := bodyBytes
		if len(snippet) > maxBodySnippet {
			snippet = snippet[:maxBodySnippet]
		}
		return nil, &StatusError{
			URL:        urlStr,
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
		}
	}

	return &Result{
		URL:        urlStr,
		HTML:       string(bodyBytes),
		StatusCode: resp.StatusCode,
	}, nil
}
