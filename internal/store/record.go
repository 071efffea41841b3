// Package store persists scrape records keyed by normalized id. Records are
// always replaced whole; re-scraping a URL overwrites the prior record under
// the same key.
package store

// TitleNotFound is the sentinel stored when a page carries no title element.
const TitleNotFound = "Title not found"

// Record is one stored scrape result.
type Record struct {
	ID             string              `json:"id"`
	URL            string              `json:"url"`
	Title          string              `json:"title"`
	HTMLContent    *string             `json:"html_content"`
	ScreenshotPath *string             `json:"screenshot_path"`
	Assets         map[string][]string `json:"assets"`
}

// HasContent reports whether the record holds anything a clone request could
// work from: markup, a screenshot reference, or both.
func (r *Record) HasContent() bool {
	return r.HTMLContent != nil || r.ScreenshotPath != nil
}
