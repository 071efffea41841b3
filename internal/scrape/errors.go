package scrape

import "fmt"

// ParseError represents a failure to parse fetched markup. Parsing failures
// are not expected to be recoverable.
type ParseError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error for %s: %s", e.URL, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
