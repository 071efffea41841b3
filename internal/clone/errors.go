// Package clone builds multimodal clone prompts from stored scrape records
// and normalizes the model's raw output into a well-formed HTML document.
package clone

import "fmt"

// NotFoundError indicates no scrape record exists under the requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("scraped data not found for id: %s", e.ID)
}

// InsufficientDataError indicates the record has neither markup nor a
// screenshot to clone from.
type InsufficientDataError struct {
	ID string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("no HTML content or screenshot available for cloning: %s", e.ID)
}
