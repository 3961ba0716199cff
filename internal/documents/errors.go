package documents

import "fmt"

// SearchRequestFailedError is returned when the backend answers a documents
// request with a status other than 200.
type SearchRequestFailedError struct {
	StatusCode int
	StatusText string
}

func (e *SearchRequestFailedError) Error() string {
	return fmt.Sprintf("documents request failed (%d): %s", e.StatusCode, e.StatusText)
}
