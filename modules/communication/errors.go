package communication

import (
	"errors"
	"fmt"
)

// Failures surfaced to callers. The underlying cause is wrapped, so
// errors.Is works against both these sentinels and the cause.
var (
	ErrFetchFailed = errors.New("product list not fetched")
	ErrNotSent     = errors.New("order not sent")
)

// APIError is a non-2xx response from the product API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api responded with status %d: %s", e.StatusCode, e.Message)
}
