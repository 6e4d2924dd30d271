package archive

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchError is returned when a response arrives with a non-2xx status.
type FetchError struct {
	URL        string
	Status     int
	StatusText string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.StatusText)
}

// NewFetchError builds a FetchError from a status code, using the standard
// reason phrase.
func NewFetchError(url string, status int) *FetchError {
	return &FetchError{URL: url, Status: status, StatusText: http.StatusText(status)}
}

// NetworkError is returned when a request fails before any response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError is returned when a response body is not the expected JSON.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 FetchError.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == http.StatusNotFound
}
