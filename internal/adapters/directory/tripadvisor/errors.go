package tripadvisor

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the error object the directory returns in a response body
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`

	// Status is the HTTP status the body arrived with, 200 when the error was in a success body
	Status int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tripadvisor %s (code %d): %s", e.Type, e.Code, e.Message)
}

// StatusError is a non 2xx response without a decodable error body
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tripadvisor unexpected status %d body %s", e.Status, e.Body)
}

// HTTPStatus returns the response status
func (e *StatusError) HTTPStatus() int { return e.Status }

// statusOf extracts the HTTP status from either error type, 0 when neither
func statusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// IsRateLimited reports a 429 from the directory
func IsRateLimited(err error) bool { return statusOf(err) == http.StatusTooManyRequests }

// IsNotFound reports a 404 from the directory
func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

// isClientError is a 4xx other than 429, the request was wrong and the service is healthy
func isClientError(err error) bool {
	s := statusOf(err)
	return s >= 400 && s < 500 && s != http.StatusTooManyRequests
}
