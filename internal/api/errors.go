package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
)

var ErrRateLimited = errors.New("upstream rate limit exceeded")

type HTTPError struct {
	StatusCode int
	StatusText string
	URL        string
}

func newHTTPError(status int, url string) *HTTPError {
	return &HTTPError{
		StatusCode: status,
		StatusText: fasthttp.StatusMessage(status),
		URL:        url,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.StatusCode, e.StatusText)
}

// RateLimitError is returned after a 429 once the cooldown has elapsed.
// The request is not retried; callers may try again later.
type RateLimitError struct {
	URL      string
	Cooldown time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("API error: %d %s, cooled down %s", http.StatusTooManyRequests, fasthttp.StatusMessage(http.StatusTooManyRequests), e.Cooldown)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// ShapeError reports a body that is neither a list nor an envelope object.
type ShapeError struct {
	Want string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape, want %s", e.Want)
}
