package riot

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Used when a 429 doesn't carry a usable Retry-After header.
const defaultRetryAfter = time.Second

// ErrCircuitOpen is carried by the errors of calls rejected while the breaker is open.
var ErrCircuitOpen = errors.New("riot api temporarily unavailable")

// Error is the single error kind returned by the client.
// Status is zero for transport failures.
type Error struct {
	Status     int
	RetryAfter time.Duration
	URL        string
	Err        error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("API request failed on URL %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("API returned status code %d on URL %s", e.Status, e.URL)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the upstream status carried by err, or zero.
func StatusCode(err error) int {
	var riotErr *Error
	if errors.As(err, &riotErr) {
		return riotErr.Status
	}
	return 0
}

// IsNotFound tells if the upstream answered 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsRateLimited tells if the upstream answered 429.
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}

// RetryAfter returns the retry hint of a rate limited error.
func RetryAfter(err error) (time.Duration, bool) {
	var riotErr *Error
	if errors.As(err, &riotErr) && riotErr.Status == http.StatusTooManyRequests {
		return riotErr.RetryAfter, true
	}
	return 0, false
}

// newStatusError builds the error for a non 2xx response.
func newStatusError(resp *http.Response, url string) *Error {
	e := &Error{Status: resp.StatusCode, URL: url}
	if resp.StatusCode == http.StatusTooManyRequests {
		e.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
	}
	return e
}

// parseRetryAfter accepts both the delta-seconds and the HTTP-date forms.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return defaultRetryAfter
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return defaultRetryAfter
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d.Round(time.Second)
		}
	}

	return defaultRetryAfter
}
