package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrStatus marks a response outside the 2xx range.
	ErrStatus = errors.New("upstream: unexpected status")
	// ErrDecode marks a body that is not the expected JSON shape.
	ErrDecode = errors.New("upstream: decode response")
	// ErrMissingURL is returned when a fetch is attempted without a target.
	ErrMissingURL = errors.New("upstream: missing url")
)

// LoadError describes a failed fetch. StatusCode is zero when no response
// was received.
type LoadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream: GET %s: %d %s: %v", e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("upstream: GET %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Status returns the upstream status code, or 0 for transport failures.
func (e *LoadError) Status() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// StatusOf extracts the upstream status code from err, if any.
func StatusOf(err error) int {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Status()
	}
	return 0
}
