package hubsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrInvalidCredentials is returned by Login when the server rejects the
// password.
var ErrInvalidCredentials = errors.New("hubsdk: invalid credentials")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Detail     string

	// RetryAfter is the server's Retry-After value on 429 responses.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hubsdk: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsRateLimited reports whether err is a 429 from the server.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// parseErrorResponse builds an *APIError from a non-2xx response body.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		apiErr.Detail = errResp.Detail
	} else {
		apiErr.Detail = string(body)
	}

	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		apiErr.RetryAfter = time.Duration(secs) * time.Second
	}

	return apiErr
}
