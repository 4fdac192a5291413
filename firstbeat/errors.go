package firstbeat

import (
	"fmt"
	"net/http"
)

// APIError represents an error returned by the Sports Cloud API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
	Err        error // Underlying error, if any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("firstbeat api error: %d - %s at %s", e.StatusCode, e.Message, e.URL)
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap so the underlying error can be extracted.
func (e *APIError) Unwrap() error {
	return e.Err
}

// AuthError represents an authentication or authorization failure (401, 403).
// It usually means the consumer has not been approved for the account, or the
// bearer token was signed with the wrong shared secret.
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	msg := fmt.Sprintf("firstbeat auth error (%d): %s", e.StatusCode, e.Message)
	if e.Err != nil {
		msg += fmt.Sprintf(" - %v", e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// RateLimitError indicates the server rejected a request with 429 Too Many
// Requests. The client does not retry these; the local token bucket should
// keep request volume under the published limit.
type RateLimitError struct {
	Err error
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("firstbeat rate limit exceeded: %v", e.Err)
	}
	return "firstbeat rate limit exceeded"
}

// Unwrap implements errors.Unwrap.
func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// RegistrationError represents a failure during consumer registration.
// Unlike the fetch methods, which surface a uniform *APIError, registration
// wraps the underlying transport or decode cause in this distinct type so
// callers can report it separately.
type RegistrationError struct {
	Err error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("firstbeat registration failed: %v", e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// ProcessingError is returned when the server keeps answering 202 Accepted
// for analysis results after the maximum number of poll attempts. It is a
// distinct state from both success and plain request failure: the request was
// well-formed and the server is still computing.
type ProcessingError struct {
	// Attempts is the number of requests issued before giving up.
	Attempts int
	// StatusCode is the status the server kept returning (202).
	StatusCode int
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	return fmt.Sprintf("firstbeat analysis still processing: server returned %d after %d attempts", e.StatusCode, e.Attempts)
}

// mapHTTPError is a helper to convert an unsuccessful HTTP response to an appropriate custom error.
func mapHTTPError(resp *http.Response, body []byte) error {
	baseErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    string(body),
		URL:        resp.Request.URL.String(),
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{
			StatusCode: resp.StatusCode,
			Message:    "authentication failed or forbidden",
			Err:        baseErr,
		}
	case http.StatusTooManyRequests:
		return &RateLimitError{
			Err: baseErr,
		}
	default:
		return baseErr
	}
}
