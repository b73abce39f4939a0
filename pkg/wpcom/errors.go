package wpcom

import (
	"errors"
	"fmt"
)

// ErrorCodeResponse tags every failed call.
const ErrorCodeResponse = "response-error"

var (
	// ErrEmptyToken is returned by New when the token is blank after trimming.
	ErrEmptyToken = errors.New("wpcom: oauth token is empty")
	// ErrNoRequest is returned by Fetch for a request that was never built or was already sent.
	ErrNoRequest = errors.New("wpcom: no prepared request")
)

// ResponseError reports a call whose status fell outside [200, 300).
// Transport failures use the same type with Status 0 and the cause in Err.
type ResponseError struct {
	Code   string
	Status int
	// Body is the decoded response body, nil when absent or not JSON.
	Body any
	Err  error
}

// Message is the human-readable part, e.g. "Status: 404".
func (e *ResponseError) Message() string {
	return fmt.Sprintf("Status: %d", e.Status)
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message(), e.Err)
	}
	return e.Code + ": " + e.Message()
}

func (e *ResponseError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or 0 when err is not a ResponseError.
func StatusOf(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool { return StatusOf(err) == 404 }

func isStatusOK(code int) bool {
	return code >= 200 && code < 300
}
