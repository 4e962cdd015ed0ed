package gemini

import (
	"errors"
	"fmt"
)

// ErrEmptyCandidate is returned when the gateway response carries no candidate text.
var ErrEmptyCandidate = errors.New("gemini response has no candidates")

// TransportError indicates the gateway could not be reached (DNS, timeout,
// connection reset). The request never produced an HTTP status.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gemini transport failure: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// UpstreamError indicates the gateway answered with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini API error %d: %s", e.StatusCode, e.Body)
}

// ParseError indicates the candidate text was not a parsable JSON object.
// Missing fields are not parse errors, only malformed structure is.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gemini reply parse failure: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
