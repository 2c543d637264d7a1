package analyzer

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned before any request is made when no
// credential is available.
var ErrMissingAPIKey = errors.New("LLM API key is not configured")

// APIError is a non-200 reply. Body is the raw response body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d\n\n%s", e.StatusCode, e.Body)
}

// ResponseShapeError is a 200 reply without choices[0].message.content.
type ResponseShapeError struct {
	Reason string
	Body   string
}

func (e *ResponseShapeError) Error() string {
	return "unexpected LLM response shape: " + e.Reason
}

// TransportError covers everything that stops a reply from arriving: DNS,
// refused connections, timeouts, truncated bodies.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("LLM request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
