package pangolin

import "fmt"

// AuthError means a login was rejected or a session could not be confirmed.
// Message carries the server's human-readable explanation when one was
// present in the response body.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// APIError represents a transport-level failure: the server answered with a
// non-success HTTP status before any envelope could be interpreted.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// EnvelopeError means the response was well-formed HTTP and JSON but the
// envelope did not report success or lacked expected fields.
type EnvelopeError struct {
	Endpoint string
	Message  string
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request not successful", e.Endpoint)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}
