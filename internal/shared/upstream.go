package shared

import "fmt"

// UpstreamError is a non-2xx response from an external collaborator.
// The status code drives user-facing error classification; Message is
// for logs only and must never be shown to end users.
type UpstreamError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Message)
}
