package publish

import "errors"

// Sentinel errors for publishing.
var (
	// ErrPublishFailed indicates a write that exhausted its retry budget.
	ErrPublishFailed = errors.New("publish failed")

	// ErrNoTarget indicates a store that was not configured.
	ErrNoTarget = errors.New("publish target not configured")

	// ErrInvalidKey indicates an object key that escapes the store root.
	ErrInvalidKey = errors.New("invalid object key")
)

// statusError reports an unexpected HTTP status.
type statusError struct {
	op     string
	status int
	body   string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return e.op + ": status " + itoa(e.status)
	}
	return e.op + ": status " + itoa(e.status) + ": " + e.body
}
