package mail

import "errors"

var (
	// ErrInvalidMessage is returned for a message without recipient or body.
	ErrInvalidMessage = errors.New("invalid mail message")

	// ErrNotConfigured is returned by the SMTP sender without a host.
	ErrNotConfigured = errors.New("smtp is not configured")

	// ErrEnqueue wraps queue errors from the Mailer.
	ErrEnqueue = errors.New("failed to enqueue mail")

	// ErrRendering is returned when a template fails to execute.
	ErrRendering = errors.New("failed to render mail template")
)
