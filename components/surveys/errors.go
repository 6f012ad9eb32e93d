package surveys

import "errors"

var (
	// ErrNotFound reports that a fetch succeeded but a required node was null.
	ErrNotFound = errors.New("surveys: not found")
	// ErrSignInRequired is returned by mutation entry points for anonymous viewers.
	ErrSignInRequired = errors.New("surveys: sign in required")
	// ErrInvalidFields reports a field list that does not match the field schema.
	ErrInvalidFields = errors.New("surveys: invalid fields")
	// ErrInvalidSummary reports a summary map that does not match the summary schema.
	ErrInvalidSummary = errors.New("surveys: invalid summary")
	// ErrInvalidForm reports a dimension or value form that failed validation.
	ErrInvalidForm = errors.New("surveys: invalid form")
	// ErrConfirmationRequired is returned for destructive actions submitted without confirmation.
	ErrConfirmationRequired = errors.New("surveys: confirmation required")
	// ErrUnknownAction reports an action kind with no registered handler.
	ErrUnknownAction = errors.New("surveys: unknown action")

	errMissingBackend  = errors.New("surveys: backend not configured")
	errMissingSessions = errors.New("surveys: session resolver not configured")
)
