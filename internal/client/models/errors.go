package models

// ValidationError is a client-side input error. It is raised before any
// network call and is meant to be shown next to the offending input.
type ValidationError struct {
	Field   string
	Message string
	// Err optionally links the failure to a sentinel for errors.Is.
	Err error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
