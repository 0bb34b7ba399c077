package model

import (
	"errors"
	"fmt"
)

// ErrResultsNotReady rejects navigation to the results page while no result
// set exists. State stays unchanged; the controller surfaces it as a warning.
var ErrResultsNotReady = errors.New("complete an assessment first")

// ErrUnknownSession is returned when a session ID does not resolve.
var ErrUnknownSession = errors.New("unknown or expired session")

// ValidationError is a non-fatal, user-visible guard failure. It blocks the
// transition and leaves the session untouched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given form field.
func NewValidationError(field, format string, v ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, v...)}
}

// IsValidation reports whether err is a guard failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
