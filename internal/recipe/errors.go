package recipe

import "fmt"

// ValidationError is a rule violation in a recipe. Callers record it and move
// on to the next example; any other error returned by the validator is fatal.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
