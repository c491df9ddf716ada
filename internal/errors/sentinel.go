package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates an input document failed to parse or validate.
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates a remote resource could not be fetched.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission indicates missing or rejected registry credentials.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a required file or directory was not found.
	ErrNotFound = errors.New("not found")
)
