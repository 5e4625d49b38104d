package services

import "fmt"

// Error taxonomy for the service layer. Handlers translate these into
// HTTP status codes; anything else is treated as a server error.

// ValidationError covers missing or malformed input, invalid enum
// values and self-assignment at creation time.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// NotFoundError covers an absent project, user or checklist index.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string {
	return e.Message
}

// ConflictError covers duplicate titles/emails and stale writes
// rejected by the version guard.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	return e.Message
}

// StorageError wraps a failure of the underlying storage engine.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error {
	return e.Err
}
