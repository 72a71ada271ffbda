package governance

import "fmt"

// ValidationError reports a missing or malformed field in a payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// InvalidStateError reports an operation attempted from a lifecycle state
// that does not permit it.
type InvalidStateError struct {
	ID     string
	Op     string
	Status ProposalStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s not allowed for proposal %s in status %s", e.Op, e.ID, e.Status)
}

// NotFoundError reports an operation against an unknown proposal identity.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("proposal %s not found", e.ID)
}

func errNotFound(id string) error {
	return &NotFoundError{ID: id}
}

func errInvalidState(id, op string, status ProposalStatus) error {
	return &InvalidStateError{ID: id, Op: op, Status: status}
}

func errValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
