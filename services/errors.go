package services

// ValidationError signals bad input or a business-rule violation
// (device unavailable, inverted time window, missing payment
// reference). Controllers surface it as a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given reason
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// InvalidStateError signals an operation that is not legal in the
// record's current state (double return, cancelling a non-active
// reservation). Controllers surface it as a 400.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// NewInvalidStateError creates an InvalidStateError with the given reason
func NewInvalidStateError(message string) *InvalidStateError {
	return &InvalidStateError{Message: message}
}

// NotFoundError signals that a referenced entity does not exist.
// Controllers surface it as a 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError creates a NotFoundError with the given reason
func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}
