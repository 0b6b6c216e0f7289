package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOrder is returned when an order payload misses its client, agency or lines.
	ErrInvalidOrder = errors.New("invalid order payload")
	// ErrInvalidTransition is returned when an order status change goes backwards or leaves a terminal status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNoAgencyAvailable signals that no agency holds enough stock for every line.
	ErrNoAgencyAvailable = errors.New("no agency can fulfill this order")
)

// ValidationError reports a payload rejected before any store mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Invalid wraps msg in a ValidationError.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
