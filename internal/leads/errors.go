package leads

import "errors"

var (
	// ErrMissingFields is returned when any required field is empty
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidEmail is returned when the email does not look like an address
	ErrInvalidEmail = errors.New("invalid email")
)
