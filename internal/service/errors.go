package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("invalid input")

	// Access request conflicts. The three cases carry distinct messages
	// because the caller is told different things, but all map to Conflict.
	ErrEmailExists      = errors.New("an account with this email already exists")
	ErrRequestPending   = errors.New("a request with this email is already pending")
	ErrRequestApproved  = errors.New("this email has already been approved, please contact the administrator")
	ErrAlreadyProcessed = errors.New("request has already been processed")
)

// IsConflict reports whether err belongs to the conflict family.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrRequestPending) ||
		errors.Is(err, ErrRequestApproved) ||
		errors.Is(err, ErrAlreadyProcessed)
}
