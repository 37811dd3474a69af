// Package apperr holds the error taxonomy shared by services and controllers.
package apperr

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// Message returns the text shown to the user in a flash message.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		var fe *FieldError
		if errors.As(err, &fe) {
			return fe.Error()
		}
		return "Please fill in all required fields."
	case errors.Is(err, ErrNotFound):
		return "Bug not found."
	case errors.Is(err, ErrAccessDenied):
		return "You are not allowed to access that bug."
	case errors.Is(err, ErrUnauthenticated):
		return "Please log in to continue."
	case errors.Is(err, ErrDuplicateEmail):
		return "An account with that email already exists."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, ErrUserNotFound):
		return "No account found for that email, please register."
	default:
		return "Something went wrong, please try again."
	}
}

// FieldError is a validation failure tied to one input field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + " " + e.Reason }

func (e *FieldError) Unwrap() error { return ErrValidation }

// Invalid builds a FieldError for field.
func Invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
