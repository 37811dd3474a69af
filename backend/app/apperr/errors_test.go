package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"wrapped not found", fmt.Errorf("get bug 7: %w", ErrNotFound), "Bug not found."},
		{"access denied", ErrAccessDenied, "You are not allowed to access that bug."},
		{"field error", Invalid("Title", "is required"), "Title is required"},
		{"bare validation", ErrValidation, "Please fill in all required fields."},
		{"store", fmt.Errorf("list: %w", ErrStoreUnavailable), "Something went wrong, please try again."},
		{"unknown", errors.New("boom"), "Something went wrong, please try again."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Message(tc.err))
		})
	}
}

func TestFieldErrorIsValidation(t *testing.T) {
	err := fmt.Errorf("create bug: %w", Invalid("Severity", "must be Low, Medium or High"))
	assert.ErrorIs(t, err, ErrValidation)
}
