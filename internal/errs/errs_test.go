package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindsAreDisjoint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"invalid_input", InvalidInput("bad field"), ErrInvalidInput},
		{"not_found", NotFound("User not found with id: %d", 7), ErrNotFound},
		{"conflict", Conflict("Username already exists"), ErrConflict},
		{"stale_write", StaleWrite("concurrent modification"), ErrStaleWrite},
	}

	kinds := []error{ErrInvalidInput, ErrNotFound, ErrConflict, ErrStaleWrite}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.ErrorIs(t, test.err, test.kind)
			for _, other := range kinds {
				if other == test.kind {
					continue
				}
				require.NotErrorIs(t, test.err, other)
			}
		})
	}
}

func TestConflictDistinctFromStaleWrite(t *testing.T) {
	duplicate := Conflict("Username already exists")
	stale := StaleWrite("Failed to update user due to concurrent modification")

	require.ErrorIs(t, duplicate, ErrConflict)
	require.NotErrorIs(t, duplicate, ErrStaleWrite)
	require.ErrorIs(t, stale, ErrStaleWrite)
	require.NotErrorIs(t, stale, ErrConflict)
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("User not found with id: %d", 42)
	require.Equal(t, "User not found with id: 42", err.Error())
}

func TestValidationFields(t *testing.T) {
	err := Validation("Field User.username cannot by blank")
	require.ErrorIs(t, err, ErrInvalidInput)

	var domainErr *Error
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, []string{"Field User.username cannot by blank"}, domainErr.Fields())
	require.Equal(t, "Field User.username cannot by blank", err.Error())
}

func TestWrappedErrorsKeepKind(t *testing.T) {
	err := fmt.Errorf("create user: %w", Conflict("Username already exists"))
	require.ErrorIs(t, err, ErrConflict)
}
