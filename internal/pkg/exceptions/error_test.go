package exceptions

import (
	"errors"
	"testing"

	"carelink-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNewCustomError(t *testing.T) {
	t.Run("appends wrapped error to dev message", func(t *testing.T) {
		cause := errors.New("connection refused")

		err := ErrPostgresDBFindData(cause)

		assert.Equal(t, constvars.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, constvars.ErrClientSomethingWrongWithApplication, err.ClientMessage)
		assert.Contains(t, err.DevMessage, "connection refused")
		assert.ErrorIs(t, err, cause)
		require.Len(t, err.Locations, 1)
		assert.Contains(t, err.Locations[0].File, "error_test.go")
	})

	t.Run("keeps locations of inner custom error", func(t *testing.T) {
		inner := ErrPostgresDBFindData(errors.New("boom"))

		outer := ErrNotFound(inner, constvars.AuditEntitySwitchRequest, "abc")

		assert.Equal(t, constvars.StatusNotFound, outer.StatusCode)
		assert.Len(t, outer.Locations, 2)
	})

	t.Run("nil error keeps dev message untouched", func(t *testing.T) {
		err := ErrConsentRequired(nil)

		assert.Equal(t, constvars.ErrDevConsentRequired, err.DevMessage)
		assert.Nil(t, errors.Unwrap(err))
	})
}

func TestFormatFirstValidationError(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Role  string `validate:"oneof=patient agency"`
		Name  string `validate:"max=3"`
	}

	v := validator.New()

	tests := []struct {
		name     string
		input    payload
		expected string
	}{
		{
			name:     "required",
			input:    payload{Role: "patient"},
			expected: "email is required",
		},
		{
			name:     "oneof lists options",
			input:    payload{Email: "a@b.co", Role: "admin"},
			expected: "role must be one of [patient, agency]",
		},
		{
			name:     "max substitutes param",
			input:    payload{Email: "a@b.co", Role: "agency", Name: "abcd"},
			expected: "name maximum at 3 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.expected, FormatFirstValidationError(err))
		})
	}

	assert.Equal(t, constvars.ErrDevInvalidInput, FormatFirstValidationError(errors.New("plain")))
}
