package utils

import (
	"testing"

	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegisterUser(t *testing.T) {
	valid := func() requests.RegisterUser {
		return requests.RegisterUser{
			Email:    "jane@example.com",
			Password: "Secret#123",
			FullName: "Jane Doe",
			Phone:    "+15551234567",
			Role:     "patient",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*requests.RegisterUser)
		message string
	}{
		{
			name:   "valid",
			mutate: func(r *requests.RegisterUser) {},
		},
		{
			name:    "weak password",
			mutate:  func(r *requests.RegisterUser) { r.Password = "secret123" },
			message: "password must be at least 8 characters long, contain at least one special character, and one uppercase letter",
		},
		{
			name:    "admin cannot self register",
			mutate:  func(r *requests.RegisterUser) { r.Role = "admin" },
			message: "role must be either 'patient' or 'agency'",
		},
		{
			name:    "local phone number",
			mutate:  func(r *requests.RegisterUser) { r.Phone = "5551234567" },
			message: "phone number must be in international format, e.g. +15551234567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := valid()
			tt.mutate(&request)

			err := ValidateStruct(request)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.message, exceptions.FormatFirstValidationError(err))
		})
	}
}

func TestValidateCreateESignature(t *testing.T) {
	t.Run("typed requires typed name", func(t *testing.T) {
		err := ValidateStruct(requests.CreateESignature{
			SwitchRequestID: "6f1f6c1e-8a43-4c52-9a44-1d2f3b3b8a10",
			SignatureType:   "typed",
		})
		require.Error(t, err)
		assert.Equal(t, "typed_name is required when SignatureType typed", exceptions.FormatFirstValidationError(err))
	})

	t.Run("needs a target", func(t *testing.T) {
		err := ValidateStruct(requests.CreateESignature{
			SignatureType: "typed",
			TypedName:     "Jane Doe",
		})
		assert.Error(t, err)
	})

	t.Run("typed name with separator", func(t *testing.T) {
		for _, name := range []string{"Jane|Doe", "Jane\nDoe", "Jane\x00"} {
			err := ValidateStruct(requests.CreateESignature{
				DocumentID:    "6f1f6c1e-8a43-4c52-9a44-1d2f3b3b8a10",
				SignatureType: "typed",
				TypedName:     name,
			})
			require.Error(t, err, name)
			assert.Equal(t, "typed_name must not contain '|' or control characters", exceptions.FormatFirstValidationError(err))
		}
	})

	t.Run("drawn without typed name", func(t *testing.T) {
		err := ValidateStruct(requests.CreateESignature{
			SwitchRequestID: "6f1f6c1e-8a43-4c52-9a44-1d2f3b3b8a10",
			SignatureType:   "drawn",
			DrawnImage:      "iVBORw0KGgo=",
		})
		assert.NoError(t, err)
	})

	t.Run("document only", func(t *testing.T) {
		err := ValidateStruct(requests.CreateESignature{
			DocumentID:    "6f1f6c1e-8a43-4c52-9a44-1d2f3b3b8a10",
			SignatureType: "typed",
			TypedName:     "Jane Doe",
		})
		assert.NoError(t, err)
	})
}

func TestValidateDateOnly(t *testing.T) {
	assert.NoError(t, ValidateStruct(requests.UpdateProfile{FullName: "Jane", DateOfBirth: "1990-02-28"}))
	assert.Error(t, ValidateStruct(requests.UpdateProfile{FullName: "Jane", DateOfBirth: "1990-02-30"}))
	assert.Error(t, ValidateStruct(requests.UpdateProfile{FullName: "Jane", DateOfBirth: "28/02/1990"}))
}
