package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request RegisterRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: RegisterRequest{Email: "founder@example.com", Password: "password123", Name: "Asha"},
			wantErr: false,
		},
		{
			name:    "missing email",
			request: RegisterRequest{Password: "password123", Name: "Asha"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			request: RegisterRequest{Email: "not-an-email", Password: "password123", Name: "Asha"},
			wantErr: true,
		},
		{
			name:    "password too short",
			request: RegisterRequest{Email: "founder@example.com", Password: "short", Name: "Asha"},
			wantErr: true,
		},
		{
			name:    "missing name",
			request: RegisterRequest{Email: "founder@example.com", Password: "password123"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validation(t *testing.T) {
	valid := LoginRequest{Email: "founder@example.com", Password: "anything"}
	assert.NoError(t, valid.Validate())

	missing := LoginRequest{Email: "founder@example.com"}
	assert.Error(t, missing.Validate())
}
