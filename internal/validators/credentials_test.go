package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "Jane Doe", "jane@example.com", "secret123", nil},
		{"min lengths", "Jan", "j@e.co", "abc123", nil},
		// syntax-only: an address on an unresolvable domain must still pass
		{"unresolvable domain", "Jane Doe", "jane@no-such-host.invalid", "secret123", nil},
		{"missing name", "", "jane@example.com", "secret123", ErrMissingFields},
		{"missing email", "Jane Doe", "", "secret123", ErrMissingFields},
		{"missing password", "Jane Doe", "jane@example.com", "", ErrMissingFields},
		{"name too short", "Jo", "jane@example.com", "secret123", ErrPolicyViolation},
		{"name too long", "This full name is way way way too long for the policy", "jane@example.com", "secret123", ErrPolicyViolation},
		{"invalid email", "Jane Doe", "not-an-email", "secret123", ErrPolicyViolation},
		{"password too short", "Jane Doe", "jane@example.com", "abc12", ErrPolicyViolation},
		{"password too long", "Jane Doe", "jane@example.com", "a123456789012345678901234567890", ErrPolicyViolation},
		{"password with symbols", "Jane Doe", "jane@example.com", "secret!123", ErrPolicyViolation},
		{"password with spaces", "Jane Doe", "jane@example.com", "secret 123", ErrPolicyViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.fullName, tt.email, tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// an already-registered password is accepted at login even if the current
// registration policy would reject it
func TestValidateLogin_DoesNotEnforcePasswordPolicy(t *testing.T) {
	assert.NoError(t, ValidateLogin("jane@example.com", "legacy-password-with-symbols!"))
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("jane@example.com", "secret123"))
	assert.ErrorIs(t, ValidateLogin("", "secret123"), ErrMissingFields)
	assert.ErrorIs(t, ValidateLogin("jane@example.com", ""), ErrMissingFields)
	assert.ErrorIs(t, ValidateLogin("not-an-email", "secret123"), ErrPolicyViolation)
}

func TestValidateAssertion(t *testing.T) {
	assert.NoError(t, ValidateAssertion("jane@example.com", "google-sub-1"))
	assert.ErrorIs(t, ValidateAssertion("", "google-sub-1"), ErrMissingFields)
	assert.ErrorIs(t, ValidateAssertion("jane@example.com", ""), ErrMissingFields)
	assert.ErrorIs(t, ValidateAssertion("not-an-email", "google-sub-1"), ErrPolicyViolation)
}
