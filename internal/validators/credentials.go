// Package validators contains input validation for the authentication
// endpoints. Rules are expressed with ozzo-validation so that the policy is
// declared in one place and failures carry field-level messages.
package validators

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// passwordAlphabet is the account password policy: letters and digits only,
// 6 to 30 characters.
var passwordAlphabet = regexp.MustCompile(`^[a-zA-Z0-9]{6,30}$`)

// ValidateRegistration checks the full registration payload.
//
// Policy:
//   - fullName: required, 3–30 characters
//   - email:    required, syntactically valid address
//   - password: required, matches ^[a-zA-Z0-9]{6,30}$
//
// Returns nil when the payload is acceptable, ErrMissingFields when a field
// is absent, and an error wrapping ErrPolicyViolation (with the ozzo field
// detail) otherwise.
func ValidateRegistration(fullName, email, password string) error {
	if fullName == "" || email == "" || password == "" {
		return ErrMissingFields
	}

	err := validation.Errors{
		"fullName": validation.Validate(fullName, validation.Length(3, 30)),
		// EmailFormat is syntax-only; address checks must never touch DNS
		"email": validation.Validate(email, is.EmailFormat),
		"password": validation.Validate(password,
			validation.Match(passwordAlphabet).Error("must be 6-30 letters and numbers")),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPolicyViolation, err)
	}

	return nil
}

// ValidateLogin checks the login payload. Only presence and email syntax are
// enforced: an existing password must be accepted verbatim even if the
// current registration policy would reject it.
func ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		return ErrMissingFields
	}

	if err := validation.Validate(email, is.EmailFormat); err != nil {
		return fmt.Errorf("%w: email: %v", ErrPolicyViolation, err)
	}

	return nil
}

// ValidateAssertion checks the minimal shape of a federated identity
// assertion before it reaches the verifier: the provider must vouch for an
// email and carry a stable subject id.
func ValidateAssertion(email, subject string) error {
	if email == "" || subject == "" {
		return ErrMissingFields
	}

	if err := validation.Validate(email, is.EmailFormat); err != nil {
		return fmt.Errorf("%w: email: %v", ErrPolicyViolation, err)
	}

	return nil
}
