package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/studynexus/studynexus/internal/config"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/store"
	"github.com/studynexus/studynexus/internal/utils"
	"github.com/studynexus/studynexus/internal/validators"
	"github.com/studynexus/studynexus/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, federated
// identity bridging and JWT token lifecycle, using a UserRepository for
// persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterLocal creates a new password account.
//
// The payload is validated against the account policy (name 3-30 chars,
// valid email, password 6-30 alphanumerics), the email is lowercased, the
// password is bcrypt-hashed, and persistence is delegated to the
// UserRepository. Duplicate emails surface as store.ErrEmailAlreadyExists
// from the insert itself — the repository's unique index is the correctness
// guarantee, so there is no find-then-create here.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if a required field is missing.
//   - ErrPolicyViolation (wrapping the field detail) on policy failure.
//   - store.ErrEmailAlreadyExists if the email is taken.
func (a *authService) RegisterLocal(ctx context.Context, fullName, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateRegistration(fullName, email, password); err != nil {
		if errors.Is(err, validators.ErrMissingFields) {
			log.Error().Str("email", email).Msg("registration with missing fields")
			return models.User{}, ErrInvalidDataProvided
		}
		log.Error().Str("email", email).Err(err).Msg("registration policy violation")
		return models.User{}, fmt.Errorf("%w: %w", ErrPolicyViolation, err)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: passwordHash,
		Source:       models.SourceLocal,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// AuthenticateLocal verifies an email/password pair.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - A wrapped storage error if the lookup fails (e.g. user not found —
//     see store.ErrNoUserWasFound).
//   - ErrFederatedOnlyAccount if the account has no local password.
//   - ErrWrongPassword if the bcrypt comparison fails.
func (a *authService) AuthenticateLocal(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateLogin(email, password); err != nil {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	// a federated-only account has no hash to compare against
	if !foundUser.HasPassword() {
		log.Warn().Int64("id", foundUser.UserID).Msg("password login against federated-only account")
		return models.User{}, ErrFederatedOnlyAccount
	}

	if err = utils.ComparePasswordAndHash(password, foundUser.PasswordHash); err != nil {
		if errors.Is(err, utils.ErrMismatchedHashAndPassword) {
			log.Warn().Int64("id", foundUser.UserID).Msg("wrong password")
			return models.User{}, ErrWrongPassword
		}
		log.Err(err).Int64("id", foundUser.UserID).Msg("password comparison failed")
		return models.User{}, fmt.Errorf("password comparison failed: %w", err)
	}

	return foundUser, nil
}

// AuthenticateFederated accepts an identity assertion already verified by the
// identity bridge and returns the matching account, creating or linking one
// as needed:
//
//   - unseen email → a new account with source "federated" and no password;
//   - existing account without a provider link → the provider subject and
//     photo are recorded, password and source left untouched;
//   - existing linked account → profile fields refreshed.
//
// This path never fails because a password is absent; none is expected.
// A concurrent first-login race on the same email is resolved by the unique
// index: the losing insert maps to store.ErrEmailAlreadyExists and the
// account created by the winner is used instead.
func (a *authService) AuthenticateFederated(ctx context.Context, assertion models.IdentityAssertion) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateAssertion(assertion.Email, assertion.Subject); err != nil {
		log.Error().Str("provider", assertion.Provider).Msg("invalid identity assertion")
		return models.User{}, ErrInvalidDataProvided
	}

	email := strings.ToLower(strings.TrimSpace(assertion.Email))

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if foundUser.ProviderSubject == assertion.Subject {
			return foundUser, nil
		}

		linked, linkErr := a.userRepository.LinkProvider(ctx, foundUser.UserID, assertion.Subject, assertion.PhotoURL)
		if linkErr != nil {
			log.Err(linkErr).Int64("id", foundUser.UserID).Msg("linking provider identity failed")
			return models.User{}, fmt.Errorf("linking provider identity failed: %w", linkErr)
		}
		log.Info().Int64("id", linked.UserID).Str("provider", assertion.Provider).Msg("provider identity linked to existing account")
		return linked, nil

	case errors.Is(err, store.ErrNoUserWasFound):
		newUser := models.User{
			Email:           email,
			FullName:        strings.TrimSpace(assertion.DisplayName),
			Source:          models.SourceFederated,
			ProviderSubject: assertion.Subject,
			PhotoURL:        assertion.PhotoURL,
		}
		if newUser.FullName == "" {
			newUser.FullName = email
		}

		created, createErr := a.userRepository.CreateUser(ctx, newUser)
		if createErr != nil {
			if errors.Is(createErr, store.ErrEmailAlreadyExists) {
				// lost the first-login race; the winner's account is authoritative
				return a.userRepository.FindUserByEmail(ctx, email)
			}
			log.Err(createErr).Str("email", email).Msg("federated user creation failed")
			return models.User{}, fmt.Errorf("federated user creation failed: %w", createErr)
		}
		log.Info().Int64("id", created.UserID).Str("provider", assertion.Provider).Msg("federated account created")
		return created, nil

	default:
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}
}

// UserByID resolves a token subject to the current user record. Used by the
// token guard and the /me endpoint.
func (a *authService) UserByID(ctx context.Context, userID int64) (models.User, error) {
	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the issuer claim and the expiry. Expired tokens are reported as
// ErrTokenIsExpired so the transport layer can name the condition; every
// other failure is normalised to ErrTokenIsInvalid so that callers do not
// need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsInvalid
	}

	return token, nil
}
