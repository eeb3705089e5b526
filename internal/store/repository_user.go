package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup and federated-identity linking
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists]. This is
//     the authoritative duplicate-account check; callers must not pre-check.
//   - Any other driver-level error → wrapped as [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: building query")
		return models.User{}, err
	}

	var saved models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = scanUser(row, &saved); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			log.Debug().Str("email", user.Email).Msg("duplicate email rejected by unique index")
			return models.User{}, ErrEmailAlreadyExists
		default:
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning created user")
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return saved, nil
}

// FindUserByEmail retrieves a user record whose email matches the one
// provided, case-insensitively (the unique index is on LOWER(email)).
//
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByEmailQuery(email)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: building query")
		return models.User{}, err
	}

	var found models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = scanUser(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: scanning found user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// FindUserByID retrieves a user record by its internal identifier.
//
// Returns [ErrNoUserWasFound] when no row matches — the token guard maps
// this to "the user belonging to this token no longer exists".
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByIDQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: building query")
		return models.User{}, err
	}

	var found models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = scanUser(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: scanning found user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// LinkProvider writes the federated identity fields of an existing account.
// The password hash and the source tag are deliberately not touched: a local
// account that gains a provider link keeps its password.
func (r *userRepository) LinkProvider(ctx context.Context, userID int64, providerSubject, photoURL string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLinkProviderQuery(userID, providerSubject, photoURL)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.LinkProvider").Msg("error: building query")
		return models.User{}, err
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = scanUser(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.LinkProvider").Msg("error: scanning updated user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// scanUser scans a single row in userColumns order.
func scanUser(row *sql.Row, u *models.User) error {
	return row.Scan(
		&u.UserID,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&u.Source,
		&u.ProviderSubject,
		&u.PhotoURL,
		&u.CreatedAt,
	)
}
