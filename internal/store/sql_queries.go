package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/studynexus/studynexus/models"
)

// psql is the shared statement builder configured for PostgreSQL
// ($N placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// userColumns is the canonical column order scanned into models.User.
var userColumns = []string{
	"user_id",
	"email",
	"full_name",
	"password_hash",
	"source",
	"provider_subject",
	"photo_url",
	"created_at",
}

func buildCreateUserQuery(user models.User) (string, []any, error) {
	query, args, err := psql.
		Insert(user.TableName()).
		Columns("email", "full_name", "password_hash", "source", "provider_subject", "photo_url").
		Values(user.Email, user.FullName, user.PasswordHash, user.Source, user.ProviderSubject, user.PhotoURL).
		Suffix("RETURNING user_id, email, full_name, password_hash, source, provider_subject, photo_url, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildFindUserByEmailQuery(email string) (string, []any, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where("LOWER(email) = LOWER(?)", email).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildFindUserByIDQuery(userID int64) (string, []any, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildLinkProviderQuery(userID int64, providerSubject, photoURL string) (string, []any, error) {
	builder := psql.
		Update(models.User{}.TableName()).
		Set("provider_subject", providerSubject).
		Where(sq.Eq{"user_id": userID})

	// an empty provider photo must not erase one set earlier
	if photoURL != "" {
		builder = builder.Set("photo_url", photoURL)
	}

	query, args, err := builder.
		Suffix("RETURNING user_id, email, full_name, password_hash, source, provider_subject, photo_url, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
