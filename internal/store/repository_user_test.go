package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(user models.User, now time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows(userColumns).
		AddRow(user.UserID, user.Email, user.FullName, user.PasswordHash, user.Source, user.ProviderSubject, user.PhotoURL, now)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Email:        "jane@example.com",
		FullName:     "Jane Doe",
		PasswordHash: "bcrypt-hash",
		Source:       models.SourceLocal,
	}

	saved := user
	saved.UserID = 1

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.FullName, user.PasswordHash, user.Source, user.ProviderSubject, user.PhotoURL).
		WillReturnRows(userRows(saved, time.Now()))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, models.User{Email: "jane@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateUser(ctx, models.User{Email: "jane@example.com"})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	stored := models.User{UserID: 3, Email: "jane@example.com", FullName: "Jane Doe", Source: models.SourceLocal}

	mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(").
		WithArgs("jane@example.com").
		WillReturnRows(userRows(stored, time.Now()))

	found, err := repo.FindUserByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 3 {
		t.Errorf("expected UserID=3, got %d", found.UserID)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(ctx, 99)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestLinkProvider_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	linked := models.User{
		UserID:          3,
		Email:           "jane@example.com",
		PasswordHash:    "bcrypt-hash",
		Source:          models.SourceLocal,
		ProviderSubject: "google-sub-1",
		PhotoURL:        "https://example.com/p.jpg",
	}

	mock.ExpectQuery("UPDATE users SET").
		WithArgs("google-sub-1", "https://example.com/p.jpg", int64(3)).
		WillReturnRows(userRows(linked, time.Now()))

	updated, err := repo.LinkProvider(ctx, 3, "google-sub-1", "https://example.com/p.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ProviderSubject != "google-sub-1" {
		t.Errorf("expected provider subject to be set, got %q", updated.ProviderSubject)
	}
	if updated.PasswordHash != "bcrypt-hash" {
		t.Errorf("linking must keep the password hash, got %q", updated.PasswordHash)
	}
}

func TestLinkProvider_EmptyPhotoNotWritten(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	linked := models.User{UserID: 3, Email: "jane@example.com", ProviderSubject: "google-sub-1", PhotoURL: "https://example.com/old.jpg"}

	// only provider_subject and user_id appear as arguments
	mock.ExpectQuery("UPDATE users SET").
		WithArgs("google-sub-1", int64(3)).
		WillReturnRows(userRows(linked, time.Now()))

	updated, err := repo.LinkProvider(ctx, 3, "google-sub-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PhotoURL != "https://example.com/old.jpg" {
		t.Errorf("an empty photo must not erase the stored one, got %q", updated.PhotoURL)
	}
}
