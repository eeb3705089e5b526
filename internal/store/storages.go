package store

import (
	"context"
	"fmt"

	"github.com/studynexus/studynexus/internal/config"
	"github.com/studynexus/studynexus/internal/logger"
)

// Storages aggregates all server-side repositories behind one wiring point.
type Storages struct {
	UserRepository UserRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations and
// constructs all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		db:             db,
	}, nil
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
