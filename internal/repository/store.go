package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// PostgresStore implements Store on top of a pgx pool or transaction
type PostgresStore struct {
	db     DB
	places *PlaceRepository
	users  *UserRepository
	inTx   bool
}

// NewPostgresStore creates a new Postgres-backed store
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		places: NewPlaceRepository(db),
		users:  NewUserRepository(db),
	}
}

// Places returns the place repository
func (s *PostgresStore) Places() Places {
	return s.places
}

// Users returns the user repository
func (s *PostgresStore) Users() Users {
	return s.users
}

// WithTx runs fn inside a database transaction
func (s *PostgresStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	txStore := NewPostgresStore(tx)
	txStore.inTx = true

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Ctx(ctx).Error().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (s *PostgresStore) Ping(ctx context.Context) error {
	pinger, ok := s.db.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	if err := pinger.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
