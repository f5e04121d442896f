package repository

import (
	"context"
	"errors"

	"places-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned (wrapped) when a record does not exist
var ErrNotFound = errors.New("record not found")

// DB is the subset of pgx shared by *pgxpool.Pool and pgx.Tx
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Places handles persistence of places
type Places interface {
	Create(ctx context.Context, place *models.Place) error
	GetByID(ctx context.Context, id string) (*models.Place, error)
	// GetByIDs returns the places in the order of ids, skipping unknown ids
	GetByIDs(ctx context.Context, ids []string) ([]*models.Place, error)
	Update(ctx context.Context, place *models.Place) error
	Delete(ctx context.Context, id string) error
}

// Users handles persistence of users and their place lists
type Users interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	AddPlace(ctx context.Context, userID, placeID string) error
	RemovePlace(ctx context.Context, userID, placeID string) error
}

// Store groups the repositories and runs them inside transactions
type Store interface {
	Places() Places
	Users() Users
	// WithTx runs fn against a transactional view of the store. Everything
	// fn writes is committed when it returns nil and discarded otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
