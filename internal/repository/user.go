package repository

import (
	"context"
	"errors"
	"fmt"

	"places-api/internal/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, places, created_at)
		VALUES ($1, $2, $3, $4)
	`
	places := user.Places
	if places == nil {
		places = []string{}
	}
	_, err := r.db.Exec(ctx, query, user.ID, user.Name, places, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, places, created_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Places, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Places == nil {
		user.Places = []string{}
	}
	return &user, nil
}

// AddPlace appends a place id to the user's place list
func (r *UserRepository) AddPlace(ctx context.Context, userID, placeID string) error {
	query := `UPDATE users SET places = array_append(places, $1) WHERE id = $2`
	result, err := r.db.Exec(ctx, query, placeID, userID)
	if err != nil {
		return fmt.Errorf("failed to add place to user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}

// RemovePlace removes a place id from the user's place list
func (r *UserRepository) RemovePlace(ctx context.Context, userID, placeID string) error {
	query := `UPDATE users SET places = array_remove(places, $1) WHERE id = $2`
	result, err := r.db.Exec(ctx, query, placeID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove place from user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}
