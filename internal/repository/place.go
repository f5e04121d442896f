package repository

import (
	"context"
	"errors"
	"fmt"

	"places-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const placeColumns = `id, title, description, image, address, lat, lng, creator`

// foreignKeyViolation is the SQLSTATE for a dangling reference
const foreignKeyViolation = "23503"

// PlaceRepository handles database operations for places
type PlaceRepository struct {
	db DB
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// Create inserts a new place
func (r *PlaceRepository) Create(ctx context.Context, place *models.Place) error {
	query := `
		INSERT INTO places (id, title, description, image, address, lat, lng, creator)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		place.ID, place.Title, place.Description, place.Image, place.Address,
		place.Location.Lat, place.Location.Lng, place.Creator,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("creator %s: %w", place.Creator, ErrNotFound)
		}
		return fmt.Errorf("failed to create place: %w", err)
	}
	return nil
}

// GetByID retrieves a place by ID
func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`

	place, err := scanPlace(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("place %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return place, nil
}

// GetByIDs retrieves places by ID, preserving the order of ids
func (r *PlaceRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Place, error) {
	if len(ids) == 0 {
		return []*models.Place{}, nil
	}

	query := `SELECT ` + placeColumns + ` FROM places WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get places: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*models.Place, len(ids))
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		byID[place.ID] = place
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating places: %w", err)
	}

	places := make([]*models.Place, 0, len(byID))
	for _, id := range ids {
		if place, ok := byID[id]; ok {
			places = append(places, place)
		}
	}
	return places, nil
}

// Update persists the mutable fields of a place
func (r *PlaceRepository) Update(ctx context.Context, place *models.Place) error {
	query := `UPDATE places SET title = $1, description = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, place.Title, place.Description, place.ID)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("place %s: %w", place.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a place by ID
func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM places WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("place %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanPlace(row pgx.Row) (*models.Place, error) {
	var place models.Place
	err := row.Scan(
		&place.ID, &place.Title, &place.Description, &place.Image, &place.Address,
		&place.Location.Lat, &place.Location.Lng, &place.Creator,
	)
	if err != nil {
		return nil, err
	}
	return &place, nil
}
