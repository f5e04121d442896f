package repository

import (
	"context"
	"errors"
	"testing"

	"places-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeCols = []string{"id", "title", "description", "image", "address", "lat", "lng", "creator"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func samplePlace() *models.Place {
	return &models.Place{
		ID:          "p1",
		Title:       "Empire State Building",
		Description: "One of the most famous sky scrapers",
		Image:       "https://example.com/esb.jpg",
		Address:     "20 W 34th St, New York, NY 10001",
		Location:    models.Location{Lat: 40.7484405, Lng: -73.9878584},
		Creator:     "u1",
	}
}

func TestPlaceRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)
	place := samplePlace()

	mock.ExpectExec("INSERT INTO places").
		WithArgs(place.ID, place.Title, place.Description, place.Image, place.Address,
			place.Location.Lat, place.Location.Lng, place.Creator).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), place))
}

func TestPlaceRepositoryCreateUnknownCreator(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)

	mock.ExpectExec("INSERT INTO places").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "places_creator_fkey"})

	err := repo.Create(context.Background(), samplePlace())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceRepositoryGetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)
	want := samplePlace()

	mock.ExpectQuery("SELECT (.+) FROM places WHERE id = ").
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(placeCols).AddRow(
			want.ID, want.Title, want.Description, want.Image, want.Address,
			want.Location.Lat, want.Location.Lng, want.Creator,
		))

	got, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPlaceRepositoryGetByIDErrors(t *testing.T) {
	t.Run("no rows is not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM places").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

		_, err := NewPlaceRepository(mock).GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("driver failure is wrapped", func(t *testing.T) {
		mock := newMock(t)
		boom := errors.New("connection reset")
		mock.ExpectQuery("FROM places").WithArgs("p1").WillReturnError(boom)

		_, err := NewPlaceRepository(mock).GetByID(context.Background(), "p1")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestPlaceRepositoryGetByIDsKeepsListOrder(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)

	ids := []string{"p2", "gone", "p1"}
	mock.ExpectQuery("FROM places WHERE id = ANY").
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows(placeCols).
			AddRow("p1", "First", "first place", "img", "addr", 1.0, 2.0, "u1").
			AddRow("p2", "Second", "second place", "img", "addr", 3.0, 4.0, "u1"))

	places, err := repo.GetByIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "p2", places[0].ID)
	assert.Equal(t, "p1", places[1].ID)
}

func TestPlaceRepositoryGetByIDsEmpty(t *testing.T) {
	mock := newMock(t)

	places, err := NewPlaceRepository(mock).GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestPlaceRepositoryUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)
	place := samplePlace()
	place.Title = "Renamed"

	mock.ExpectExec("UPDATE places SET title").
		WithArgs("Renamed", place.Description, place.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.Update(context.Background(), place))

	mock.ExpectExec("UPDATE places SET title").
		WithArgs("Renamed", place.Description, place.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.Update(context.Background(), place), ErrNotFound)
}

func TestPlaceRepositoryDelete(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)

	mock.ExpectExec("DELETE FROM places").WithArgs("p1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), "p1"))

	mock.ExpectExec("DELETE FROM places").WithArgs("p1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "p1"), ErrNotFound)
}
