package services

import (
	"context"
	"errors"
	"net/http"

	"places-api/internal/errs"
	"places-api/internal/models"
	"places-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Client-facing messages
const (
	MsgPlaceNotFound      = "Could not find a place for the provided id."
	MsgUserPlacesNotFound = "Could not find a places for the provided user id."
	MsgUserNotFound       = "Could not find user for provided id."
	MsgPlaceNotFoundForID = "Could not find place for this id."
	MsgDeletedPlace       = "Deleted place."

	msgFindPlaceFailed   = "Something went wrong, could not find a place."
	msgFetchPlacesFailed = "Fetching places failed, please try again later."
	msgCreatePlaceFailed = "Creating place failed, please try again."
	msgUpdatePlaceFailed = "Something went wrong, could not update place."
	msgDeletePlaceFailed = "Something went wrong, could not delete place."
)

// DefaultPlaceholderImage is stored as the image of every new place
const DefaultPlaceholderImage = "https://i.picsum.photos/id/866/200/300.jpg?hmac=rcadCENKh4rD6MAp6V_ma-AyWv641M4iiOpe1RyFHeI"

// CreatePlaceInput represents the request body for creating a place
type CreatePlaceInput struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"min=5"`
	Address     string          `json:"address" validate:"required"`
	Location    models.Location `json:"location"`
	Creator     string          `json:"creator" validate:"required"`
}

// UpdatePlaceInput represents the request body for updating a place
type UpdatePlaceInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"min=5"`
}

// PlaceService handles place-related business logic
type PlaceService struct {
	store        repository.Store
	notifier     Notifier
	defaultImage string
}

// NewPlaceService creates a new place service. notifier may be nil.
func NewPlaceService(store repository.Store, notifier Notifier, defaultImage string) *PlaceService {
	if defaultImage == "" {
		defaultImage = DefaultPlaceholderImage
	}
	return &PlaceService{
		store:        store,
		notifier:     notifier,
		defaultImage: defaultImage,
	}
}

// GetPlaceByID returns a single place
func (s *PlaceService) GetPlaceByID(ctx context.Context, placeID string) (*models.Place, error) {
	place, err := s.store.Places().GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NotFound(MsgPlaceNotFound)
		}
		return nil, errs.Internal(err, msgFindPlaceFailed)
	}
	return place, nil
}

// GetPlacesByUserID returns the places of a user in list order.
// A missing user and a user without places are both 404 but carry different messages.
func (s *PlaceService) GetPlacesByUserID(ctx context.Context, userID string) ([]*models.Place, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NotFound(MsgUserNotFound)
		}
		return nil, errs.Internal(err, msgFetchPlacesFailed)
	}

	places, err := s.store.Places().GetByIDs(ctx, user.Places)
	if err != nil {
		return nil, errs.Internal(err, msgFetchPlacesFailed)
	}

	if len(places) == 0 {
		return nil, errs.NotFound(MsgUserPlacesNotFound)
	}
	return places, nil
}

// CreatePlace stores a new place and appends it to its creator's list in one transaction
func (s *PlaceService) CreatePlace(ctx context.Context, input CreatePlaceInput) (*models.Place, error) {
	place := &models.Place{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Image:       s.defaultImage,
		Address:     input.Address,
		Location:    input.Location,
		Creator:     input.Creator,
	}

	if _, err := s.store.Users().GetByID(ctx, input.Creator); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NotFound(MsgUserNotFound)
		}
		return nil, errs.Internal(err, msgCreatePlaceFailed)
	}

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Places().Create(ctx, place); err != nil {
			return err
		}
		return tx.Users().AddPlace(ctx, place.Creator, place.ID)
	})
	if err != nil {
		// the creator can disappear between the lookup and the transaction
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.Wrap(err, MsgUserNotFound, http.StatusNotFound)
		}
		return nil, errs.Internal(err, msgCreatePlaceFailed)
	}

	log.Ctx(ctx).Info().
		Str("place_id", place.ID).
		Str("creator", place.Creator).
		Msg("Place created")

	s.publish(ctx, place.Creator, EventPlaceCreated, place)
	return place, nil
}

// UpdatePlace changes the title and description of a place
func (s *PlaceService) UpdatePlace(ctx context.Context, placeID string, input UpdatePlaceInput) (*models.Place, error) {
	place, err := s.store.Places().GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NotFound(MsgPlaceNotFoundForID)
		}
		return nil, errs.Internal(err, msgUpdatePlaceFailed)
	}

	place.Title = input.Title
	place.Description = input.Description

	if err := s.store.Places().Update(ctx, place); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NotFound(MsgPlaceNotFoundForID)
		}
		return nil, errs.Internal(err, msgUpdatePlaceFailed)
	}

	s.publish(ctx, place.Creator, EventPlaceUpdated, place)
	return place, nil
}

// DeletePlace removes a place and its entry in the creator's list in one transaction
func (s *PlaceService) DeletePlace(ctx context.Context, placeID string) error {
	place, err := s.store.Places().GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errs.NotFound(MsgPlaceNotFoundForID)
		}
		return errs.Internal(err, msgDeletePlaceFailed)
	}

	creator, err := s.store.Users().GetByID(ctx, place.Creator)
	if err != nil {
		// a place without its creator breaks the ownership invariant
		return errs.Internal(err, msgDeletePlaceFailed)
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Places().Delete(ctx, place.ID); err != nil {
			return err
		}
		return tx.Users().RemovePlace(ctx, creator.ID, place.ID)
	})
	if err != nil {
		// a concurrent delete can win between the lookup and the transaction
		if errors.Is(err, repository.ErrNotFound) {
			return errs.Wrap(err, MsgPlaceNotFoundForID, http.StatusNotFound)
		}
		return errs.Internal(err, msgDeletePlaceFailed)
	}

	log.Ctx(ctx).Info().
		Str("place_id", place.ID).
		Str("creator", creator.ID).
		Msg("Place deleted")

	s.publish(ctx, creator.ID, EventPlaceDeleted, place)
	return nil
}

func (s *PlaceService) publish(ctx context.Context, userID, eventType string, place *models.Place) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, userID, NewPlaceEvent(eventType, place))
}
