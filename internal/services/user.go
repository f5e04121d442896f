package services

import (
	"context"
	"errors"
	"time"

	"places-api/internal/errs"
	"places-api/internal/models"
	"places-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	msgCreateUserFailed = "Signing up failed, please try again later."
	msgFetchUserFailed  = "Fetching user failed, please try again later."
)

// CreateUserInput represents the request body for creating a user
type CreateUserInput struct {
	Name string `json:"name" validate:"required"`
}

// UserService handles user-related business logic
type UserService struct {
	store repository.Store
}

// NewUserService creates a new user service
func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser creates a new user without places
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	user := &models.User{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Places:    []string{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, errs.Internal(err, msgCreateUserFailed)
	}

	log.Ctx(ctx).Info().Str("user_id", user.ID).Msg("User created")
	return user, nil
}

// GetUser returns a user with its place list
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NotFound(MsgUserNotFound)
		}
		return nil, errs.Internal(err, msgFetchUserFailed)
	}
	return user, nil
}
