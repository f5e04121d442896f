package services

import (
	"context"
	"sync"
	"testing"

	"places-api/internal/errs"
	"places-api/internal/models"
	"places-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultyStore wraps a store and fails the operations named in faults
type faultyStore struct {
	repository.Store
	f *faults
}

type faults struct {
	mu      sync.Mutex
	errs    map[string]error
	created []string
}

func (f *faults) err(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[op]
}

func newFaultyStore(base repository.Store, failures map[string]error) *faultyStore {
	return &faultyStore{Store: base, f: &faults{errs: failures}}
}

func (s *faultyStore) Places() repository.Places {
	return faultyPlaces{Places: s.Store.Places(), f: s.f}
}

func (s *faultyStore) Users() repository.Users {
	return faultyUsers{Users: s.Store.Users(), f: s.f}
}

func (s *faultyStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := s.f.err("begin"); err != nil {
		return err
	}
	return s.Store.WithTx(ctx, func(tx repository.Store) error {
		return fn(&faultyStore{Store: tx, f: s.f})
	})
}

type faultyPlaces struct {
	repository.Places
	f *faults
}

func (p faultyPlaces) Create(ctx context.Context, place *models.Place) error {
	if err := p.f.err("places.Create"); err != nil {
		return err
	}
	if err := p.Places.Create(ctx, place); err != nil {
		return err
	}
	p.f.mu.Lock()
	p.f.created = append(p.f.created, place.ID)
	p.f.mu.Unlock()
	return nil
}

func (p faultyPlaces) GetByID(ctx context.Context, id string) (*models.Place, error) {
	if err := p.f.err("places.GetByID"); err != nil {
		return nil, err
	}
	return p.Places.GetByID(ctx, id)
}

func (p faultyPlaces) GetByIDs(ctx context.Context, ids []string) ([]*models.Place, error) {
	if err := p.f.err("places.GetByIDs"); err != nil {
		return nil, err
	}
	return p.Places.GetByIDs(ctx, ids)
}

func (p faultyPlaces) Update(ctx context.Context, place *models.Place) error {
	if err := p.f.err("places.Update"); err != nil {
		return err
	}
	return p.Places.Update(ctx, place)
}

func (p faultyPlaces) Delete(ctx context.Context, id string) error {
	if err := p.f.err("places.Delete"); err != nil {
		return err
	}
	return p.Places.Delete(ctx, id)
}

type faultyUsers struct {
	repository.Users
	f *faults
}

func (u faultyUsers) Create(ctx context.Context, user *models.User) error {
	if err := u.f.err("users.Create"); err != nil {
		return err
	}
	return u.Users.Create(ctx, user)
}

func (u faultyUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := u.f.err("users.GetByID"); err != nil {
		return nil, err
	}
	return u.Users.GetByID(ctx, id)
}

func (u faultyUsers) AddPlace(ctx context.Context, userID, placeID string) error {
	if err := u.f.err("users.AddPlace"); err != nil {
		return err
	}
	return u.Users.AddPlace(ctx, userID, placeID)
}

func (u faultyUsers) RemovePlace(ctx context.Context, userID, placeID string) error {
	if err := u.f.err("users.RemovePlace"); err != nil {
		return err
	}
	return u.Users.RemovePlace(ctx, userID, placeID)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events map[string][]Event
}

func (n *recordingNotifier) Publish(_ context.Context, userID string, event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.events == nil {
		n.events = make(map[string][]Event)
	}
	n.events[userID] = append(n.events[userID], event)
}

func (n *recordingNotifier) types(userID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, e := range n.events[userID] {
		out = append(out, e.Type)
	}
	return out
}

func assertHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func createUser(t *testing.T, store repository.Store, name string) *models.User {
	t.Helper()
	user, err := NewUserService(store).CreateUser(context.Background(), CreateUserInput{Name: name})
	require.NoError(t, err)
	return user
}

func placeInput(title, creator string) CreatePlaceInput {
	return CreatePlaceInput{
		Title:       title,
		Description: "A place worth visiting",
		Address:     "20 W 34th St, New York, NY 10001",
		Location:    models.Location{Lat: 40.7484405, Lng: -73.9878584},
		Creator:     creator,
	}
}
