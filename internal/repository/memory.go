package repository

import (
	"context"
	"fmt"
	"sync"

	"places-api/internal/models"
)

// MemoryStore implements Store in process memory.
//
// Transactions hold the write lock for their whole duration and work on a
// cloned snapshot that replaces the live state only when fn succeeds.
type MemoryStore struct {
	root  *MemoryStore // nil for the root store
	mu    sync.RWMutex
	state *memoryState
}

type memoryState struct {
	places map[string]models.Place
	users  map[string]models.User
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &memoryState{
			places: make(map[string]models.Place),
			users:  make(map[string]models.User),
		},
	}
}

// Places returns the place repository
func (s *MemoryStore) Places() Places {
	return memoryPlaces{s}
}

// Users returns the user repository
func (s *MemoryStore) Users() Users {
	return memoryUsers{s}
}

// WithTx runs fn against a snapshot and publishes it on success
func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.root != nil {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &MemoryStore{root: s, state: s.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.state = tx.state
	return nil
}

// Ping only reports a cancelled context
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// read runs fn with shared access to the current state.
// Inside a transaction the caller already owns the root lock.
func (s *MemoryStore) read(fn func(st *memoryState) error) error {
	if s.root == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn(s.state)
}

func (s *MemoryStore) write(fn func(st *memoryState) error) error {
	if s.root == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.state)
}

func (st *memoryState) clone() *memoryState {
	c := &memoryState{
		places: make(map[string]models.Place, len(st.places)),
		users:  make(map[string]models.User, len(st.users)),
	}
	for id, p := range st.places {
		c.places[id] = p
	}
	for id, u := range st.users {
		c.users[id] = copyUser(u)
	}
	return c
}

func copyUser(u models.User) models.User {
	u.Places = append([]string{}, u.Places...)
	return u
}

type memoryPlaces struct {
	s *MemoryStore
}

func (m memoryPlaces) Create(ctx context.Context, place *models.Place) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.s.write(func(st *memoryState) error {
		if _, ok := st.users[place.Creator]; !ok {
			return fmt.Errorf("creator %s: %w", place.Creator, ErrNotFound)
		}
		if _, ok := st.places[place.ID]; ok {
			return fmt.Errorf("failed to create place: duplicate id %s", place.ID)
		}
		st.places[place.ID] = *place
		return nil
	})
}

func (m memoryPlaces) GetByID(ctx context.Context, id string) (*models.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var place models.Place
	err := m.s.read(func(st *memoryState) error {
		p, ok := st.places[id]
		if !ok {
			return fmt.Errorf("place %s: %w", id, ErrNotFound)
		}
		place = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (m memoryPlaces) GetByIDs(ctx context.Context, ids []string) ([]*models.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	places := make([]*models.Place, 0, len(ids))
	err := m.s.read(func(st *memoryState) error {
		for _, id := range ids {
			if p, ok := st.places[id]; ok {
				places = append(places, &p)
			}
		}
		return nil
	})
	return places, err
}

func (m memoryPlaces) Update(ctx context.Context, place *models.Place) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.s.write(func(st *memoryState) error {
		stored, ok := st.places[place.ID]
		if !ok {
			return fmt.Errorf("place %s: %w", place.ID, ErrNotFound)
		}
		stored.Title = place.Title
		stored.Description = place.Description
		st.places[place.ID] = stored
		return nil
	})
}

func (m memoryPlaces) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.s.write(func(st *memoryState) error {
		if _, ok := st.places[id]; !ok {
			return fmt.Errorf("place %s: %w", id, ErrNotFound)
		}
		delete(st.places, id)
		return nil
	})
}

type memoryUsers struct {
	s *MemoryStore
}

func (m memoryUsers) Create(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.s.write(func(st *memoryState) error {
		if _, ok := st.users[user.ID]; ok {
			return fmt.Errorf("failed to create user: duplicate id %s", user.ID)
		}
		st.users[user.ID] = copyUser(*user)
		return nil
	})
}

func (m memoryUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var user models.User
	err := m.s.read(func(st *memoryState) error {
		u, ok := st.users[id]
		if !ok {
			return fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		user = copyUser(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (m memoryUsers) AddPlace(ctx context.Context, userID, placeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.s.write(func(st *memoryState) error {
		u, ok := st.users[userID]
		if !ok {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		u.Places = append(append([]string{}, u.Places...), placeID)
		st.users[userID] = u
		return nil
	})
}

func (m memoryUsers) RemovePlace(ctx context.Context, userID, placeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.s.write(func(st *memoryState) error {
		u, ok := st.users[userID]
		if !ok {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		u = copyUser(u)
		u.RemovePlace(placeID)
		st.users[userID] = u
		return nil
	})
}
