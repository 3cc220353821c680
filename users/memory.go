package users

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/user/todoserve-go/apperror"
)

// MemoryStore is an in-memory Store implementation. It backs tests and local
// experimentation with the same error contract as the Postgres store:
// conflict on duplicate usernames, not-found on missing ids.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]User
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[int]User)}
}

func (s *MemoryStore) Create(_ context.Context, username, hashedPassword string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.byID {
		if u.Username == username {
			return nil, apperror.NewConflictError("username already exists", nil)
		}
	}

	s.nextID++
	user := User{
		ID:             s.nextID,
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
	s.byID[user.ID] = user
	return &user, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
	}
	return &user, nil
}

func (s *MemoryStore) GetByUsername(_ context.Context, username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.byID {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, apperror.NewNotFoundError(fmt.Sprintf("user with username '%s' not found", username), nil)
}

func (s *MemoryStore) List(_ context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Delete removes a user by id. It is not part of the Store interface since
// no API operation deletes users, but tests for the "token of a deleted
// user" path need it.
func (s *MemoryStore) Delete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}
