package todos

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/user/todoserve-go/apperror"
)

// MemoryStore is an in-memory Store implementation with the same error
// contract as the Postgres store. It backs tests of the resolver layer.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]Todo
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[int]Todo)}
}

func (s *MemoryStore) Create(_ context.Context, params CreateParams) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	todo := Todo{
		ID:          s.nextID,
		Title:       params.Title,
		Description: params.Description,
		Completed:   false,
		DueDate:     params.DueDate,
		UserID:      params.UserID,
		CreatedAt:   time.Now(),
	}
	s.byID[todo.ID] = todo
	return &todo, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.byID[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("todo with id %d not found", id), nil)
	}
	return &todo, nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID int, order Order) ([]Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Todo
	for _, t := range s.byID {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	sortByID(result, order)
	return result, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Todo, 0, len(s.byID))
	for _, t := range s.byID {
		result = append(result, t)
	}
	sortByID(result, OrderAsc)
	return result, nil
}

func (s *MemoryStore) Update(_ context.Context, id int, params UpdateParams) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.byID[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("todo with id %d not found", id), nil)
	}

	if params.Title != nil {
		todo.Title = *params.Title
	}
	if params.Description != nil {
		todo.Description = *params.Description
	}
	if params.Completed != nil {
		todo.Completed = *params.Completed
	}
	if params.SetDueDate {
		todo.DueDate = params.DueDate
	}

	s.byID[id] = todo
	return &todo, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return apperror.NewNotFoundError(fmt.Sprintf("todo with id %d not found", id), nil)
	}
	delete(s.byID, id)
	return nil
}

func sortByID(todos []Todo, order Order) {
	sort.Slice(todos, func(i, j int) bool {
		if order == OrderDesc {
			return todos[i].ID > todos[j].ID
		}
		return todos[i].ID < todos[j].ID
	})
}
