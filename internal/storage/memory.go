package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adanyl0v/todoboard/internal/models"
)

// MemoryStore keeps todos in a mutex-guarded map. It backs the
// STORAGE_DRIVER=memory mode and serves as the test double for
// everything that takes a TodoStore.
type MemoryStore struct {
	mu     sync.RWMutex
	todos  map[int64]models.Todo
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		todos:  make(map[int64]models.Todo),
		nextID: 1,
	}
}

func (s *MemoryStore) GetAll(_ context.Context) ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]models.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		todos = append(todos, todo)
	}

	sort.Slice(todos, func(i, j int) bool {
		if todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].ID > todos[j].ID
		}
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}
	return &todo, nil
}

func (s *MemoryStore) Create(_ context.Context, title string, completed bool) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := models.Todo{
		ID:        s.nextID,
		Title:     title,
		Completed: completed,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++

	s.todos[todo.ID] = todo
	return &todo, nil
}

func (s *MemoryStore) Update(_ context.Context, id int64, params UpdateTodoParams) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}

	if params.Title != nil {
		todo.Title = *params.Title
	}
	if params.Completed != nil {
		todo.Completed = *params.Completed
	}

	s.todos[id] = todo
	return &todo, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[id]; !exists {
		return ErrTodoNotFound
	}

	delete(s.todos, id)
	return nil
}
