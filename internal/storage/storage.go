package storage

import (
	"context"
	"errors"

	"github.com/adanyl0v/todoboard/internal/models"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrEmptyTitle   = errors.New("todo title is empty")
)

type TodoStore interface {
	// GetAll returns every todo ordered by creation
	// time descending, newest first.
	GetAll(ctx context.Context) ([]models.Todo, error)

	// GetByID returns ErrTodoNotFound if no todo has the given id.
	GetByID(ctx context.Context, id int64) (*models.Todo, error)

	// Create persists the title exactly as given (trimming is the
	// caller's job), assigns the id and creation timestamp and
	// returns the full record.
	Create(ctx context.Context, title string, completed bool) (*models.Todo, error)

	// Update applies only the non-nil fields. With both fields nil
	// it returns the current record unchanged. It returns
	// ErrTodoNotFound if no todo has the given id.
	Update(ctx context.Context, id int64, params UpdateTodoParams) (*models.Todo, error)

	// Delete returns ErrTodoNotFound if no todo has the given id.
	Delete(ctx context.Context, id int64) error
}

type UpdateTodoParams struct {
	Title     *string
	Completed *bool
}
