package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/todoboard/internal/models"
)

type postgresStore struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresStore(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TodoStore {
	return &postgresStore{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *postgresStore) GetAll(ctx context.Context) ([]models.Todo, error) {
	const selectTodosQuery = `
SELECT id,
       title,
       completed,
       created_at
FROM todos
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(ctx, selectTodosQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select todos")
		return nil, err
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		var todo models.Todo
		err = rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Completed,
			&todo.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan todo")
			return nil, err
		}
		todos = append(todos, todo)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(todos)).
		Msg("selected todos")
	return todos, nil
}

func (s *postgresStore) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	const selectTodoQuery = `
SELECT id,
       title,
       completed,
       created_at
FROM todos
WHERE id = $1
`
	var todo models.Todo
	err := s.pgPool.QueryRow(
		ctx,
		selectTodoQuery,
		id,
	).Scan(
		&todo.ID,
		&todo.Title,
		&todo.Completed,
		&todo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to select todo")
		return nil, err
	}

	s.logger.Debug().
		Int64("todo_id", todo.ID).
		Msg("selected todo")
	return &todo, nil
}

func (s *postgresStore) Create(ctx context.Context, title string, completed bool) (*models.Todo, error) {
	const insertTodoQuery = `
INSERT INTO todos (title, completed)
VALUES ($1, $2)
RETURNING id, title, completed, created_at
`
	var todo models.Todo
	err := s.pgPool.QueryRow(
		ctx,
		insertTodoQuery,
		title,
		completed,
	).Scan(
		&todo.ID,
		&todo.Title,
		&todo.Completed,
		&todo.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			s.logger.Warn().Msg("rejected blank todo title")
			return nil, ErrEmptyTitle
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert todo")
		return nil, err
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Msg("created todo")
	return &todo, nil
}

func (s *postgresStore) Update(ctx context.Context, id int64, params UpdateTodoParams) (*models.Todo, error) {
	// NULL parameters leave the column as is, which also makes the
	// no-fields update return the current record unchanged.
	const updateTodoQuery = `
UPDATE todos
SET title     = COALESCE($1, title),
    completed = COALESCE($2, completed)
WHERE id = $3
RETURNING id, title, completed, created_at
`
	var todo models.Todo
	err := s.pgPool.QueryRow(
		ctx,
		updateTodoQuery,
		params.Title,
		params.Completed,
		id,
	).Scan(
		&todo.ID,
		&todo.Title,
		&todo.Completed,
		&todo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("todo_id", id).
				Msg("todo not found")
			return nil, ErrTodoNotFound
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			s.logger.Warn().
				Int64("todo_id", id).
				Msg("rejected blank todo title")
			return nil, ErrEmptyTitle
		}

		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to update todo")
		return nil, err
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Msg("updated todo")
	return &todo, nil
}

func (s *postgresStore) Delete(ctx context.Context, id int64) error {
	const deleteTodoQuery = `
DELETE FROM todos
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteTodoQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to delete todo")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Int64("todo_id", id).
			Msg("todo not found")
		return ErrTodoNotFound
	}

	s.logger.Info().
		Int64("todo_id", id).
		Msg("deleted todo")
	return nil
}
