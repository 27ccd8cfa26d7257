package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/todoboard/internal/models"
	"github.com/adanyl0v/todoboard/internal/storage"
)

type todoResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

func newTodoResponse(todo *models.Todo) todoResponse {
	return todoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt,
	}
}

func (h *handlerImpl) HandleListTodos(c *gin.Context) {
	logger := h.requestLogger(c)

	todos, err := h.todos.GetAll(c)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to fetch todos")
		abort(c, newInternalError(errFailedToFetch))
		return
	}

	response := make([]todoResponse, len(todos))
	for i, todo := range todos {
		response[i] = newTodoResponse(&todo)
	}

	logger.Info().
		Int("count", len(response)).
		Msg("fetched todos")
	c.JSON(http.StatusOK, response)
}

type createTodoRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (h *handlerImpl) HandleCreateTodo(c *gin.Context) {
	logger := h.requestLogger(c)

	var req createTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errTitleRequired))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		logger.Warn().Msg("blank todo title")
		abort(c, newBadRequestError(errTitleRequired))
		return
	}

	todo, err := h.todos.Create(c, title, req.Completed)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to create todo")
		abort(c, newInternalError(errFailedToCreate))
		return
	}

	logger.Info().
		Int64("todo_id", todo.ID).
		Msg("created todo")
	c.JSON(http.StatusCreated, newTodoResponse(todo))
}

type updateTodoRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (h *handlerImpl) HandleUpdateTodo(c *gin.Context) {
	logger := h.requestLogger(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		logger.Warn().
			Str("id", c.Param("id")).
			Msg("invalid todo id")
		abort(c, newBadRequestError(errInvalidTodoID))
		return
	}

	var req updateTodoRequest
	err = c.ShouldBindJSON(&req)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidBody))
		return
	}

	params := storage.UpdateTodoParams{
		Completed: req.Completed,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			logger.Warn().Msg("blank todo title")
			abort(c, newBadRequestError(errTitleNotAString))
			return
		}
		params.Title = &title
	}

	todo, err := h.todos.Update(c, id, params)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			logger.Warn().
				Int64("todo_id", id).
				Msg("todo not found")
			abort(c, newNotFoundError(errTodoNotFound))
			return
		}
		if errors.Is(err, storage.ErrEmptyTitle) {
			abort(c, newBadRequestError(errTitleNotAString))
			return
		}

		logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to update todo")
		abort(c, newInternalError(errFailedToUpdate))
		return
	}

	logger.Info().
		Int64("todo_id", todo.ID).
		Msg("updated todo")
	c.JSON(http.StatusOK, newTodoResponse(todo))
}

func (h *handlerImpl) HandleDeleteTodo(c *gin.Context) {
	logger := h.requestLogger(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		logger.Warn().
			Str("id", c.Param("id")).
			Msg("invalid todo id")
		abort(c, newBadRequestError(errInvalidTodoID))
		return
	}

	err = h.todos.Delete(c, id)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			logger.Warn().
				Int64("todo_id", id).
				Msg("todo not found")
			abort(c, newNotFoundError(errTodoNotFound))
			return
		}

		logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to delete todo")
		abort(c, newInternalError(errFailedToDelete))
		return
	}

	logger.Info().
		Int64("todo_id", id).
		Msg("deleted todo")
	c.Status(http.StatusNoContent)
}
