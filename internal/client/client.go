// Package client wraps the todo HTTP API behind a typed function set.
// Any non-success status becomes a generic operation-named error; no
// retry, the caller re-triggers failed actions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/todoboard/internal/models"
)

type Client struct {
	logger     zerolog.Logger
	baseURL    string
	httpClient *http.Client
}

func New(logger zerolog.Logger, baseURL string) *Client {
	return &Client{
		logger:     logger,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type todoPayload struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

func (p todoPayload) toModel() (models.Todo, error) {
	todo := models.Todo{
		ID:        p.ID,
		Title:     p.Title,
		Completed: p.Completed,
	}

	err := todo.CreatedAt.UnmarshalText([]byte(p.CreatedAt))
	if err != nil {
		return models.Todo{}, fmt.Errorf("parse createdAt: %w", err)
	}
	return todo, nil
}

func (c *Client) ListTodos(ctx context.Context) ([]models.Todo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/todos", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch todos: unexpected status %d", resp.StatusCode)
	}

	var payload []todoPayload
	err = json.NewDecoder(resp.Body).Decode(&payload)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}

	todos := make([]models.Todo, len(payload))
	for i, p := range payload {
		todos[i], err = p.toModel()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch todos: %w", err)
		}
	}

	c.logger.Debug().
		Int("count", len(todos)).
		Msg("fetched todos")
	return todos, nil
}

type createTodoRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed,omitempty"`
}

func (c *Client) CreateTodo(ctx context.Context, title string) (*models.Todo, error) {
	body, err := json.Marshal(createTodoRequest{Title: title})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	todo, err := c.sendTodo(ctx, http.MethodPost, c.baseURL+"/api/todos", body, http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	c.logger.Debug().
		Int64("todo_id", todo.ID).
		Msg("created todo")
	return todo, nil
}

type UpdateParams struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (c *Client) UpdateTodo(ctx context.Context, id int64, params UpdateParams) (*models.Todo, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	url := fmt.Sprintf("%s/api/todos/%d", c.baseURL, id)
	todo, err := c.sendTodo(ctx, http.MethodPut, url, body, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	c.logger.Debug().
		Int64("todo_id", todo.ID).
		Msg("updated todo")
	return todo, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/api/todos/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to delete todo: unexpected status %d", resp.StatusCode)
	}

	c.logger.Debug().
		Int64("todo_id", id).
		Msg("deleted todo")
	return nil
}

func (c *Client) sendTodo(ctx context.Context, method, url string, body []byte, wantStatus int) (*models.Todo, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload todoPayload
	err = json.NewDecoder(resp.Body).Decode(&payload)
	if err != nil {
		return nil, err
	}

	todo, err := payload.toModel()
	if err != nil {
		return nil, err
	}
	return &todo, nil
}
