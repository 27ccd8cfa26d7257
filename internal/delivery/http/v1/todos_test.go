package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/todoboard/internal/storage"
)

func newTestRouter(store storage.TodoStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := New(zerolog.Nop(), store)

	router := gin.New()
	router.Use(handler.HandleRequestID)

	api := router.Group("/api")
	api.GET("/todos", handler.HandleListTodos)
	api.POST("/todos", handler.HandleCreateTodo)
	api.PUT("/todos/:id", handler.HandleUpdateTodo)
	api.DELETE("/todos/:id", handler.HandleDeleteTodo)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeTodo(t *testing.T, body []byte) todoResponse {
	t.Helper()

	var todo todoResponse
	require.NoError(t, json.Unmarshal(body, &todo))
	return todo
}

func TestCreateTodo(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	todo := decodeTodo(t, rec.Body.Bytes())
	assert.Positive(t, todo.ID)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.False(t, todo.Completed)
	assert.False(t, todo.CreatedAt.IsZero())
}

func TestCreateTodoTrimsTitle(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/todos", `{"title":"  Buy milk  "}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	todo := decodeTodo(t, rec.Body.Bytes())
	assert.Equal(t, "Buy milk", todo.Title)
}

func TestCreateTodoRejectsInvalidTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing title", body: `{}`},
		{name: "empty title", body: `{"title":""}`},
		{name: "whitespace title", body: `{"title":"   "}`},
		{name: "non-string title", body: `{"title":42}`},
		{name: "malformed json", body: `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			router := newTestRouter(store)

			rec := doRequest(t, router, http.MethodPost, "/api/todos", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Title is required"}`, rec.Body.String())

			todos, err := store.GetAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, todos)
		})
	}
}

func TestListTodosNewestFirst(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(store)

	require.Equal(t, http.StatusCreated,
		doRequest(t, router, http.MethodPost, "/api/todos", `{"title":"first"}`).Code)
	require.Equal(t, http.StatusCreated,
		doRequest(t, router, http.MethodPost, "/api/todos", `{"title":"second"}`).Code)

	rec := doRequest(t, router, http.MethodGet, "/api/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var todos []todoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	require.Len(t, todos, 2)
	assert.Equal(t, "second", todos[0].Title)
	assert.Equal(t, "first", todos[1].Title)
}

func TestListTodosEmptyStore(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore())

	rec := doRequest(t, router, http.MethodGet, "/api/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdateTodoCompletedOnly(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeTodo(t, rec.Body.Bytes())

	rec = doRequest(t, router, http.MethodPut, "/api/todos/1", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeTodo(t, rec.Body.Bytes())
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.True(t, updated.Completed)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestUpdateTodoValidation(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "invalid id",
			path:     "/api/todos/abc",
			body:     `{"completed":true}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Invalid todo ID"}`,
		},
		{
			name:     "unknown id",
			path:     "/api/todos/999",
			body:     `{"completed":true}`,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Todo not found"}`,
		},
		{
			name:     "blank title",
			path:     "/api/todos/1",
			body:     `{"title":"   "}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Title must be a non-empty string"}`,
		},
		{
			name:     "non-bool completed",
			path:     "/api/todos/1",
			body:     `{"completed":"yes"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			router := newTestRouter(store)

			rec := doRequest(t, router, http.MethodPost, "/api/todos", `{"title":"Buy milk"}`)
			require.Equal(t, http.StatusCreated, rec.Code)

			rec = doRequest(t, router, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())

			// The stored record is untouched by rejected updates.
			todo, err := store.GetByID(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, "Buy milk", todo.Title)
			assert.False(t, todo.Completed)
		})
	}
}

func TestUpdateTodoNoFields(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/todos/1", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	todo := decodeTodo(t, rec.Body.Bytes())
	assert.Equal(t, "Buy milk", todo.Title)
	assert.False(t, todo.Completed)
}

func TestDeleteTodo(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/todos/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	_, err := store.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrTodoNotFound)

	// Deleting the same id again is a 404.
	rec = doRequest(t, router, http.MethodDelete, "/api/todos/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Todo not found"}`, rec.Body.String())
}

func TestDeleteTodoInvalidID(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore())

	rec := doRequest(t, router, http.MethodDelete, "/api/todos/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid todo ID"}`, rec.Body.String())
}

func TestRequestIDEchoed(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set(requestIDHeader, "test-request-id")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "test-request-id", rec.Header().Get(requestIDHeader))
}

func TestRequestIDGenerated(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore())

	rec := doRequest(t, router, http.MethodGet, "/api/todos", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}
