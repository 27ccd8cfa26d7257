package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/todoboard/internal/storage"
)

type Handler interface {
	HandleRequestID(c *gin.Context)

	HandleListTodos(c *gin.Context)
	HandleCreateTodo(c *gin.Context)
	HandleUpdateTodo(c *gin.Context)
	HandleDeleteTodo(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	todos  storage.TodoStore
}

func New(
	logger zerolog.Logger,
	todoStore storage.TodoStore,
) Handler {
	return &handlerImpl{
		logger: logger,
		todos:  todoStore,
	}
}
