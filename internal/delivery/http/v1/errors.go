package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errTitleRequired   = "Title is required"
	errTitleNotAString = "Title must be a non-empty string"
	errInvalidTodoID   = "Invalid todo ID"
	errInvalidBody     = "Invalid request body"
	errTodoNotFound    = "Todo not found"
	errFailedToFetch   = "Failed to fetch todos"
	errFailedToCreate  = "Failed to create todo"
	errFailedToUpdate  = "Failed to update todo"
	errFailedToDelete  = "Failed to delete todo"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newInternalError(message string) apiError {
	return newAPIError(http.StatusInternalServerError, message)
}
