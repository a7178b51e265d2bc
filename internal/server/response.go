package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hance08/kinko/internal/errhandler"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func errorBody(msg string) envelope {
	return envelope{Success: false, Error: msg}
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

// fail writes the error response for err and records err on the context for
// the access log.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(errhandler.HTTPStatus(err), errorBody(errhandler.Message(err)))
}

func badRequest(c *gin.Context, msg string) {
	_ = c.Error(errors.New(msg))
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody(msg))
}
