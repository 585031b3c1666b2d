package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error" example:"order not found"`
}

// Fail aborts with status and the error text. 5xx causes are kept on the
// context for the access log and replaced by a generic message.
func Fail(c *gin.Context, status int, err error) {
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// BadRequest reports a binding or validation failure.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: ValidationMessage(err)})
}

// OK writes {"success": true} merged with fields.
func OK(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}
