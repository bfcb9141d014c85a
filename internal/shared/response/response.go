package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the error payload for every failing request. Success
// payloads are endpoint-specific and written by the handlers directly
// because their shape is part of the serving contract.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func Error(c *gin.Context, status int, errorCode string, message string) {
	c.JSON(status, ErrorBody{
		Error: message,
		Code:  errorCode,
	})
}
