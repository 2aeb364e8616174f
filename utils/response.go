package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope every handler writes. Exactly one of
// Error and Data is normally set; Message is optional flavor text.
type Response struct {
	Status  int         `json:"-"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func write(c *gin.Context, resp *Response) {
	c.JSON(resp.Status, resp)
}

func writeError(c *gin.Context, status int, message string) {
	write(c, &Response{Status: status, Error: message})
}

func Success(c *gin.Context, data interface{}) {
	write(c, &Response{Status: http.StatusOK, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	write(c, &Response{
		Status:  http.StatusCreated,
		Message: "Resource created successfully",
		Data:    data,
	})
}

func BadRequest(c *gin.Context, message string) {
	writeError(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	writeError(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	writeError(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	writeError(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	writeError(c, http.StatusConflict, message)
}

// TooManyRequests optionally carries extra data (retry hints) alongside
// the error message.
func TooManyRequests(c *gin.Context, message string, data ...interface{}) {
	resp := &Response{Status: http.StatusTooManyRequests, Error: message}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	write(c, resp)
}

func InternalError(c *gin.Context, message string) {
	writeError(c, http.StatusInternalServerError, message)
}
