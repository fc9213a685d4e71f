package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape of every response.
type Envelope struct {
	Success   bool              `json:"success"`
	Data      interface{}       `json:"data,omitempty"`
	Error     string            `json:"error,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{Success: true, Data: data, Timestamp: time.Now().UTC()})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Success: false, Error: message, Timestamp: time.Now().UTC()})
}

// JSONFieldErrors answers with per-field messages.
func JSONFieldErrors(c *gin.Context, code int, message string, fields map[string]string) {
	c.JSON(code, Envelope{Success: false, Error: message, Fields: fields, Timestamp: time.Now().UTC()})
}
