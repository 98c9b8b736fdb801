package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageLink points at an adjacent page in a paginated listing.
type PageLink struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the envelope's pagination block, populated with next/prev
// links when applicable.
type Pagination struct {
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
	Next  *PageLink `json:"next,omitempty"`
	Prev  *PageLink `json:"prev,omitempty"`
}

// Envelope is the standard JSON response shape.
type Envelope struct {
	Success    bool         `json:"success"`
	Data       any          `json:"data,omitempty"`
	Message    string       `json:"message,omitempty"`
	Error      string       `json:"error,omitempty"`
	Fields     []FieldError `json:"fields,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

// JSONOK sends a success envelope.
func JSONOK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// JSONMessage sends a success envelope with a human-readable message.
func JSONMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: true, Message: message})
}

// JSONPage sends a success envelope with a pagination block.
func JSONPage(c *gin.Context, data any, p *Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: p})
}

// JSONError translates an error into the envelope. Domain errors keep their
// code and status; anything else becomes an opaque 500.
func JSONError(c *gin.Context, err error) {
	logger := GetLogger()
	if appErr, ok := AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus(), Envelope{
			Success: false,
			Error:   appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		})
		return
	}
	logger.Error("unexpected error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Error:   "internal",
		Message: "An unexpected error occurred. Please try again later.",
	})
}

// ErrorHandler is a middleware that catches panics and returns an opaque
// structured 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("unhandled panic", zap.Any("error", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
					Success: false,
					Error:   "internal",
					Message: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}
