package response

import (
	"github.com/gin-gonic/gin"

	"viewtech-backend/internal/shared/pagination"
)

// ListResponse is the wire shape for every paginated listing endpoint.
type ListResponse struct {
	Items      interface{}         `json:"items"`
	Pagination pagination.Envelope `json:"pagination"`
}

// MessageResponse carries a human-readable message, used for errors and
// delete confirmations alike.
type MessageResponse struct {
	Message string `json:"message"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, data)
}

func List(c *gin.Context, items interface{}, meta pagination.Envelope) {
	c.JSON(200, ListResponse{Items: items, Pagination: meta})
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Message: message})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Message(c, 400, message)
}

func Unauthorized(c *gin.Context, message string) {
	Message(c, 401, message)
}

func Forbidden(c *gin.Context, message string) {
	Message(c, 403, message)
}

func NotFound(c *gin.Context, message string) {
	Message(c, 404, message)
}

func Conflict(c *gin.Context, message string) {
	Message(c, 409, message)
}

func InternalServerError(c *gin.Context, message string) {
	Message(c, 500, message)
}
