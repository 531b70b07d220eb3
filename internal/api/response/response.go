package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse wraps list payloads
type ListResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// JSON sends data as-is with 200 OK
func JSON(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// List sends {"success": true, "data": [...]}
func List(c *gin.Context, data any) {
	c.JSON(http.StatusOK, ListResponse{Success: true, Data: data})
}
