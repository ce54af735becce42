package response

import "github.com/gin-gonic/gin"

// APIResponse is the uniform envelope every endpoint returns.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
	})
}

// ErrorDetail adds a raw error string to the envelope. Handlers only use it
// outside production mode.
func ErrorDetail(c *gin.Context, status int, message, detail string) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}
