package response

import (
	"log"
	"net/http"

	"arunika.id/aksipoin/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// Success writes the standard success envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

// Error writes the standard error envelope. Internal errors are logged
// server-side and replaced with a generic message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[internal error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "something went wrong"
	}

	c.JSON(code, gin.H{"status": "error", "message": message})
}

// BadRequest writes a 400 error envelope with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
}
