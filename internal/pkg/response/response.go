package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tastebook/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError maps a taxonomy error onto the HTTP envelope. Unclassified
// errors are reported as persistence failures.
func FromError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.Validation:
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case apperr.NotFound:
		Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case apperr.Authorization:
		Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this resource")
	case apperr.Conflict:
		Error(c, http.StatusConflict, "CONFLICT", "Resource already exists")
	case apperr.Upload:
		Error(c, http.StatusBadGateway, "UPLOAD_FAILED", "File upload failed")
	default:
		Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Storage operation failed")
	}
}
