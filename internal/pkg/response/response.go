package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourstay/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func SuccessMessage(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Paginated(c *gin.Context, data interface{}, total int64, page, limit int) {
	totalPages := 0
	if limit > 0 {
		totalPages = (int(total) + limit - 1) / limit
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"pagination": gin.H{
			"total_pages":  totalPages,
			"current_page": page,
			"total":        total,
		},
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, message string, errs any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation: http.StatusBadRequest,
	apperr.KindNotFound:   http.StatusNotFound,
	apperr.KindForbidden:  http.StatusForbidden,
	apperr.KindConflict:   http.StatusConflict,
	apperr.KindState:      http.StatusBadRequest,
	apperr.KindInternal:   http.StatusInternalServerError,
}

// FromError is the single boundary mapping operational errors to HTTP status
// codes. Non-operational errors are recorded on the gin context for the
// request logger and hidden from the client outside debug mode.
func FromError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok || kind == apperr.KindInternal {
		_ = c.Error(err)
		msg := "Something went wrong"
		if gin.Mode() == gin.DebugMode {
			msg = err.Error()
		}
		Error(c, http.StatusInternalServerError, msg)
		return
	}
	Error(c, status, apperr.MessageOf(err))
}
