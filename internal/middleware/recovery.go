package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/b3ofer/internal/domain/dto"
	"github.com/guttosm/b3ofer/internal/logger"
)

// RecoveryMiddleware recovers from panics raised by later handlers.
//
// Behavior:
//   - Logs the panic value, the request id and the stack trace at error level.
//   - Aborts with 500 and a dto.ErrorResponse body.
//
// Example response:
//
//	HTTP/1.1 500 Internal Server Error
//	{"message": "Internal server error", "error": "boom", "timestamp": "..."}
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.L().Error().
					Str("request_id", requestID(c)).
					Str("panic", fmt.Sprintf("%v", r)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse("Internal server error", fmt.Errorf("%v", r)))
			}
		}()

		c.Next()
	}
}
