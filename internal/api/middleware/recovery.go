package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/badr-lol/contact-relay/internal/api/dto/contact"
	"github.com/badr-lol/contact-relay/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics into a generic 500 response. The original error is
// logged server-side only and never echoed to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := logging.GetGlobalLogger()
				logger.Error("panic recovered: %s %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					fmt.Sprintf("%v", err),
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, contact.ErrorResponse{
					Error: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
