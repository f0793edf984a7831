package utils

import (
	"net/http"

	"github.com/badr-lol/contact-relay/internal/api/dto/contact"
	"github.com/badr-lol/contact-relay/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleMessage sends a success response with just a message
func HandleMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, contact.SuccessResponse{Message: message})
}

// HandleError sends an error response and logs it server-side.
// Details, when present, carry the raw result of a failed upstream call.
func HandleError(c *gin.Context, status int, message string, details interface{}, err error) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	c.JSON(status, contact.ErrorResponse{
		Error:   message,
		Details: details,
	})
}
