package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/badr-lol/contact-relay/internal/api/constants"
	"github.com/badr-lol/contact-relay/internal/api/dto/contact"

	"github.com/gin-gonic/gin"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct{}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{}
}

// ValidateContactRequest validates a contact form submission.
// Any shape failure (malformed body, missing name/email/message, field over
// its length limit) is reported as a missing-fields error; the token is
// checked separately by the handler so it gets its own error message.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Read raw body first
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, contact.ErrorResponse{
				Error: "Missing required fields",
			})
			c.Abort()
			return
		}

		// Restore body for binding
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var req contact.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, contact.ErrorResponse{
				Error: "Missing required fields",
			})
			c.Abort()
			return
		}

		// Restore body again for the handler
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}
