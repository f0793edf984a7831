package handlers

import (
	"net/http"

	"github.com/badr-lol/contact-relay/internal/api/constants"
	"github.com/badr-lol/contact-relay/internal/api/dto/contact"
	"github.com/badr-lol/contact-relay/internal/service"
	"github.com/badr-lol/contact-relay/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	turnstileService *service.TurnstileService
	resendService    *service.ResendService
}

func NewContactHandler(turnstile *service.TurnstileService, resend *service.ResendService) *ContactHandler {
	return &ContactHandler{
		turnstileService: turnstile,
		resendService:    resend,
	}
}

// Submit relays one contact form submission: verify the Turnstile token,
// then dispatch the email. Verification must succeed before the email
// service is ever called.
func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleError(c, http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	req, ok := contactData.(*contact.ContactRequest)
	if !ok {
		utils.HandleError(c, http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	if req.TurnstileToken == "" {
		utils.HandleError(c, http.StatusBadRequest, "Missing Turnstile token", nil, nil)
		return
	}

	// Verify Turnstile token
	result, err := h.turnstileService.Verify(c.Request.Context(), req.TurnstileToken)
	if err != nil {
		utils.HandleError(c, http.StatusBadRequest, "Turnstile verification failed", err.Error(), err)
		return
	}
	if !result.Success {
		utils.HandleError(c, http.StatusBadRequest, "Turnstile verification failed", result, nil)
		return
	}

	// Send email using Resend
	sendResult, err := h.resendService.SendContactEmail(
		c.Request.Context(),
		req.Name,
		req.Email,
		req.Subject,
		req.Message,
	)
	if err != nil {
		utils.HandleError(c, http.StatusInternalServerError, "Internal server error", nil, err)
		return
	}
	if !sendResult.OK() {
		utils.HandleError(c, http.StatusInternalServerError, "Failed to send email", sendResult.Body, nil)
		return
	}

	utils.HandleMessage(c, "Email sent successfully")
}
