package handlers

import (
	"github.com/badr-lol/contact-relay/internal/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports liveness. The relay holds no state and no connections, so
// there is nothing else to probe.
func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleMessage(c, "Health check OK")
}
