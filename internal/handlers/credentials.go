package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/agrilabs/fivetran-sync-agent/api/v1"
	"github.com/agrilabs/fivetran-sync-agent/internal/services"
)

// PutCredentials stores the Fivetran API key and secret
// (PUT /credentials)
func (h *Handler) PutCredentials(c *gin.Context) {
	var req v1.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Secrets().Save(ctx, h.secretScope, services.SecretKeyAPIKey, req.APIKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store credentials"})
		return
	}
	if err := h.store.Secrets().Save(ctx, h.secretScope, services.SecretKeyAPISecret, req.APISecret); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store credentials"})
		return
	}

	zap.S().Infow("API credentials updated", "scope", h.secretScope)
	c.Status(http.StatusNoContent)
}
