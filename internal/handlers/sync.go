package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/agrilabs/fivetran-sync-agent/api/v1"
	"github.com/agrilabs/fivetran-sync-agent/internal/services"
)

// GetSyncRun returns the status of the current or most recent run
// (GET /sync)
func (h *Handler) GetSyncRun(c *gin.Context) {
	status := h.syncSrv.Status()
	if status.RunID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sync run yet"})
		return
	}

	var resp v1.SyncRunStatus
	resp.FromModel(status)
	c.JSON(http.StatusOK, resp)
}

// StartSyncRun triggers an orchestration run
// (POST /sync)
func (h *Handler) StartSyncRun(c *gin.Context) {
	var req v1.SyncRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status, err := h.syncSrv.Start(c.Request.Context(), req.Connector)
	switch {
	case errors.Is(err, services.ErrRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrUnknownConnector):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrSecretNotFound):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": "API credentials not configured"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var resp v1.SyncRunStatus
	resp.FromModel(status)
	c.JSON(http.StatusAccepted, resp)
}

// CancelSyncRun aborts the in-flight run
// (DELETE /sync)
func (h *Handler) CancelSyncRun(c *gin.Context) {
	if err := h.syncSrv.Cancel(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
