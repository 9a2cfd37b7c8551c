package handlers

import (
	"github.com/agrilabs/fivetran-sync-agent/internal/services"
	"github.com/agrilabs/fivetran-sync-agent/internal/store"
)

type Handler struct {
	syncSrv     *services.SyncOrchestrator
	store       *store.Store
	secretScope string
}

func New(syncSrv *services.SyncOrchestrator, st *store.Store, secretScope string) *Handler {
	return &Handler{
		syncSrv:     syncSrv,
		store:       st,
		secretScope: secretScope,
	}
}
