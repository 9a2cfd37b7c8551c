package v1

import "github.com/gin-gonic/gin"

// ServerInterface lists the handlers the v1 API expects.
type ServerInterface interface {
	GetSyncRun(c *gin.Context)
	StartSyncRun(c *gin.Context)
	CancelSyncRun(c *gin.Context)
	PutCredentials(c *gin.Context)
}

func RegisterHandlers(router *gin.RouterGroup, si ServerInterface) {
	router.GET("/sync", si.GetSyncRun)
	router.POST("/sync", si.StartSyncRun)
	router.DELETE("/sync", si.CancelSyncRun)
	router.PUT("/credentials", si.PutCredentials)
}
