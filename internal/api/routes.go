package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes. Every endpoint is read-only; writes
// go through the load command, not HTTP.
func SetupRoutes(router *gin.Engine, handler *GamesHandler) {
	router.GET("/healthz", handler.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/games", handler.ListGames)
	v1.GET("/stats", handler.SourceStats)
}
