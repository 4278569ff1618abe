package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"group-chat-backend/internal/handlers"
	"group-chat-backend/internal/middleware"
)

func APIEndpoints(r *gin.Engine, groupH *handlers.GroupHandler, wsH *handlers.WebSocketHandler, adminPassword string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/ws", wsH.HandleWebSocket)

	// Админские endpoints
	groups := r.Group("/api/groups", middleware.VerifyAdmin(adminPassword))
	{
		groups.POST("/create", groupH.CreateGroup)
		groups.GET("", groupH.ListGroups)
		groups.GET("/stats", groupH.GetStats)
		groups.PUT("/:groupName", groupH.UpdateGroup)
		groups.DELETE("/:groupName", groupH.DeleteGroup)
	}
}
