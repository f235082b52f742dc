package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/api/rest/auth"
	"codeberg.org/devmentor/server/api/rest/health"
	"codeberg.org/devmentor/server/api/rest/mentor"
	"codeberg.org/devmentor/server/api/rest/notifications"
	"codeberg.org/devmentor/server/api/rest/posts"
	"codeberg.org/devmentor/server/api/rest/users"
	"codeberg.org/devmentor/server/api/websocket"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.AllowedOrigin))
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.userRepo)
		users.RegisterRoutes(v1, server.userRepo, server.postRepo)
		posts.RegisterRoutes(v1, server.postRepo, server.userRepo, server.notifier)
		notifications.RegisterRoutes(v1, server.notifier)
		mentor.RegisterRoutes(v1, server.mentorClient, server.sessionMgr)
		websocket.RegisterRoutes(v1, server.hub, server.config.AllowedOrigin)
	}
}
