package notifications

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/internal/auth"
	"codeberg.org/devmentor/server/internal/notifications"
)

func RegisterRoutes(router *gin.RouterGroup, svc *notifications.Service) {
	notifGroup := router.Group("/notifications")
	notifGroup.Use(auth.AuthMiddleware())
	{
		notifGroup.GET("", ListHandler(svc))
		notifGroup.GET("/unread-count", UnreadCountHandler(svc))
		notifGroup.PUT("/:id/read", MarkReadHandler(svc))
		notifGroup.PUT("/read-all", MarkAllReadHandler(svc))
	}
}
