package websocket

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/internal/chat"
)

func RegisterRoutes(router *gin.RouterGroup, hub *chat.Hub, allowedOrigin string) {
	router.GET("/ws", ChatHandler(hub, allowedOrigin))
}
