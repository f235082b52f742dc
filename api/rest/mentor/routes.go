package mentor

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/internal/mentor"
	"codeberg.org/devmentor/server/internal/sessions"
)

func RegisterRoutes(router *gin.RouterGroup, client *mentor.Client, sessionMgr *sessions.Manager) {
	mentorGroup := router.Group("/mentor")
	{
		mentorGroup.POST("/query", QueryHandler(client, sessionMgr))
		mentorGroup.DELETE("/sessions/:id", EndSessionHandler(sessionMgr))
	}
}
