package mentor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/internal/errors"
	"codeberg.org/devmentor/server/internal/logger"
	"codeberg.org/devmentor/server/internal/mentor"
	"codeberg.org/devmentor/server/internal/missions"
	"codeberg.org/devmentor/server/internal/sessions"
)

// QueryHandler relays a conversation turn to the mentor backend. The
// conversation lives in memory on this server; the backend stays
// stateless and receives the full history each turn.
func QueryHandler(client *mentor.Client, sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		session, ok := sessionMgr.GetSession(req.SessionID)
		if !ok {
			if req.SessionID != "" {
				errors.NotFound(c, "session")
				return
			}

			var err error
			session, err = sessionMgr.CreateSession()
			if err != nil {
				errors.InternalError(c, "failed to create session", err)
				return
			}
		}

		resp, err := client.Query(c.Request.Context(), &mentor.QueryRequest{
			Input:   req.Input,
			Mission: req.Mission,
			Logs:    req.Logs,
			History: session.History,
		})
		if err != nil {
			errors.UpstreamError(c, "mentor request failed", err)
			return
		}

		parsed := missions.Parse(resp.Session)

		if err := sessionMgr.AppendTurn(session.ID, req.Input, resp.Session, parsed); err != nil {
			// session expired between lookup and append; reply is
			// still worth returning
			logger.Warn("failed to record conversation turn",
				"session_id", session.ID,
				"error", err,
			)
		}

		c.JSON(http.StatusOK, QueryResponse{
			SessionID: session.ID,
			Reply:     resp.Session,
			IDE:       resp.IDE,
			Logs:      resp.Logs,
			Missions:  parsed,
		})
	}
}

// EndSessionHandler discards a conversation
func EndSessionHandler(sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")
		if sessionID == "" {
			errors.BadRequest(c, "session ID required", nil)
			return
		}

		sessionMgr.DeleteSession(sessionID)

		c.Status(http.StatusNoContent)
	}
}
