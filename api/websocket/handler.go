package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"codeberg.org/devmentor/server/internal/chat"
	"codeberg.org/devmentor/server/internal/errors"
	"codeberg.org/devmentor/server/internal/logger"
)

// handles WebSocket connections for the community chat room.
// a connection is anonymous until it sends a join event with a
// display name; identity is established in-band, not at upgrade.
func ChatHandler(hub *chat.Hub, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     chat.OriginChecker(allowedOrigin),
	}

	return func(c *gin.Context) {
		clientID, err := chat.GenerateClientID()
		if err != nil {
			errors.InternalError(c, "failed to generate client ID", err)
			return
		}

		ipAddress := c.ClientIP()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.ErrorErr(err, "failed to upgrade connection", "ip", ipAddress)
			return
		}

		client := chat.NewClient(clientID, conn, hub)

		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()

		logger.Info("websocket connection established",
			"client_id", clientID,
			"ip", ipAddress,
		)
	}
}
