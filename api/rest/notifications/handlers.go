package notifications

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/internal/auth"
	"codeberg.org/devmentor/server/internal/errors"
	"codeberg.org/devmentor/server/internal/notifications"
)

func ListHandler(svc *notifications.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "authentication required")
			return
		}

		limit := 50
		if l := c.Query("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		unreadOnly := c.Query("unread") == "true"
		notifs, err := svc.ListForUser(c.Request.Context(), userID, limit, unreadOnly)
		if err != nil {
			errors.InternalError(c, "failed to fetch notifications", err)
			return
		}

		unreadCount, err := svc.GetUnreadCount(c.Request.Context(), userID)
		if err != nil {
			unreadCount = 0
		}

		if notifs == nil {
			notifs = []notifications.Notification{}
		}

		c.JSON(http.StatusOK, ListResponse{
			Notifications: notifs,
			UnreadCount:   unreadCount,
		})
	}
}

func MarkReadHandler(svc *notifications.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "authentication required")
			return
		}

		notificationID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if err := svc.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
			errors.InternalError(c, "failed to mark notification as read", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func MarkAllReadHandler(svc *notifications.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "authentication required")
			return
		}

		if err := svc.MarkAllRead(c.Request.Context(), userID); err != nil {
			errors.InternalError(c, "failed to mark notifications as read", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func UnreadCountHandler(svc *notifications.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "authentication required")
			return
		}

		count, err := svc.GetUnreadCount(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to get unread count", err)
			return
		}

		c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
	}
}
