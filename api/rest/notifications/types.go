package notifications

import (
	"codeberg.org/devmentor/server/internal/notifications"
)

// ListResponse wraps a user's notifications with their unread count
type ListResponse struct {
	Notifications []notifications.Notification `json:"notifications"`
	UnreadCount   int                          `json:"unread_count"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
