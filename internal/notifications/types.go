package notifications

import (
	"time"
)

// notification types
const (
	TypeMention = "mention"
	TypeComment = "comment"
)

type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"created_at"`
}

type CreateRequest struct {
	UserID string
	Type   string
	Title  string
	Body   string
	Data   map[string]any
}
