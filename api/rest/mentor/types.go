package mentor

import (
	"codeberg.org/devmentor/server/internal/missions"
)

// request payload for a mentor conversation turn
type QueryRequest struct {
	Input     string `json:"input" binding:"required,max=10000"`
	Mission   string `json:"mission,omitempty" binding:"max=10000"`
	Logs      string `json:"logs,omitempty" binding:"max=50000"`
	SessionID string `json:"session_id,omitempty"` // omit to start a new conversation
}

// response payload for a mentor conversation turn
type QueryResponse struct {
	SessionID string                   `json:"session_id"`
	Reply     string                   `json:"reply"`
	IDE       string                   `json:"ide,omitempty"`
	Logs      string                   `json:"logs,omitempty"`
	Missions  map[int]missions.Mission `json:"missions,omitempty"`
}
