package tui

import (
	"time"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateChat
	StateMentor
)

// main TUI application model
type Model struct {
	state   AppState
	width   int
	height  int
	err     error
	welcome *Welcome
	chat    *ChatModel
	mentor  *MentorModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition into the chat room
type EnterChatMsg struct{}

// sent to transition into a mentor conversation
type EnterMentorMsg struct{}

// one chat room message as it travels over the wire; the relay
// forwards these verbatim, so clients own the shape
type ChatMessage struct {
	DisplayName string    `json:"displayName"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
}

const (
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	sendTimeout = 10 * time.Second

	mentorRequestTimeout = 120 * time.Second
)
