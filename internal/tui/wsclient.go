package tui

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"codeberg.org/devmentor/server/internal/chat"
)

// WSClient speaks the chat relay protocol: a join handshake followed
// by free-form events, all wrapped in the {type, payload} envelope
type WSClient struct {
	endpoint     string
	conn         *websocket.Conn
	connected    bool
	events       chan chat.Event
	eventsClosed bool
	mu           sync.Mutex
}

// creates a new chat client for the given ws:// endpoint
func NewWSClient(endpoint string) *WSClient {
	return &WSClient{
		endpoint: endpoint,
		events:   make(chan chat.Event, 64),
	}
}

// Connect establishes the WebSocket connection and starts the pumps
func (c *WSClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec
		return nil
	})

	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec

	// reconnects need a fresh event channel; the old one was closed
	// when the previous read pump exited
	if c.eventsClosed {
		c.events = make(chan chat.Event, 64)
		c.eventsClosed = false
	}

	c.conn = conn
	c.connected = true

	go c.readPump()
	go c.pingPump()

	return nil
}

// continuously reads relay events into the events channel
func (c *WSClient) readPump() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		if c.conn != nil {
			c.conn.Close() //nolint:errcheck,gosec
		}
		c.eventsClosed = true
		close(c.events)
		c.mu.Unlock()
	}()

	for {
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec

		var ev chat.Event
		if err := c.conn.ReadJSON(&ev); err != nil {
			return
		}

		c.events <- ev
	}
}

// sends periodic pings to keep the connection alive
func (c *WSClient) pingPump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()

		if !c.connected || c.conn == nil {
			c.mu.Unlock()
			return
		}

		c.conn.SetWriteDeadline(time.Now().Add(sendTimeout)) //nolint:errcheck,gosec
		if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *WSClient) send(eventType string, payload any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.conn == nil {
		return fmt.Errorf("not connected")
	}

	c.conn.SetWriteDeadline(time.Now().Add(sendTimeout)) //nolint:errcheck,gosec
	return c.conn.WriteJSON(chat.Event{
		Type:    eventType,
		Payload: payloadBytes,
	})
}

// Join announces the display name; the relay replies with the message
// history and starts counting us in presence
func (c *WSClient) Join(displayName string) error {
	return c.send(chat.TypeJoin, chat.JoinPayload{DisplayName: displayName})
}

// SendChatMessage broadcasts a message to the room
func (c *WSClient) SendChatMessage(displayName, text string) error {
	return c.send(chat.TypeSendMessage, ChatMessage{
		DisplayName: displayName,
		Text:        text,
		Timestamp:   time.Now(),
	})
}

// Typing broadcasts a typing indicator to everyone else
func (c *WSClient) Typing(displayName string) error {
	return c.send(chat.TypeTyping, chat.PresencePayload{DisplayName: displayName})
}

// StopTyping clears the typing indicator
func (c *WSClient) StopTyping(displayName string) error {
	return c.send(chat.TypeStopTyping, chat.PresencePayload{DisplayName: displayName})
}

// returns whether the client is connected
func (c *WSClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// closes the WebSocket connection
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close() //nolint:errcheck,gosec
		c.conn = nil
	}
	c.connected = false
}

// sent when the connection is established
type WSConnectedMsg struct{}

// sent when connecting fails
type WSConnectErrorMsg struct {
	err error
}

// wraps a relay event for the update loop
type ChatEventMsg struct {
	event chat.Event
}

// sent when the relay closes the connection
type WSClosedMsg struct{}

// returns a tea.Cmd that connects to the relay
func (c *WSClient) ConnectCmd() tea.Cmd {
	return func() tea.Msg {
		if err := c.Connect(); err != nil {
			return WSConnectErrorMsg{err: err}
		}

		return WSConnectedMsg{}
	}
}

// returns a tea.Cmd that waits for the next relay event
func (c *WSClient) WaitForEventCmd() tea.Cmd {
	c.mu.Lock()
	events := c.events
	c.mu.Unlock()

	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return WSClosedMsg{}
		}

		return ChatEventMsg{event: ev}
	}
}
