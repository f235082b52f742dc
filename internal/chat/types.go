package chat

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// event type constants for the community chat wire protocol
const (
	// sent by a client to bind a display name to its connection
	TypeJoin = "join"

	// sent by a client to broadcast a chat message
	TypeSendMessage = "sendMessage"

	// sent by a client while composing a message
	TypeTyping = "typing"

	// sent by a client when it stops composing
	TypeStopTyping = "stopTyping"

	// sent to a newly joined client with the recent message history
	TypeExistingMessages = "existingMessages"

	// sent when a user joins the chat
	TypeUserJoined = "userJoined"

	// sent when a user leaves the chat
	TypeUserLeft = "userLeft"

	// sent with the current number of joined users
	TypeOnlineUsers = "onlineUsers"

	// sent with a broadcast chat message
	TypeMessage = "message"

	// relayed while another user is composing
	TypeUserTyping = "userTyping"

	// relayed when another user stops composing
	TypeUserStoppedTyping = "userStoppedTyping"
)

// client connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 64 * 1024 // 64 KB
)

// maximum number of messages retained for late joiners
const historyLimit = 100

var (
	ErrConnectionClosed = errors.New("connection closed")
)

// Event is one message on the chat wire. The payload is opaque to the
// relay: it is stored and rebroadcast verbatim, never validated.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`

	// originating connection, set by the client's read pump
	clientID string
}

// JoinPayload is the expected (but unenforced) shape of a join event.
type JoinPayload struct {
	DisplayName string `json:"displayName"`
}

// PresencePayload carries a userJoined/userLeft display name.
type PresencePayload struct {
	DisplayName string `json:"displayName"`
}

// Client represents one websocket connection to the relay.
type Client struct {
	// unique identifier for this connection
	ID string

	// websocket connection
	conn *websocket.Conn

	// hub reference for event routing
	hub *Hub

	// buffered channel of outbound frames
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

// Hub is the process-wide presence and message relay. All state is
// owned by the hub and mutated only inside its Run loop, so mutation
// and the paired broadcast are atomic with respect to other clients.
type Hub struct {
	// all open connections by connection ID
	clients map[string]*Client

	// display name per joined connection; an entry exists only after
	// the connection sends a join event
	members map[string]string

	// bounded FIFO of recent message payloads
	history *History

	// register requests from new connections
	Register chan *Client

	// unregister requests from closing connections
	Unregister chan *Client

	// inbound client events, consumed by the single Run loop
	Inbound chan *Event

	// guards clients/members/history for the external accessors
	mu sync.RWMutex

	// closed exactly once by Shutdown; pumps select against it so they
	// never block on a hub whose Run loop has exited
	shutdown     chan struct{}
	shutdownOnce sync.Once
}
