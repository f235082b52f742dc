package chat

import (
	"encoding/json"

	"codeberg.org/devmentor/server/internal/logger"
)

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		members:    make(map[string]string),
		history:    NewHistory(historyLimit),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Inbound:    make(chan *Event, 256),
		shutdown:   make(chan struct{}),
	}
}

// starts the hub's main loop. All connection events are processed one
// at a time here, which makes the broadcast order total and equal to
// the history buffer's insertion order.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case event := <-h.Inbound:
			h.handleEvent(event)

		case <-h.shutdown:
			h.closeAllConnections()
			return
		}
	}
}

// registerClient tracks a new connection. No session exists yet and no
// broadcasts fire; that happens when the client sends a join event.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	logger.Info("client connected",
		"client_id", client.ID,
		"connections", len(h.clients),
	)
}

// unregisterClient removes a closing connection. If the connection had
// joined, its session is removed and the remaining clients are told.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client.ID]; !exists {
		return
	}

	delete(h.clients, client.ID)
	client.Close()

	name, joined := h.members[client.ID]
	if !joined {
		// disconnected before joining: connection-level cleanup only
		logger.Debug("client disconnected before joining",
			"client_id", client.ID,
		)
		return
	}

	delete(h.members, client.ID)

	logger.Info("user left",
		"client_id", client.ID,
		"display_name", name,
		"online", len(h.members),
	)

	if payload, err := json.Marshal(PresencePayload{DisplayName: name}); err == nil {
		h.broadcast(&Event{Type: TypeUserLeft, Payload: payload}, "")
	}

	h.broadcastPresence()
}

// dispatches one inbound client event
func (h *Hub) handleEvent(ev *Event) {
	switch ev.Type {
	case TypeJoin:
		h.handleJoin(ev)

	case TypeSendMessage:
		h.handleSendMessage(ev)

	case TypeTyping:
		h.relayExcept(TypeUserTyping, ev)

	case TypeStopTyping:
		h.relayExcept(TypeUserStoppedTyping, ev)

	default:
		// unknown events are dropped, not answered
		logger.Debug("unhandled event type",
			"event_type", ev.Type,
			"client_id", ev.clientID,
		)
	}
}

// handleJoin binds a display name to the sending connection. A repeat
// join overwrites the previous name (last join wins) and still fires
// the usual broadcasts.
func (h *Hub) handleJoin(ev *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, exists := h.clients[ev.clientID]
	if !exists {
		return
	}

	// display names are taken as-is: empty and duplicate names are allowed
	var payload JoinPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		logger.Debug("malformed join payload, joining with empty name",
			"client_id", ev.clientID,
		)
	}

	h.members[client.ID] = payload.DisplayName

	logger.Info("user joined",
		"client_id", client.ID,
		"display_name", payload.DisplayName,
		"online", len(h.members),
	)

	// send the recent message history to the joiner only. Snapshot
	// copies, so messages sent afterwards never leak into it.
	if snapshot, err := json.Marshal(h.history.Snapshot()); err == nil {
		if sendErr := client.Send(&Event{Type: TypeExistingMessages, Payload: snapshot}); sendErr != nil {
			logger.ErrorErr(sendErr, "failed to send message history",
				"client_id", client.ID,
			)
		}
	}

	// announce the join to everyone else
	if joined, err := json.Marshal(PresencePayload{DisplayName: payload.DisplayName}); err == nil {
		h.broadcast(&Event{Type: TypeUserJoined, Payload: joined}, client.ID)
	}

	// presence count goes to all clients, the joiner included
	h.broadcastPresence()
}

// handleSendMessage stores the payload in history and echoes it to all
// clients, sender included. The payload is opaque and the sender does
// not need to have joined.
func (h *Hub) handleSendMessage(ev *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.history.Append(ev.Payload)
	h.broadcast(&Event{Type: TypeMessage, Payload: ev.Payload}, "")
}

// relayExcept rebroadcasts an opaque payload under outType to every
// connection except the originator. Nothing is recorded.
func (h *Hub) relayExcept(outType string, ev *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.broadcast(&Event{Type: outType, Payload: ev.Payload}, ev.clientID)
}

// broadcastPresence sends the current session count to every open
// connection (must be called with lock held)
func (h *Hub) broadcastPresence() {
	payload, err := json.Marshal(len(h.members))
	if err != nil {
		return
	}

	h.broadcast(&Event{Type: TypeOnlineUsers, Payload: payload}, "")
}

// the internal fan-out (must be called with lock held)
func (h *Hub) broadcast(ev *Event, excludeClientID string) {
	for clientID, client := range h.clients {
		if clientID == excludeClientID {
			continue
		}

		if err := client.Send(ev); err != nil {
			logger.ErrorErr(err, "failed to send event to client",
				"client_id", clientID,
				"event_type", ev.Type,
			)
		}
	}
}

// returns the number of open connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// returns the number of connections with an active session
func (h *Hub) MemberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members)
}

// returns the display name bound to a connection, if any
func (h *Hub) MemberName(clientID string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	name, ok := h.members[clientID]
	return name, ok
}

// returns the number of retained history entries
func (h *Hub) HistoryLen() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.history.Len()
}

// Shutdown stops the run loop and closes every connection. Safe to
// call from any goroutine, any number of times.
func (h *Hub) Shutdown() {
	h.shutdownOnce.Do(func() {
		close(h.shutdown)
	})
}

// forward hands an inbound event to the run loop. Returns false when
// the hub is shutting down and the event was dropped.
func (h *Hub) forward(ev *Event) bool {
	select {
	case h.Inbound <- ev:
		return true
	case <-h.shutdown:
		return false
	}
}

// release queues an unregister request, giving up once the hub shuts
// down so a pump never blocks on a run loop that already exited
func (h *Hub) release(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.shutdown:
	}
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger.Info("closing all chat connections", "count", len(h.clients))

	for clientID, client := range h.clients {
		client.Close()
		logger.Debug("closed client", "client_id", clientID)
	}

	// history and sessions are ephemeral: discarded, never drained
	h.clients = make(map[string]*Client)
	h.members = make(map[string]string)
	h.history = NewHistory(historyLimit)
}
