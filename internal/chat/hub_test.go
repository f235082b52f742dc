package chat

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id string, hub *Hub) *Client {
	return &Client{
		ID:   id,
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func rawPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}

// reads the next event from a client's send buffer
func nextEvent(t *testing.T, c *Client) Event {
	t.Helper()

	select {
	case frame := <-c.send:
		var ev Event
		require.NoError(t, json.Unmarshal(frame, &ev))
		return ev
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func drainClient(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

func TestHubCreation(t *testing.T) {
	hub := NewHub()
	require.NotNil(t, hub)
	assert.NotNil(t, hub.Register)
	assert.NotNil(t, hub.Unregister)
	assert.NotNil(t, hub.Inbound)
	assert.Equal(t, 0, hub.HistoryLen())
}

func TestHubRegisterDoesNotCreateSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient("client-1", hub)
	hub.Register <- client
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, hub.ClientCount())
	assert.Equal(t, 0, hub.MemberCount(), "a connection has no session until it joins")
}

func TestHubJoinBroadcasts(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	alice := newTestClient("client-a", hub)
	bob := newTestClient("client-b", hub)

	hub.Register <- alice
	hub.Register <- bob
	time.Sleep(100 * time.Millisecond)

	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "Ann"}), clientID: "client-a"}
	time.Sleep(100 * time.Millisecond)

	// the joiner gets the (empty) history snapshot, then the count
	ev := nextEvent(t, alice)
	assert.Equal(t, TypeExistingMessages, ev.Type)

	var history []json.RawMessage
	require.NoError(t, json.Unmarshal(ev.Payload, &history))
	assert.Empty(t, history)

	ev = nextEvent(t, alice)
	assert.Equal(t, TypeOnlineUsers, ev.Type)

	var count int
	require.NoError(t, json.Unmarshal(ev.Payload, &count))
	assert.Equal(t, 1, count)

	// the other connection sees userJoined then the count
	ev = nextEvent(t, bob)
	assert.Equal(t, TypeUserJoined, ev.Type)

	var joined PresencePayload
	require.NoError(t, json.Unmarshal(ev.Payload, &joined))
	assert.Equal(t, "Ann", joined.DisplayName)

	ev = nextEvent(t, bob)
	assert.Equal(t, TypeOnlineUsers, ev.Type)
}

func TestHubJoinExcludesJoinerFromUserJoined(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	alice := newTestClient("client-a", hub)
	hub.Register <- alice
	time.Sleep(100 * time.Millisecond)

	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "Ann"}), clientID: "client-a"}
	time.Sleep(100 * time.Millisecond)

	// snapshot + count, and nothing else: no self userJoined
	assert.Equal(t, TypeExistingMessages, nextEvent(t, alice).Type)
	assert.Equal(t, TypeOnlineUsers, nextEvent(t, alice).Type)

	select {
	case frame := <-alice.send:
		t.Errorf("joiner should not receive further events, got %s", frame)
	default:
	}
}

func TestHubBoundedHistory(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	sender := newTestClient("client-a", hub)
	hub.Register <- sender
	time.Sleep(50 * time.Millisecond)

	total := 150
	for i := range total {
		payload := rawPayload(t, map[string]any{"username": "Ann", "content": fmt.Sprintf("msg-%d", i)})
		hub.Inbound <- &Event{Type: TypeSendMessage, Payload: payload, clientID: "client-a"}

		// the bound holds at every intermediate point, not just at the end
		if i == historyLimit {
			time.Sleep(50 * time.Millisecond)
			assert.LessOrEqual(t, hub.HistoryLen(), historyLimit)
		}
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, historyLimit, hub.HistoryLen())

	// a late joiner sees exactly the last 100 in submission order
	late := newTestClient("client-b", hub)
	hub.Register <- late
	time.Sleep(50 * time.Millisecond)

	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "Bo"}), clientID: "client-b"}
	time.Sleep(100 * time.Millisecond)

	ev := nextEvent(t, late)
	require.Equal(t, TypeExistingMessages, ev.Type)

	var history []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(ev.Payload, &history))
	require.Len(t, history, historyLimit)
	assert.Equal(t, fmt.Sprintf("msg-%d", total-historyLimit), history[0].Content)
	assert.Equal(t, fmt.Sprintf("msg-%d", total-1), history[historyLimit-1].Content)
}

func TestHubSnapshotIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	sender := newTestClient("client-a", hub)
	hub.Register <- sender
	time.Sleep(50 * time.Millisecond)

	for i := range 3 {
		payload := rawPayload(t, map[string]any{"content": fmt.Sprintf("before-%d", i)})
		hub.Inbound <- &Event{Type: TypeSendMessage, Payload: payload, clientID: "client-a"}
	}

	time.Sleep(100 * time.Millisecond)

	joiner := newTestClient("client-b", hub)
	hub.Register <- joiner
	time.Sleep(50 * time.Millisecond)

	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "Bo"}), clientID: "client-b"}
	time.Sleep(100 * time.Millisecond)

	snapshot := nextEvent(t, joiner)
	require.Equal(t, TypeExistingMessages, snapshot.Type)

	// messages sent after the snapshot was delivered must not appear in it
	hub.Inbound <- &Event{Type: TypeSendMessage, Payload: rawPayload(t, map[string]any{"content": "after"}), clientID: "client-a"}
	time.Sleep(100 * time.Millisecond)

	var history []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(snapshot.Payload, &history))
	require.Len(t, history, 3)

	for i, msg := range history {
		assert.Equal(t, fmt.Sprintf("before-%d", i), msg.Content)
	}
}

func TestHubMessageEchoedToSender(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	alice := newTestClient("client-a", hub)
	bob := newTestClient("client-b", hub)
	hub.Register <- alice
	hub.Register <- bob
	time.Sleep(50 * time.Millisecond)

	payload := rawPayload(t, map[string]any{"username": "Ann", "content": "hi"})
	hub.Inbound <- &Event{Type: TypeSendMessage, Payload: payload, clientID: "client-a"}
	time.Sleep(100 * time.Millisecond)

	for _, c := range []*Client{alice, bob} {
		ev := nextEvent(t, c)
		assert.Equal(t, TypeMessage, ev.Type)
		assert.JSONEq(t, string(payload), string(ev.Payload))
	}
}

func TestHubSendBeforeJoinAccepted(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	// the sender never joins; the message still lands in history and
	// is still broadcast
	ghost := newTestClient("client-a", hub)
	other := newTestClient("client-b", hub)
	hub.Register <- ghost
	hub.Register <- other
	time.Sleep(50 * time.Millisecond)

	hub.Inbound <- &Event{Type: TypeSendMessage, Payload: rawPayload(t, map[string]any{"content": "anon"}), clientID: "client-a"}
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, hub.HistoryLen())
	assert.Equal(t, 0, hub.MemberCount())
	assert.Equal(t, TypeMessage, nextEvent(t, other).Type)
}

func TestHubTypingExcludesSender(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	alice := newTestClient("client-a", hub)
	bob := newTestClient("client-b", hub)
	cy := newTestClient("client-c", hub)

	for _, c := range []*Client{alice, bob, cy} {
		hub.Register <- c
	}
	time.Sleep(50 * time.Millisecond)

	payload := rawPayload(t, map[string]any{"username": "Ann"})
	hub.Inbound <- &Event{Type: TypeTyping, Payload: payload, clientID: "client-a"}
	hub.Inbound <- &Event{Type: TypeStopTyping, Payload: payload, clientID: "client-a"}
	time.Sleep(100 * time.Millisecond)

	for _, c := range []*Client{bob, cy} {
		ev := nextEvent(t, c)
		assert.Equal(t, TypeUserTyping, ev.Type)
		assert.JSONEq(t, string(payload), string(ev.Payload))

		ev = nextEvent(t, c)
		assert.Equal(t, TypeUserStoppedTyping, ev.Type)
	}

	select {
	case frame := <-alice.send:
		t.Errorf("typing events must not echo back to the sender, got %s", frame)
	default:
	}

	// nothing was recorded
	assert.Equal(t, 0, hub.HistoryLen())
}

func TestHubJoinOverwrite(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	alice := newTestClient("client-a", hub)
	witness := newTestClient("client-b", hub)
	hub.Register <- alice
	hub.Register <- witness
	time.Sleep(50 * time.Millisecond)

	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "alice"}), clientID: "client-a"}
	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "alicia"}), clientID: "client-a"}
	time.Sleep(100 * time.Millisecond)

	// exactly one session, last join wins
	assert.Equal(t, 1, hub.MemberCount())

	name, ok := hub.MemberName("client-a")
	require.True(t, ok)
	assert.Equal(t, "alicia", name)

	// both joins still broadcast
	var joinedNames []string
	for range 2 {
		ev := nextEvent(t, witness)
		require.Equal(t, TypeUserJoined, ev.Type)

		var p PresencePayload
		require.NoError(t, json.Unmarshal(ev.Payload, &p))
		joinedNames = append(joinedNames, p.DisplayName)

		// each join is followed by a presence broadcast
		assert.Equal(t, TypeOnlineUsers, nextEvent(t, witness).Type)
	}

	assert.Equal(t, []string{"alice", "alicia"}, joinedNames)
}

func TestHubDisconnectCleanup(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	alice := newTestClient("client-a", hub)
	bob := newTestClient("client-b", hub)
	hub.Register <- alice
	hub.Register <- bob
	time.Sleep(50 * time.Millisecond)

	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "Ann"}), clientID: "client-a"}
	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "Bo"}), clientID: "client-b"}
	time.Sleep(100 * time.Millisecond)
	drainClient(bob)

	hub.Unregister <- alice
	time.Sleep(100 * time.Millisecond)

	_, ok := hub.MemberName("client-a")
	assert.False(t, ok, "session must be removed on disconnect")
	assert.Equal(t, 1, hub.MemberCount())
	assert.Equal(t, 1, hub.ClientCount())

	ev := nextEvent(t, bob)
	require.Equal(t, TypeUserLeft, ev.Type)

	var left PresencePayload
	require.NoError(t, json.Unmarshal(ev.Payload, &left))
	assert.Equal(t, "Ann", left.DisplayName)

	ev = nextEvent(t, bob)
	require.Equal(t, TypeOnlineUsers, ev.Type)

	var count int
	require.NoError(t, json.Unmarshal(ev.Payload, &count))
	assert.Equal(t, 1, count)
}

func TestHubDisconnectBeforeJoinIsSilent(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	ghost := newTestClient("client-a", hub)
	witness := newTestClient("client-b", hub)
	hub.Register <- ghost
	hub.Register <- witness
	time.Sleep(50 * time.Millisecond)

	hub.Unregister <- ghost
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, hub.ClientCount())

	select {
	case frame := <-witness.send:
		t.Errorf("no broadcasts expected for an unjoined disconnect, got %s", frame)
	default:
	}
}

// three clients connect and join in order, then Ann sends a message
func TestHubJoinScenario(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	ann := newTestClient("client-a", hub)
	bo := newTestClient("client-b", hub)
	cy := newTestClient("client-c", hub)

	hub.Register <- ann
	time.Sleep(20 * time.Millisecond)
	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "Ann"}), clientID: "client-a"}
	time.Sleep(50 * time.Millisecond)

	// Ann's own count after her join is 1
	assert.Equal(t, TypeExistingMessages, nextEvent(t, ann).Type)
	ev := nextEvent(t, ann)
	require.Equal(t, TypeOnlineUsers, ev.Type)

	var count int
	require.NoError(t, json.Unmarshal(ev.Payload, &count))
	assert.Equal(t, 1, count)

	hub.Register <- bo
	time.Sleep(20 * time.Millisecond)
	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "Bo"}), clientID: "client-b"}
	time.Sleep(50 * time.Millisecond)

	// Bo joined before any messages: empty history
	ev = nextEvent(t, bo)
	require.Equal(t, TypeExistingMessages, ev.Type)

	var history []json.RawMessage
	require.NoError(t, json.Unmarshal(ev.Payload, &history))
	assert.Empty(t, history)

	hub.Register <- cy
	time.Sleep(20 * time.Millisecond)
	hub.Inbound <- &Event{Type: TypeJoin, Payload: rawPayload(t, JoinPayload{DisplayName: "Cy"}), clientID: "client-c"}
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 3, hub.MemberCount())

	drainClient(ann)
	drainClient(bo)
	drainClient(cy)

	payload := rawPayload(t, map[string]any{"username": "Ann", "content": "hi"})
	hub.Inbound <- &Event{Type: TypeSendMessage, Payload: payload, clientID: "client-a"}
	time.Sleep(100 * time.Millisecond)

	for _, c := range []*Client{ann, bo, cy} {
		ev := nextEvent(t, c)
		assert.Equal(t, TypeMessage, ev.Type)
		assert.JSONEq(t, string(payload), string(ev.Payload))
	}

	assert.Equal(t, 1, hub.HistoryLen())
}

func TestHubShutdownClosesConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("client-a", hub)
	hub.Register <- client
	time.Sleep(50 * time.Millisecond)

	hub.Shutdown()
	time.Sleep(100 * time.Millisecond)

	assert.True(t, client.IsClosed())
	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, 0, hub.HistoryLen())
}

func TestHubShutdownIsIdempotent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Shutdown may race the run loop's startup and may be called more
	// than once; neither panics
	hub.Shutdown()
	hub.Shutdown()

	assert.NotPanics(t, func() { hub.Shutdown() })
}

func TestHubShutdownBeforeRun(t *testing.T) {
	hub := NewHub()

	assert.NotPanics(t, func() { hub.Shutdown() })

	// a run loop started afterwards exits immediately
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("run loop kept running after shutdown")
	}
}

func TestHubPumpsUnblockAfterShutdown(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	hub.Shutdown()

	// once the run loop has exited, nothing consumes Inbound or
	// Unregister; forward and release must still return
	done := make(chan struct{})
	go func() {
		defer close(done)

		for i := 0; i < cap(hub.Inbound)+1; i++ {
			hub.forward(&Event{Type: TypeSendMessage, clientID: "client-a"})
		}
		hub.release(newTestClient("client-a", hub))
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("pump blocked on a hub that was shut down")
	}
}
