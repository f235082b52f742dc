package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"codeberg.org/devmentor/server/internal/chat"
	"github.com/gorilla/websocket"
)

// connects to the chat relay, joins with a display name, sends one
// message, and prints everything the relay broadcasts back
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./scripts/chatprobe <display_name> [host]")
		fmt.Println("Example: go run ./scripts/chatprobe alice localhost:5000")
		os.Exit(1)
	}

	displayName := os.Args[1]

	host := "localhost:5000"
	if len(os.Args) > 2 {
		host = os.Args[2]
	}

	u := url.URL{
		Scheme: "ws",
		Host:   host,
		Path:   "/api/v1/ws",
	}

	fmt.Printf("Connecting to %s\n", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer c.Close()

	fmt.Println("✅ Connected to WebSocket!")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})

	// print everything the relay sends
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("read:", err)
				return
			}
			fmt.Printf("📨 Received: %s\n", message)
		}
	}()

	send := func(eventType string, payload any) {
		raw, _ := json.Marshal(payload)
		event, _ := json.Marshal(chat.Event{Type: eventType, Payload: raw})
		fmt.Printf("📤 Sending: %s\n", event)
		if err := c.WriteMessage(websocket.TextMessage, event); err != nil {
			log.Println("write:", err)
		}
	}

	send(chat.TypeJoin, chat.JoinPayload{DisplayName: displayName})

	time.Sleep(1 * time.Second)
	send(chat.TypeSendMessage, map[string]any{
		"displayName": displayName,
		"text":        "hello from chatprobe",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})

	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\n🛑 Interrupt received, closing connection...")

		err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("write close:", err)
			return
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
