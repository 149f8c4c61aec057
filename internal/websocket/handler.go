package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a connection to a chat session and blocks until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID string) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		questions: make(chan string, questionQueue),
	}
	client.Hub.register <- client

	ctx, cancel := context.WithCancel(context.Background())

	go client.writePump()
	go client.answerPump(ctx)
	client.readPump(cancel) // Run readPump in current goroutine (handler)
}
