package websocket

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"ai-guide-assistant/internal/dto"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	questionQueue  = 8
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// SessionID of the conversation this connection belongs to
	SessionID string

	// Buffered channel of outbound messages.
	Send chan []byte

	questions chan string
}

// readPump reads questions from the connection and queues them for answering.
func (c *Client) readPump(cancel context.CancelFunc) {
	defer func() {
		cancel()
		close(c.questions)
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WebSocket", "Unexpected close", map[string]interface{}{
					"session_id": c.SessionID,
					"error":      err.Error(),
				})
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		question := strings.TrimSpace(string(data))
		if question == "" {
			continue
		}
		select {
		case c.questions <- question:
		default:
			c.Hub.Send(c.SessionID, dto.StreamFrame{Type: dto.FrameError, Error: "too many pending questions"})
		}
	}
}

// answerPump answers queued questions one at a time and fans the fragments
// out through the hub. A disconnect cancels the answer in flight.
func (c *Client) answerPump(ctx context.Context) {
	for question := range c.questions {
		c.answer(ctx, question)
	}
}

func (c *Client) answer(ctx context.Context, question string) {
	stream, err := c.Hub.responder.Stream(ctx, c.SessionID, question)
	if err != nil {
		c.Hub.Send(c.SessionID, dto.StreamFrame{Type: dto.FrameError, Error: err.Error()})
		return
	}
	defer stream.Close()

	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			c.Hub.Send(c.SessionID, dto.StreamFrame{Type: dto.FrameDone})
			return
		}
		if err != nil {
			c.Hub.Send(c.SessionID, dto.StreamFrame{Type: dto.FrameError, Error: err.Error()})
			return
		}
		c.Hub.Send(c.SessionID, dto.StreamFrame{Type: dto.FrameFragment, Content: fragment})
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message so clients can parse each as JSON
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
