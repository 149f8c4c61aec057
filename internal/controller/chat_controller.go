package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"ai-guide-assistant/internal/dto"
	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/internal/pkg/serverutils"
	"ai-guide-assistant/internal/service"
	guidews "ai-guide-assistant/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	Stream(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	hub         *guidews.Hub
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, hub *guidews.Hub, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		hub:         hub,
		logger:      log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("sessions", c.CreateSession)
	h.Get("sessions/:id/history", c.GetChatHistory)
	h.Post("ask", c.Ask)
	h.Post("stream", c.Stream)

	h.Use("ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("ws/:id", websocket.New(func(conn *websocket.Conn) {
		guidews.ServeWs(c.hub, conn, conn.Params("id"))
	}))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success create session", c.chatService.CreateSession()))
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	req, err := parseAskRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.Ask(ctx.UserContext(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}

// Stream answers as server-sent events: fragment events, then done or error.
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	req, err := parseAskRequest(ctx)
	if err != nil {
		return err
	}

	// The body writer runs after the handler returns, so the answer gets its
	// own context, cancelled when the client stops reading.
	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := c.chatService.Stream(streamCtx, req.SessionID, req.Question)
	if err != nil {
		cancel()
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	sessionID := req.SessionID
	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer stream.Close()

		for {
			fragment, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				_ = writeEvent(w, dto.StreamFrame{Type: dto.FrameDone, SessionID: sessionID})
				return
			}
			if err != nil {
				c.logger.Warn("ChatController", "Stream aborted", map[string]interface{}{
					"session_id": sessionID,
					"error":      err.Error(),
				})
				_ = writeEvent(w, dto.StreamFrame{Type: dto.FrameError, SessionID: sessionID, Error: err.Error()})
				return
			}
			if err := writeEvent(w, dto.StreamFrame{Type: dto.FrameFragment, Content: fragment}); err != nil {
				// Client went away
				return
			}
		}
	})
	return nil
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetChatHistory(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func parseAskRequest(ctx *fiber.Ctx) (*dto.AskRequest, error) {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func writeEvent(w *bufio.Writer, frame dto.StreamFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", frame.Type, data); err != nil {
		return err
	}
	return w.Flush()
}
