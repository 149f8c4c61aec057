package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-guide-assistant/internal/dto"
	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/llm/llmtest"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/rag/pipeline"
	"ai-guide-assistant/pkg/rag/prompt"
	"ai-guide-assistant/pkg/rag/reformulate"
	"ai-guide-assistant/pkg/rag/response"
	"ai-guide-assistant/pkg/rag/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orchestratorResponder struct {
	orchestrator *pipeline.Orchestrator
}

func (r orchestratorResponder) Stream(ctx context.Context, sessionID, question string) (*pipeline.AnswerStream, error) {
	return r.orchestrator.Answer(ctx, sessionID, question)
}

func newResponder(provider *llmtest.Provider) Responder {
	builder := prompt.NewBuilder()
	retriever := rag.RetrieverFunc(func(ctx context.Context, query string) ([]rag.Passage, error) {
		return []rag.Passage{}, nil
	})
	return orchestratorResponder{orchestrator: pipeline.NewOrchestrator(
		reformulate.NewReformulator(provider, builder),
		retriever,
		response.NewGenerator(provider, builder),
		session.NewMemoryStore(),
		logger.NewNopLogger(),
	)}
}

func newClient(h *Hub, sessionID string) *Client {
	return &Client{Hub: h, SessionID: sessionID, Send: make(chan []byte, 16), questions: make(chan string, questionQueue)}
}

func readFrame(t *testing.T, c *Client) dto.StreamFrame {
	t.Helper()
	select {
	case data := <-c.Send:
		var frame dto.StreamFrame
		require.NoError(t, json.Unmarshal(data, &frame))
		return frame
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return dto.StreamFrame{}
	}
}

func TestHubFansOutToSessionDevices(t *testing.T) {
	h := NewHub(nil, newResponder(&llmtest.Provider{}), logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	phone, laptop, other := newClient(h, "s1"), newClient(h, "s1"), newClient(h, "s2")
	h.register <- phone
	h.register <- laptop
	h.register <- other
	require.Eventually(t, func() bool { return h.Connected("s1") == 2 && h.Connected("s2") == 1 }, time.Second, 5*time.Millisecond)

	h.Send("s1", dto.StreamFrame{Type: dto.FrameFragment, Content: "hi"})

	for _, c := range []*Client{phone, laptop} {
		frame := readFrame(t, c)
		assert.Equal(t, dto.FrameFragment, frame.Type)
		assert.Equal(t, "s1", frame.SessionID)
		assert.Equal(t, "hi", frame.Content)
	}
	assert.Empty(t, other.Send)

	h.unregister <- phone
	require.Eventually(t, func() bool { return h.Connected("s1") == 1 }, time.Second, 5*time.Millisecond)
	_, open := <-phone.Send
	assert.False(t, open)
}

func TestClientAnswerStreamsFrames(t *testing.T) {
	h := NewHub(nil, newResponder(&llmtest.Provider{Fragments: []string{"Gross ", "margin"}}), logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c := newClient(h, "s1")
	h.register <- c
	require.Eventually(t, func() bool { return h.Connected("s1") == 1 }, time.Second, 5*time.Millisecond)

	c.answer(ctx, "What is gross margin?")

	assert.Equal(t, dto.StreamFrame{Type: dto.FrameFragment, SessionID: "s1", Content: "Gross "}, readFrame(t, c))
	assert.Equal(t, dto.StreamFrame{Type: dto.FrameFragment, SessionID: "s1", Content: "margin"}, readFrame(t, c))
	assert.Equal(t, dto.StreamFrame{Type: dto.FrameDone, SessionID: "s1"}, readFrame(t, c))
}

func TestClientAnswerReportsErrors(t *testing.T) {
	h := NewHub(nil, newResponder(&llmtest.Provider{StartErr: context.DeadlineExceeded}), logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c := newClient(h, "s1")
	h.register <- c
	require.Eventually(t, func() bool { return h.Connected("s1") == 1 }, time.Second, 5*time.Millisecond)

	c.answer(ctx, "q")

	frame := readFrame(t, c)
	assert.Equal(t, dto.FrameError, frame.Type)
	assert.NotEmpty(t, frame.Error)
}
