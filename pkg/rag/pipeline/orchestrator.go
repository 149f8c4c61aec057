package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/llm"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/rag/session"
	"ai-guide-assistant/pkg/rag/state"
)

// QueryReformulator makes a question self-contained given the history.
type QueryReformulator interface {
	Reformulate(ctx context.Context, history []llm.Message, question string) (string, error)
}

// AnswerGenerator streams an answer grounded in the passages.
type AnswerGenerator interface {
	Generate(ctx context.Context, history []llm.Message, question string, passages []rag.Passage) (llm.Stream, error)
}

// Orchestrator runs reformulation, retrieval and generation for one session
// at a time and records the exchange once the answer is complete.
type Orchestrator struct {
	reformulator QueryReformulator
	retriever    rag.Retriever
	generator    AnswerGenerator
	sessions     session.Store
	locks        *keyedMutex
	logger       logger.ILogger
}

func NewOrchestrator(
	reformulator QueryReformulator,
	retriever rag.Retriever,
	generator AnswerGenerator,
	sessions session.Store,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		reformulator: reformulator,
		retriever:    retriever,
		generator:    generator,
		sessions:     sessions,
		locks:        newKeyedMutex(),
		logger:       log,
	}
}

// Answer starts a request. The session stays locked until the returned stream
// reaches io.EOF, fails, or is closed. Callers must always Close the stream.
func (o *Orchestrator) Answer(ctx context.Context, sessionID, question string) (*AnswerStream, error) {
	unlock, err := o.locks.Lock(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("wait for session %s: %w", sessionID, err)
	}

	tracker := state.NewManager(sessionID, o.logger)
	fail := func(err error) (*AnswerStream, error) {
		_ = tracker.Transition(state.StateFailed)
		unlock()
		o.logger.Error("Pipeline", "Answer request failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	ctx = rag.WithSessionID(ctx, sessionID)

	history, err := o.sessions.History(ctx, sessionID)
	if err != nil {
		return fail(fmt.Errorf("load history: %w", err))
	}

	_ = tracker.Transition(state.StateReformulating)
	query, err := o.reformulator.Reformulate(ctx, history, question)
	if err != nil {
		return fail(err)
	}

	_ = tracker.Transition(state.StateRetrieving)
	passages, err := o.retriever.Retrieve(ctx, query)
	if err != nil {
		return fail(err)
	}

	_ = tracker.Transition(state.StateGenerating)
	stream, err := o.generator.Generate(ctx, history, question, passages)
	if err != nil {
		return fail(err)
	}

	o.logger.Info("Pipeline", "Answer generation started", map[string]interface{}{
		"session_id":    sessionID,
		"history_turns": len(history),
		"query":         query,
		"passages":      len(passages),
	})

	return &AnswerStream{
		ctx:       ctx,
		sessionID: sessionID,
		question:  question,
		query:     query,
		passages:  passages,
		stream:    stream,
		sessions:  o.sessions,
		tracker:   tracker,
		unlock:    unlock,
		logger:    o.logger,
	}, nil
}

// Answer is a fully collected response.
type Answer struct {
	Text     string
	Query    string
	Passages []rag.Passage
}

// Ask runs a request and drains its stream.
func (o *Orchestrator) Ask(ctx context.Context, sessionID, question string) (*Answer, error) {
	stream, err := o.Answer(ctx, sessionID, question)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	text, err := Collect(stream)
	if err != nil {
		return nil, err
	}
	return &Answer{Text: text, Query: stream.Query(), Passages: stream.Passages()}, nil
}

// History returns a session's turns in order.
func (o *Orchestrator) History(ctx context.Context, sessionID string) ([]llm.Message, error) {
	return o.sessions.History(ctx, sessionID)
}

// Collect reads s until io.EOF and returns the concatenated fragments.
func Collect(s llm.Stream) (string, error) {
	var answer strings.Builder
	for {
		fragment, err := s.Recv()
		if errors.Is(err, io.EOF) {
			return answer.String(), nil
		}
		if err != nil {
			return "", err
		}
		answer.WriteString(fragment)
	}
}
