package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/llm"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/rag/session"
	"ai-guide-assistant/pkg/rag/state"
)

// AnswerStream yields answer fragments. The exchange is appended to the
// session only when the model finishes; an error or early Close records
// nothing.
type AnswerStream struct {
	ctx       context.Context
	sessionID string
	question  string
	query     string
	passages  []rag.Passage

	stream   llm.Stream
	sessions session.Store
	tracker  *state.Manager
	unlock   func()
	logger   logger.ILogger

	mu     sync.Mutex
	answer strings.Builder
	done   bool
	err    error
}

var _ llm.Stream = (*AnswerStream)(nil)

// Query is the standalone question used for retrieval.
func (s *AnswerStream) Query() string { return s.query }

// Passages are the retrieved passages the answer is grounded in.
func (s *AnswerStream) Passages() []rag.Passage { return s.passages }

func (s *AnswerStream) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Current()
}

func (s *AnswerStream) Recv() (string, error) {
	s.mu.Lock()
	if s.done {
		err := s.err
		s.mu.Unlock()
		if err == nil {
			return "", io.EOF
		}
		return "", err
	}
	s.mu.Unlock()

	fragment, err := s.stream.Recv()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		// Closed while waiting on the model
		return "", io.EOF
	}

	switch {
	case err == nil:
		s.answer.WriteString(fragment)
		return fragment, nil
	case errors.Is(err, io.EOF):
		if err := s.complete(); err != nil {
			s.finish(state.StateFailed, err)
			return "", err
		}
		s.finish(state.StateComplete, nil)
		return "", io.EOF
	case s.ctx.Err() != nil:
		err = fmt.Errorf("generation interrupted: %w", s.ctx.Err())
		s.finish(state.StateCancelled, err)
		return "", err
	default:
		err = fmt.Errorf("%w: generation: %w", rag.ErrExternalService, err)
		s.finish(state.StateFailed, err)
		return "", err
	}
}

// Close releases the session. Closing before io.EOF cancels the request.
func (s *AnswerStream) Close() error {
	s.mu.Lock()
	if !s.done {
		s.finish(state.StateCancelled, nil)
		s.logger.Info("Pipeline", "Answer stream cancelled", map[string]interface{}{
			"session_id": s.sessionID,
		})
	}
	s.mu.Unlock()
	return s.stream.Close()
}

// complete appends the user and assistant turns.
func (s *AnswerStream) complete() error {
	answer := s.answer.String()
	err := s.sessions.Append(context.WithoutCancel(s.ctx), s.sessionID,
		llm.Message{Role: llm.RoleUser, Content: s.question},
		llm.Message{Role: llm.RoleAssistant, Content: answer},
	)
	if err != nil {
		return fmt.Errorf("record exchange: %w", err)
	}

	s.logger.Info("Pipeline", "Answer complete", map[string]interface{}{
		"session_id":   s.sessionID,
		"answer_chars": len(answer),
	})
	return nil
}

func (s *AnswerStream) finish(final state.State, err error) {
	_ = s.tracker.Transition(final)
	s.done = true
	s.err = err
	s.unlock()
}
