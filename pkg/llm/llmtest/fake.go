// Package llmtest provides scripted llm.LLMProvider implementations for tests.
package llmtest

import (
	"context"
	"io"
	"sync"

	"ai-guide-assistant/pkg/llm"
)

// Provider replays fixed replies and records every request it receives.
type Provider struct {
	ChatReply string
	ChatErr   error

	// Fragments are streamed in order, then StreamErr (or io.EOF) is returned.
	Fragments []string
	StreamErr error
	// StartErr fails Stream before any fragment.
	StartErr error
	// Block makes each Recv wait for ctx cancellation after the fragments.
	Block bool

	mu          sync.Mutex
	ChatCalls   [][]llm.Message
	StreamCalls [][]llm.Message
}

var _ llm.LLMProvider = (*Provider)(nil)

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.mu.Lock()
	p.ChatCalls = append(p.ChatCalls, history)
	p.mu.Unlock()
	if p.ChatErr != nil {
		return "", p.ChatErr
	}
	return p.ChatReply, nil
}

func (p *Provider) Stream(ctx context.Context, history []llm.Message, options ...llm.Option) (llm.Stream, error) {
	p.mu.Lock()
	p.StreamCalls = append(p.StreamCalls, history)
	p.mu.Unlock()
	if p.StartErr != nil {
		return nil, p.StartErr
	}
	return &SliceStream{ctx: ctx, fragments: p.Fragments, err: p.StreamErr, block: p.Block}, nil
}

// LastStream returns the messages of the most recent Stream call.
func (p *Provider) LastStream() []llm.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.StreamCalls) == 0 {
		return nil
	}
	return p.StreamCalls[len(p.StreamCalls)-1]
}

// SliceStream yields fixed fragments.
type SliceStream struct {
	ctx       context.Context
	fragments []string
	err       error
	block     bool
	pos       int
	closed    bool
}

func NewSliceStream(fragments ...string) *SliceStream {
	return &SliceStream{ctx: context.Background(), fragments: fragments}
}

func (s *SliceStream) Recv() (string, error) {
	if s.closed {
		return "", io.EOF
	}
	if s.pos < len(s.fragments) {
		s.pos++
		return s.fragments[s.pos-1], nil
	}
	if s.block {
		<-s.ctx.Done()
		return "", s.ctx.Err()
	}
	if s.err != nil {
		return "", s.err
	}
	return "", io.EOF
}

func (s *SliceStream) Close() error {
	s.closed = true
	return nil
}
