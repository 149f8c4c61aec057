// Package reformulate rewrites follow-up questions into standalone queries.
package reformulate

import (
	"context"
	"fmt"
	"strings"

	"ai-guide-assistant/pkg/llm"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/rag/prompt"
)

// Reformulator uses the chat history to make a question self-contained for
// retrieval. It never answers the question.
type Reformulator struct {
	llmProvider llm.LLMProvider
	builder     *prompt.Builder
}

func NewReformulator(llmProvider llm.LLMProvider, builder *prompt.Builder) *Reformulator {
	return &Reformulator{llmProvider: llmProvider, builder: builder}
}

// Reformulate returns question unchanged when there is no history. A blank
// model reply also yields the original question.
func (r *Reformulator) Reformulate(ctx context.Context, history []llm.Message, question string) (string, error) {
	if len(history) == 0 {
		return question, nil
	}

	reply, err := r.llmProvider.Chat(ctx, r.builder.BuildReformulation(history, question), llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("%w: reformulate question: %w", rag.ErrExternalService, err)
	}

	standalone := strings.TrimSpace(reply)
	if standalone == "" {
		return question, nil
	}
	return standalone, nil
}
