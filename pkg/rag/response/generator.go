package response

import (
	"context"
	"fmt"

	"ai-guide-assistant/pkg/llm"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/rag/prompt"
)

// Generator streams grounded answers from the retrieved passages.
type Generator struct {
	llmProvider llm.LLMProvider
	builder     *prompt.Builder
}

// NewGenerator creates a new response generator
func NewGenerator(llmProvider llm.LLMProvider, builder *prompt.Builder) *Generator {
	return &Generator{llmProvider: llmProvider, builder: builder}
}

// Generate starts a single streamed completion. Concatenating every fragment
// yields the answer.
func (g *Generator) Generate(ctx context.Context, history []llm.Message, question string, passages []rag.Passage) (llm.Stream, error) {
	stream, err := g.llmProvider.Stream(ctx, g.builder.BuildAnswer(history, question, passages))
	if err != nil {
		return nil, fmt.Errorf("%w: start generation: %w", rag.ErrExternalService, err)
	}
	return stream, nil
}
