package prompt

import (
	"strings"
	"testing"

	"ai-guide-assistant/pkg/llm"
	"ai-guide-assistant/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnswerOrder(t *testing.T) {
	b := NewBuilder().WithExemplars([]Exemplar{{Input: "ex-q", Answer: "ex-a"}})
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "earlier question"},
		{Role: llm.RoleAssistant, Content: "earlier answer"},
	}
	passages := []rag.Passage{{Text: "first passage"}, {Text: "  "}, {Text: "second passage"}}

	messages := b.BuildAnswer(history, "What is ROE?", passages)
	require.Len(t, messages, 6)

	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, AnswerSystemPrompt, messages[0].Content)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "ex-q"}, messages[1])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "ex-a"}, messages[2])
	assert.Equal(t, history[0], messages[3])
	assert.Equal(t, history[1], messages[4])

	last := messages[5]
	assert.Equal(t, llm.RoleUser, last.Role)
	assert.Equal(t, "<context>\nfirst passage\n\nsecond passage\n</context>\n\nQuestion: What is ROE?", last.Content)
}

func TestBuildAnswerWithoutPassages(t *testing.T) {
	messages := NewBuilder().BuildAnswer(nil, "q", nil)

	last := messages[len(messages)-1]
	assert.True(t, strings.HasPrefix(last.Content, "<context>\n\n</context>"))
	assert.True(t, strings.HasSuffix(last.Content, "Question: q"))
	assert.Len(t, messages, 2+2*len(DefaultExemplars))
}

func TestBuildReformulation(t *testing.T) {
	history := []llm.Message{{Role: llm.RoleUser, Content: "what is ROA?"}, {Role: llm.RoleAssistant, Content: "..."}}

	messages := NewBuilder().BuildReformulation(history, "and how is it calculated?")
	require.Len(t, messages, 4)
	assert.Equal(t, ReformulationSystemPrompt, messages[0].Content)
	assert.Equal(t, "and how is it calculated?", messages[3].Content)
}

func TestDefaultExemplarsAreComplete(t *testing.T) {
	require.NotEmpty(t, DefaultExemplars)
	for _, ex := range DefaultExemplars {
		assert.NotEmpty(t, strings.TrimSpace(ex.Input))
		assert.NotEmpty(t, strings.TrimSpace(ex.Answer))
	}
}
