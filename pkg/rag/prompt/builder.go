package prompt

import (
	"strings"

	"ai-guide-assistant/pkg/llm"
	"ai-guide-assistant/pkg/rag"
)

// AnswerSystemPrompt sets the persona, the grounding rule and the answer layout.
const AnswerSystemPrompt = "You are an expert financial analyst. Answer the user's questions about Financial Reporting Standards and Employee Handbook.\n" +
	"Please use the provided document to answer the question, and if you cannot find the answer, just say you don't know.\n\n" +
	"Structure every answer as follows:\n" +
	"- Start by naming the guide and section the answer comes from.\n" +
	"- For ratios and metrics, state what it measures and give the formula (e.g. A / B).\n" +
	"- Keep the answer concise and do not add facts that are not in the provided document."

// ReformulationSystemPrompt turns a follow-up into a standalone retrieval query.
const ReformulationSystemPrompt = "Given a chat history and the latest user question " +
	"which might reference context in the chat history, " +
	"formulate a standalone question which can be understood " +
	"without the chat history. Do NOT answer the question, " +
	"just reformulate it if needed and otherwise return it as is. " +
	"Make sure to include relevant keywords for better document retrieval."

// Builder assembles the message lists sent to the model.
type Builder struct {
	systemPrompt string
	exemplars    []Exemplar
}

// NewBuilder creates a builder with the default persona and exemplars.
func NewBuilder() *Builder {
	return &Builder{
		systemPrompt: AnswerSystemPrompt,
		exemplars:    DefaultExemplars,
	}
}

// WithExemplars replaces the few-shot exchanges.
func (b *Builder) WithExemplars(exemplars []Exemplar) *Builder {
	b.exemplars = exemplars
	return b
}

// BuildAnswer orders the prompt as system, few-shot exchanges, history, then
// the question with the retrieved passages in its context slot.
func (b *Builder) BuildAnswer(history []llm.Message, question string, passages []rag.Passage) []llm.Message {
	messages := make([]llm.Message, 0, 2+2*len(b.exemplars)+len(history))
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: b.systemPrompt})

	for _, ex := range b.exemplars {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: ex.Input},
			llm.Message{Role: llm.RoleAssistant, Content: ex.Answer},
		)
	}

	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: b.questionWithContext(question, passages)})
	return messages
}

// BuildReformulation asks the model for a standalone version of question.
func (b *Builder) BuildReformulation(history []llm.Message, question string) []llm.Message {
	messages := make([]llm.Message, 0, 2+len(history))
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: ReformulationSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})
	return messages
}

func (b *Builder) questionWithContext(question string, passages []rag.Passage) string {
	var prompt strings.Builder

	prompt.WriteString("<context>\n")
	prompt.WriteString(JoinPassages(passages))
	prompt.WriteString("\n</context>\n\n")

	prompt.WriteString("Question: ")
	prompt.WriteString(question)
	return prompt.String()
}

// JoinPassages concatenates passage texts separated by blank lines.
func JoinPassages(passages []rag.Passage) string {
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n\n")
}
