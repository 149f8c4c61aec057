package dto

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type AskRequest struct {
	SessionID string `json:"session_id" validate:"required,max=128"`
	Question  string `json:"question" validate:"required,max=4000"`
}

type SourceDTO struct {
	Text     string         `json:"text"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type AskResponse struct {
	SessionID string      `json:"session_id"`
	Query     string      `json:"query"`
	Answer    string      `json:"answer"`
	Sources   []SourceDTO `json:"sources"`
}

type TurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GetChatHistoryResponse struct {
	SessionID string    `json:"session_id"`
	Turns     []TurnDTO `json:"turns"`
}

// Stream frame types shared by server-sent events and websocket frames.
const (
	FrameFragment = "fragment"
	FrameDone     = "done"
	FrameError    = "error"
)

type StreamFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Content   string `json:"content,omitempty"`
	Error     string `json:"error,omitempty"`
}
