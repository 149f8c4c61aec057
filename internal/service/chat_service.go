package service

import (
	"context"

	"ai-guide-assistant/internal/dto"
	"ai-guide-assistant/pkg/rag/pipeline"

	"github.com/google/uuid"
)

// IChatService defines the chat service interface
type IChatService interface {
	CreateSession() *dto.CreateSessionResponse
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
	Stream(ctx context.Context, sessionID, question string) (*pipeline.AnswerStream, error)
	GetChatHistory(ctx context.Context, sessionID string) (*dto.GetChatHistoryResponse, error)
}

type chatService struct {
	orchestrator *pipeline.Orchestrator
}

func NewChatService(orchestrator *pipeline.Orchestrator) IChatService {
	return &chatService{orchestrator: orchestrator}
}

func (s *chatService) CreateSession() *dto.CreateSessionResponse {
	return &dto.CreateSessionResponse{SessionID: uuid.NewString()}
}

func (s *chatService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	answer, err := s.orchestrator.Ask(ctx, request.SessionID, request.Question)
	if err != nil {
		return nil, err
	}

	sources := make([]dto.SourceDTO, len(answer.Passages))
	for i, p := range answer.Passages {
		sources[i] = dto.SourceDTO{Text: p.Text, Score: p.Score, Metadata: p.Metadata}
	}

	return &dto.AskResponse{
		SessionID: request.SessionID,
		Query:     answer.Query,
		Answer:    answer.Text,
		Sources:   sources,
	}, nil
}

func (s *chatService) Stream(ctx context.Context, sessionID, question string) (*pipeline.AnswerStream, error) {
	return s.orchestrator.Answer(ctx, sessionID, question)
}

func (s *chatService) GetChatHistory(ctx context.Context, sessionID string) (*dto.GetChatHistoryResponse, error) {
	history, err := s.orchestrator.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	turns := make([]dto.TurnDTO, len(history))
	for i, msg := range history {
		turns[i] = dto.TurnDTO{Role: msg.Role, Content: msg.Content}
	}
	return &dto.GetChatHistoryResponse{SessionID: sessionID, Turns: turns}, nil
}
