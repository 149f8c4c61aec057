// Package session keeps the ordered conversation history of each chat session.
package session

import (
	"context"
	"errors"

	"ai-guide-assistant/pkg/llm"
)

// ErrSessionStore wraps backend failures of a Store.
var ErrSessionStore = errors.New("session store error")

// Store maps a session id to its ordered history. Sessions are created lazily:
// History of an unknown id is empty, and Append creates it.
type Store interface {
	History(ctx context.Context, sessionID string) ([]llm.Message, error)
	Append(ctx context.Context, sessionID string, turns ...llm.Message) error
}
