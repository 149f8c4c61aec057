package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-guide-assistant/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "llama3", req.Model)

		_ = json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Role: "assistant", Content: "hello"}, Done: true})
	}))
	defer server.Close()

	reply, err := NewOllamaProvider(server.URL, "llama3", time.Second).Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
}

func TestStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"The "},"done":false}`)
		fmt.Fprintln(w, `not json`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"answer"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true}`)
	}))
	defer server.Close()

	stream, err := NewOllamaProvider(server.URL, "llama3", time.Second).Stream(context.Background(), nil)
	require.NoError(t, err)
	defer stream.Close()

	var fragments []string
	for {
		f, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		fragments = append(fragments, f)
	}
	assert.Equal(t, []string{"The ", "answer"}, fragments)
}

func TestStreamErrorChunk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"error":"model crashed"}`)
	}))
	defer server.Close()

	stream, err := NewOllamaProvider(server.URL, "llama3", time.Second).Stream(context.Background(), nil)
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Recv()
	assert.ErrorIs(t, err, llm.ErrProvider)
}

func TestStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewOllamaProvider(server.URL, "llama3", time.Second).Stream(context.Background(), nil)
	assert.ErrorIs(t, err, llm.ErrProvider)
}
