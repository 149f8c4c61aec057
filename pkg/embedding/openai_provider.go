package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements EmbeddingProvider on the OpenAI embeddings API
// (text-embedding-3-large by default, 3072 dimensions).
type OpenAIProvider struct {
	client    *goopenai.Client
	Model     string
	dimension int
}

var _ EmbeddingProvider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(apiKey, baseURL, model string, dimension int, timeout time.Duration) *OpenAIProvider {
	config := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: timeout}
	}
	if model == "" {
		model = string(goopenai.LargeEmbedding3)
	}
	if dimension <= 0 {
		dimension = 3072
	}
	return &OpenAIProvider{
		client:    goopenai.NewClientWithConfig(config),
		Model:     model,
		dimension: dimension,
	}
}

func (p *OpenAIProvider) Dimension() int { return p.dimension }

func (p *OpenAIProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: goopenai.EmbeddingModel(p.Model),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create embeddings: %v", ErrEmbedding, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned", ErrEmbedding)
	}

	values := resp.Data[0].Embedding
	if len(values) != p.dimension {
		return nil, fmt.Errorf("%w: expected %d dimensions, got %d", ErrEmbedding, p.dimension, len(values))
	}
	return values, nil
}
