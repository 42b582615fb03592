package embed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultEmbeddingModel = "text-embedding-004"

// GeminiEmbedder is the model-backed embedder. The client is created
// once at startup; every Embed call gets a bounded timeout so one stuck
// inference can never stall the whole batch.
type GeminiEmbedder struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiEmbedder creates the client. Returns an error when the key
// is empty or the client cannot be constructed; callers then select the
// hash fallback instead.
func NewGeminiEmbedder(ctx context.Context, apiKey string, timeout time.Duration) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GeminiEmbedder{
		client:  client,
		model:   defaultEmbeddingModel,
		timeout: timeout,
	}, nil
}

func (e *GeminiEmbedder) Name() string { return "gemini/" + e.model }

func (e *GeminiEmbedder) Available() bool { return e.client != nil }

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	em := e.client.EmbeddingModel(e.model)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding failed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini returned empty embedding")
	}
	return res.Embedding.Values, nil
}

func (e *GeminiEmbedder) Close() {
	if e.client != nil {
		e.client.Close()
	}
}
