package llm

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/sandevgo/lorebot/pkg/retry"
)

// EmbeddingClient produces vectors via an OpenAI-compatible /v1/embeddings
// endpoint.
type EmbeddingClient struct {
	baseProvider
	retrier *retry.Retrier
}

func NewEmbeddingClient(baseURL, apiKey, model string) *EmbeddingClient {
	return &EmbeddingClient{
		baseProvider: newBaseProvider(baseURL, apiKey, model),
		retrier:      retry.NewDefaultRetrier(),
	}
}

func (e *EmbeddingClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	payload := map[string]any{
		"model": e.model,
		"input": texts,
	}

	var result struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	err := e.retrier.Do(ctx, func() error {
		resp, err := e.doRequest(ctx, http.MethodPost, "/v1/embeddings", payload)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		return readResponse(resp, &result)
	})
	if err != nil {
		return nil, err
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(result.Data))
	}

	// The API is allowed to reorder; the index field is authoritative.
	sort.Slice(result.Data, func(i, j int) bool {
		return result.Data[i].Index < result.Data[j].Index
	})

	embeddings := make([][]float32, len(result.Data))
	for i, d := range result.Data {
		embeddings[i] = d.Embedding
	}
	return embeddings, nil
}

func (e *EmbeddingClient) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}
