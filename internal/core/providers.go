package core

import "context"

type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Summarizer condenses rendered conversation history into a short text.
// Used by the sliding-window and summary memory strategies.
type Summarizer interface {
	Summarize(ctx context.Context, history string) (string, error)
}
