package core

import "context"

// AddBatch carries parallel slices; implementations must reject batches
// whose slices differ in length.
type AddBatch struct {
	IDs        []string
	Embeddings [][]float32
	Documents  []string
	Metadatas  []ChunkMeta
}

// QueryResponse nests one result row per submitted query embedding, even
// for a single query. Callers unwrap a row explicitly rather than
// guessing at the shape.
type QueryResponse struct {
	Documents [][]string
	Metadatas [][]ChunkMeta
	Distances [][]float32
	IDs       [][]string
}

// ChunkStore is the persistent vector collection behind the retrieval
// engine. Records are append-only; there is no update or delete.
type ChunkStore interface {
	Count(ctx context.Context) (int, error)
	Documents(ctx context.Context) ([]string, error)
	Add(ctx context.Context, batch AddBatch) error
	Query(ctx context.Context, embeddings [][]float32, k int) (QueryResponse, error)
}
