package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/lorebot/internal/config"
	"github.com/sandevgo/lorebot/internal/core"
	"github.com/sandevgo/lorebot/internal/providers/rag"
	"github.com/sandevgo/lorebot/pkg/log"
)

// Engine is the ingestion and search facade over the chunk store. It is
// synchronous; concurrent AddDocuments calls against the same store can
// race on identifier assignment and must be serialized by the caller.
type Engine struct {
	cfg      *config.RetrievalConfig
	store    core.ChunkStore
	embedder core.Embedder
	splitter *rag.Splitter
}

func NewEngine(cfg *config.RetrievalConfig, store core.ChunkStore, embedder core.Embedder) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    store,
		embedder: embedder,
		splitter: rag.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap),
	}
}

// AddDocuments chunks, deduplicates, embeds and appends. Embeddings are
// computed once per surviving chunk in a single batch call. An
// all-duplicate batch is not an error; store and embedder failures are.
func (e *Engine) AddDocuments(ctx context.Context, docs []core.Document) error {
	logger := log.FromCtx(ctx)

	chunks := e.chunkDocuments(docs)
	var totalTokens, maxTokens int
	for _, c := range chunks {
		totalTokens += c.Tokens
		if c.Tokens > maxTokens {
			maxTokens = c.Tokens
		}
	}
	logger.Info().
		Int("chunks", len(chunks)).
		Int("documents", len(docs)).
		Int("total_tokens", totalTokens).
		Int("max_chunk_tokens", maxTokens).
		Msg("chunked documents")

	existing, err := e.store.Documents(ctx)
	if err != nil {
		return fmt.Errorf("failed to read existing documents: %w", err)
	}

	fresh := dedupe(chunks, existing)
	if len(fresh) == 0 {
		logger.Warn().Msg("no new chunks to add (all are duplicates)")
		return nil
	}
	if len(fresh) < len(chunks) {
		logger.Info().Int("chunks", len(fresh)).Msg("deduplicated batch")
	}

	next, err := e.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count stored chunks: %w", err)
	}

	batch := core.AddBatch{
		IDs:       make([]string, 0, len(fresh)),
		Documents: make([]string, 0, len(fresh)),
		Metadatas: make([]core.ChunkMeta, 0, len(fresh)),
	}
	for i, c := range fresh {
		batch.IDs = append(batch.IDs, fmt.Sprintf("document_%d", next+i))
		batch.Documents = append(batch.Documents, Normalize(c.Text))
		batch.Metadatas = append(batch.Metadatas, c.Meta)
	}

	embeddings, err := e.embedder.EmbedDocuments(ctx, batch.Documents)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}
	batch.Embeddings = embeddings

	if err := e.store.Add(ctx, batch); err != nil {
		return fmt.Errorf("failed to append chunks to store: %w", err)
	}

	logger.Info().Int("chunks", len(fresh)).Msg("added chunks to the store")
	return nil
}

// Search embeds the query and returns up to k chunks ordered by ascending
// distance. An empty store yields empty result lists, not an error.
func (e *Engine) Search(ctx context.Context, query string, k int) (core.SearchResults, error) {
	logger := log.FromCtx(ctx)
	if k <= 0 {
		k = e.cfg.RetrievalK
	}

	queryVec, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return core.SearchResults{}, fmt.Errorf("failed to embed query: %w", err)
	}

	resp, err := e.store.Query(ctx, [][]float32{queryVec}, k)
	if err != nil {
		return core.SearchResults{}, fmt.Errorf("store query failed: %w", err)
	}

	results := firstRow(resp)
	logger.Debug().Str("query", query).Int("results", len(results.Documents)).Msg("search completed")
	for i := range results.Documents {
		// Similarity is informational only; relevance thresholds are the
		// caller's business.
		logger.Debug().
			Str("id", results.IDs[i]).
			Float32("similarity", 1-results.Distances[i]).
			Str("title", results.Metadatas[i].Title).
			Str("file", results.Metadatas[i].Filename).
			Msgf("result %d", i+1)
	}
	return results, nil
}

func (e *Engine) chunkDocuments(docs []core.Document) []core.Chunk {
	var chunks []core.Chunk
	for _, doc := range docs {
		title := strings.TrimSpace(doc.Title)
		for _, text := range e.splitter.Split(doc.Content) {
			// The title line must not survive as a standalone chunk.
			if strings.TrimSpace(text) == title {
				continue
			}
			chunks = append(chunks, core.Chunk{
				Text: text,
				Meta: core.ChunkMeta{
					Title:    doc.Title,
					Filename: doc.Filename,
					Tags:     doc.Tags,
				},
				Tokens: rag.CountTokens(text),
			})
		}
	}
	return chunks
}

// firstRow unwraps the store's one-result-row-per-query-embedding nesting
// for a single submitted query. Every field comes back non-nil.
func firstRow(resp core.QueryResponse) core.SearchResults {
	out := core.SearchResults{
		Documents: []string{},
		Metadatas: []core.ChunkMeta{},
		Distances: []float32{},
		IDs:       []string{},
	}
	if len(resp.Documents) > 0 && resp.Documents[0] != nil {
		out.Documents = resp.Documents[0]
	}
	if len(resp.Metadatas) > 0 && resp.Metadatas[0] != nil {
		out.Metadatas = resp.Metadatas[0]
	}
	if len(resp.Distances) > 0 && resp.Distances[0] != nil {
		out.Distances = resp.Distances[0]
	}
	if len(resp.IDs) > 0 && resp.IDs[0] != nil {
		out.IDs = resp.IDs[0]
	}
	return out
}
