package memstore

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/sandevgo/lorebot/internal/core"
)

// Store is a brute-force cosine-distance chunk store. It backs tests and
// store-less runs; the sqlite store is the persistent counterpart.
type Store struct {
	mu         sync.RWMutex
	ids        []string
	embeddings [][]float32
	documents  []string
	metadatas  []core.ChunkMeta
}

func New() *Store { return &Store{} }

func (s *Store) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids), nil
}

func (s *Store) Documents(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.documents))
	copy(out, s.documents)
	return out, nil
}

func (s *Store) Add(_ context.Context, batch core.AddBatch) error {
	n := len(batch.IDs)
	if len(batch.Embeddings) != n || len(batch.Documents) != n || len(batch.Metadatas) != n {
		return errors.New("add batch slices differ in length")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, batch.IDs...)
	s.embeddings = append(s.embeddings, batch.Embeddings...)
	s.documents = append(s.documents, batch.Documents...)
	s.metadatas = append(s.metadatas, batch.Metadatas...)
	return nil
}

// Query returns one result row per submitted embedding, each row ordered
// by ascending cosine distance and capped at k.
func (s *Store) Query(_ context.Context, embeddings [][]float32, k int) (core.QueryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := core.QueryResponse{
		Documents: make([][]string, 0, len(embeddings)),
		Metadatas: make([][]core.ChunkMeta, 0, len(embeddings)),
		Distances: make([][]float32, 0, len(embeddings)),
		IDs:       make([][]string, 0, len(embeddings)),
	}

	for _, query := range embeddings {
		idxs := make([]int, len(s.embeddings))
		dists := make([]float32, len(s.embeddings))
		for i, stored := range s.embeddings {
			idxs[i] = i
			dists[i] = cosineDistance(query, stored)
		}
		sort.SliceStable(idxs, func(a, b int) bool {
			return dists[idxs[a]] < dists[idxs[b]]
		})
		if k < len(idxs) {
			idxs = idxs[:k]
		}

		docs := make([]string, 0, len(idxs))
		metas := make([]core.ChunkMeta, 0, len(idxs))
		distances := make([]float32, 0, len(idxs))
		ids := make([]string, 0, len(idxs))
		for _, i := range idxs {
			docs = append(docs, s.documents[i])
			metas = append(metas, s.metadatas[i])
			distances = append(distances, dists[i])
			ids = append(ids, s.ids[i])
		}
		resp.Documents = append(resp.Documents, docs)
		resp.Metadatas = append(resp.Metadatas, metas)
		resp.Distances = append(resp.Distances, distances)
		resp.IDs = append(resp.IDs, ids)
	}
	return resp, nil
}

func cosineDistance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}
