package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sandevgo/lorebot/internal/core"
)

func newTestRepo(t *testing.T) *ChunkRepo {
	t.Helper()
	ctx := context.Background()

	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewChunkRepo(ctx, db, "documents", 3)
	if err != nil {
		t.Fatalf("NewChunkRepo: %v", err)
	}
	return repo
}

func TestChunkRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	batch := core.AddBatch{
		IDs:        []string{"document_0", "document_1"},
		Embeddings: [][]float32{{1, 0, 0}, {0, 1, 0}},
		Documents:  []string{"about ai", "about quantum"},
		Metadatas: []core.ChunkMeta{
			{Title: "AI", Filename: "ai.txt"},
			{Title: "Quantum", Filename: "quantum.txt"},
		},
	}
	if err := repo.Add(ctx, batch); err != nil {
		t.Fatalf("Add: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 chunks, got %d", count)
	}

	docs, err := repo.Documents(ctx)
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if len(docs) != 2 || docs[0] != "about ai" {
		t.Errorf("unexpected documents: %v", docs)
	}

	resp, err := repo.Query(ctx, [][]float32{{0.9, 0.1, 0}}, 2)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(resp.Documents) != 1 {
		t.Fatalf("expected 1 result row, got %d", len(resp.Documents))
	}
	row := resp.Documents[0]
	if len(row) != 2 || row[0] != "about ai" {
		t.Errorf("expected nearest-first ordering, got %v", row)
	}
	if resp.IDs[0][0] != "document_0" {
		t.Errorf("expected id document_0, got %q", resp.IDs[0][0])
	}
	if resp.Metadatas[0][0].Title != "AI" {
		t.Errorf("metadata not carried through: %+v", resp.Metadatas[0][0])
	}
	if resp.Distances[0][0] >= resp.Distances[0][1] {
		t.Errorf("distances not ascending: %v", resp.Distances[0])
	}
}

func TestChunkRepoAddRejectsMismatchedBatch(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Add(context.Background(), core.AddBatch{
		IDs:        []string{"document_0"},
		Embeddings: [][]float32{{1, 0, 0}, {0, 1, 0}},
		Documents:  []string{"one"},
		Metadatas:  []core.ChunkMeta{{}},
	})
	if err == nil {
		t.Fatal("expected error for mismatched batch slices")
	}
}

func TestChunkRepoQueryEmpty(t *testing.T) {
	repo := newTestRepo(t)

	resp, err := repo.Query(context.Background(), [][]float32{{1, 0, 0}}, 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(resp.Documents) != 1 {
		t.Fatalf("expected 1 result row, got %d", len(resp.Documents))
	}
	if resp.Documents[0] == nil || len(resp.Documents[0]) != 0 {
		t.Errorf("empty store should yield a non-nil empty row, got %v", resp.Documents[0])
	}
}

func TestChunkRepoCollectionsIsolated(t *testing.T) {
	ctx := context.Background()

	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	alpha, err := NewChunkRepo(ctx, db, "alpha", 3)
	if err != nil {
		t.Fatalf("NewChunkRepo alpha: %v", err)
	}
	beta, err := NewChunkRepo(ctx, db, "beta", 3)
	if err != nil {
		t.Fatalf("NewChunkRepo beta: %v", err)
	}

	if err := alpha.Add(ctx, core.AddBatch{
		IDs:        []string{"document_0", "document_1"},
		Embeddings: [][]float32{{1, 0, 0}, {0.9, 0.1, 0}},
		Documents:  []string{"alpha one", "alpha two"},
		Metadatas:  []core.ChunkMeta{{}, {}},
	}); err != nil {
		t.Fatalf("Add alpha: %v", err)
	}
	if err := beta.Add(ctx, core.AddBatch{
		IDs:        []string{"document_0"},
		Embeddings: [][]float32{{1, 0, 0}},
		Documents:  []string{"beta one"},
		Metadatas:  []core.ChunkMeta{{}},
	}); err != nil {
		t.Fatalf("Add beta: %v", err)
	}

	// k larger than either collection: each query must see every chunk
	// of its own collection and nothing from the other.
	resp, err := alpha.Query(ctx, [][]float32{{1, 0, 0}}, 10)
	if err != nil {
		t.Fatalf("Query alpha: %v", err)
	}
	if len(resp.Documents[0]) != 2 {
		t.Errorf("expected 2 alpha results, got %v", resp.Documents[0])
	}
	for _, doc := range resp.Documents[0] {
		if doc == "beta one" {
			t.Errorf("beta chunk leaked into alpha results: %v", resp.Documents[0])
		}
	}

	resp, err = beta.Query(ctx, [][]float32{{1, 0, 0}}, 10)
	if err != nil {
		t.Fatalf("Query beta: %v", err)
	}
	if len(resp.Documents[0]) != 1 || resp.Documents[0][0] != "beta one" {
		t.Errorf("expected only the beta chunk, got %v", resp.Documents[0])
	}
}

func TestChunkRepoRejectsInvalidCollectionName(t *testing.T) {
	ctx := context.Background()

	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, name := range []string{"", "my docs", "docs;drop", "docs-1"} {
		if _, err := NewChunkRepo(ctx, db, name, 3); err == nil {
			t.Errorf("expected rejection of collection name %q", name)
		}
	}
}

func TestChunkRepoDuplicateIDRejected(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	batch := core.AddBatch{
		IDs:        []string{"document_0"},
		Embeddings: [][]float32{{1, 0, 0}},
		Documents:  []string{"first"},
		Metadatas:  []core.ChunkMeta{{}},
	}
	if err := repo.Add(ctx, batch); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Add(ctx, batch); err == nil {
		t.Error("expected unique constraint violation for duplicate chunk id")
	}
}
