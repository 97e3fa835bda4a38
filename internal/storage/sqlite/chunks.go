package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/sandevgo/lorebot/internal/core"
)

// ChunkRepo stores one collection of embedded chunks: metadata in the
// chunks table, vectors in a per-collection sqlite-vec virtual table
// keyed by rowid. One vector table per collection keeps the KNN's k
// scoped to the collection being queried.
type ChunkRepo struct {
	db         *sql.DB
	collection string
	vecTable   string
}

// Collection names become part of a table name, so only identifier
// characters are allowed.
var collectionNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// NewChunkRepo prepares the vector table for the given embedding
// dimension. The virtual table is created here rather than in a
// migration because the dimension follows the configured model.
func NewChunkRepo(ctx context.Context, db *sql.DB, collection string, dim int) (*ChunkRepo, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}
	if !collectionNameRe.MatchString(collection) {
		return nil, fmt.Errorf("invalid collection name %q: letters, digits and underscores only", collection)
	}

	vecTable := "chunks_vec_" + collection
	stmt := fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS %s USING vec0(embedding float[%d])`, vecTable, dim)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return nil, fmt.Errorf("failed to create vector table: %w", err)
	}
	return &ChunkRepo{db: db, collection: collection, vecTable: vecTable}, nil
}

func (r *ChunkRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE collection = ?`, r.collection,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

func (r *ChunkRepo) Documents(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT document FROM chunks WHERE collection = ? ORDER BY id`, r.collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []string{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *ChunkRepo) Add(ctx context.Context, batch core.AddBatch) error {
	n := len(batch.IDs)
	if len(batch.Embeddings) != n || len(batch.Documents) != n || len(batch.Metadatas) != n {
		return fmt.Errorf("batch slices must have equal length: ids=%d embeddings=%d documents=%d metadatas=%d",
			n, len(batch.Embeddings), len(batch.Documents), len(batch.Metadatas))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := 0; i < n; i++ {
		meta, err := json.Marshal(batch.Metadatas[i])
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO chunks (collection, chunk_id, document, metadata) VALUES (?, ?, ?, ?)`,
			r.collection, batch.IDs[i], batch.Documents[i], string(meta),
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", batch.IDs[i], err)
		}

		rowid, err := res.LastInsertId()
		if err != nil {
			return err
		}

		vecBlob, err := serializeVector(batch.Embeddings[i])
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (rowid, embedding) VALUES (?, ?)`, r.vecTable),
			rowid, vecBlob,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk vector %s: %w", batch.IDs[i], err)
		}
	}

	return tx.Commit()
}

func (r *ChunkRepo) Query(ctx context.Context, embeddings [][]float32, k int) (core.QueryResponse, error) {
	resp := core.QueryResponse{
		Documents: make([][]string, 0, len(embeddings)),
		Metadatas: make([][]core.ChunkMeta, 0, len(embeddings)),
		Distances: make([][]float32, 0, len(embeddings)),
		IDs:       make([][]string, 0, len(embeddings)),
	}

	for _, embedding := range embeddings {
		docs, metas, dists, ids, err := r.queryOne(ctx, embedding, k)
		if err != nil {
			return core.QueryResponse{}, err
		}
		resp.Documents = append(resp.Documents, docs)
		resp.Metadatas = append(resp.Metadatas, metas)
		resp.Distances = append(resp.Distances, dists)
		resp.IDs = append(resp.IDs, ids)
	}
	return resp, nil
}

func (r *ChunkRepo) queryOne(ctx context.Context, embedding []float32, k int) ([]string, []core.ChunkMeta, []float32, []string, error) {
	vecBlob, err := serializeVector(embedding)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	query := fmt.Sprintf(`
		SELECT c.chunk_id, c.document, c.metadata, v.distance
		FROM %s v
		JOIN chunks c ON c.id = v.rowid
		WHERE v.embedding MATCH ? AND k = ? AND c.collection = ?
		ORDER BY v.distance
	`, r.vecTable)
	rows, err := r.db.QueryContext(ctx, query, vecBlob, k, r.collection)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer rows.Close()

	docs := []string{}
	metas := []core.ChunkMeta{}
	dists := []float32{}
	ids := []string{}

	for rows.Next() {
		var (
			id       string
			doc      string
			metaJSON string
			dist     float32
		)
		if err := rows.Scan(&id, &doc, &metaJSON, &dist); err != nil {
			return nil, nil, nil, nil, err
		}
		var meta core.ChunkMeta
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to unmarshal metadata for %s: %w", id, err)
		}
		docs = append(docs, doc)
		metas = append(metas, meta)
		dists = append(dists, dist)
		ids = append(ids, id)
	}
	return docs, metas, dists, ids, rows.Err()
}
