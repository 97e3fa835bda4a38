package knowledge

import (
	"strings"

	"github.com/sandevgo/lorebot/internal/core"
)

const normalizeCutset = ".,;:!? "

// Normalize strips surrounding whitespace, then leading punctuation.
// The normalized form is both the deduplication key and the persisted
// chunk text, so the store can never hold two chunks that normalize to
// the same string.
func Normalize(text string) string {
	return strings.TrimLeft(strings.TrimSpace(text), normalizeCutset)
}

// dedupe drops candidates whose normalized text matches a document
// already in the store or an earlier candidate in the same batch. First
// occurrence wins. Stored documents are already normalized.
func dedupe(candidates []core.Chunk, existing []string) []core.Chunk {
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, doc := range existing {
		seen[doc] = struct{}{}
	}

	var fresh []core.Chunk
	for _, c := range candidates {
		norm := Normalize(c.Text)
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		fresh = append(fresh, c)
	}
	return fresh
}
