package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/lorebot/internal/core"
	"github.com/sandevgo/lorebot/pkg/log"
)

// LoadDocuments reads every matching file in folder into a Document.
// The title is the first non-blank line of the content, falling back to
// the filename. Unreadable files are logged and skipped.
func LoadDocuments(ctx context.Context, folder string, extensions ...string) ([]core.Document, error) {
	logger := log.FromCtx(ctx)
	if len(extensions) == 0 {
		extensions = []string{".txt"}
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var docs []core.Document
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !hasExtension(name, extensions) {
			logger.Debug().Str("file", name).Msg("skipping non-matching file")
			continue
		}

		data, err := os.ReadFile(filepath.Join(folder, name))
		if err != nil {
			logger.Error().Err(err).Str("file", name).Msg("failed to load document")
			continue
		}

		content := string(data)
		docs = append(docs, core.Document{
			Content:  content,
			Title:    titleOf(content, name),
			Filename: name,
		})
	}
	return docs, nil
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func titleOf(content, filename string) string {
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return filename
}
