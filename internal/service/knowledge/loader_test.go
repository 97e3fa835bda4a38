package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
	write("titled.txt", "\nMy Title\n\nBody paragraph here.")
	write("blank.txt", "   \n\t\n")
	write("notes.md", "ignored, wrong extension")

	docs, err := LoadDocuments(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	byName := map[string]string{}
	for _, d := range docs {
		byName[d.Filename] = d.Title
	}
	if byName["titled.txt"] != "My Title" {
		t.Errorf("expected title from first non-blank line, got %q", byName["titled.txt"])
	}
	if byName["blank.txt"] != "blank.txt" {
		t.Errorf("expected filename fallback title, got %q", byName["blank.txt"])
	}
}

func TestLoadDocumentsMissingFolder(t *testing.T) {
	_, err := LoadDocuments(context.Background(), "/nonexistent/docs")
	if err == nil {
		t.Fatal("expected error for missing folder")
	}
}

func TestLoadDocumentsCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes"), 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := LoadDocuments(context.Background(), dir, ".md")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Filename != "notes.md" {
		t.Errorf("expected the markdown file, got %+v", docs)
	}
}
