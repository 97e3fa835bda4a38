package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeSummarizer is shared by the strategy tests.
type fakeSummarizer struct {
	response string
	err      error
	calls    []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, history string) (string, error) {
	f.calls = append(f.calls, history)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func writeStrategies(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategies.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return path
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"simple_buffer", KindBuffer},
		{"summarization_sliding_window", KindSlidingWindow},
		{"summary", KindSummary},
		{"none", KindDisabled},
		{"something_else", KindDisabled},
		{"", KindDisabled},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.name); got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestManagerDisabledIsNoOp(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, "none", "", nil)

	if m.Kind() != KindDisabled {
		t.Fatalf("expected disabled memory, got %v", m.Kind())
	}

	m.AddMessage(ctx, "hello", "hi there")
	vars := m.MemoryVariables(ctx)
	if vars == nil {
		t.Fatal("expected empty map, got nil")
	}
	if len(vars) != 0 {
		t.Errorf("expected no memory variables, got %v", vars)
	}
}

func TestManagerUnknownStrategyDegrades(t *testing.T) {
	m := NewManager(context.Background(), "holographic", "", nil)
	if m.Kind() != KindDisabled {
		t.Errorf("unknown strategy should degrade to disabled, got %v", m.Kind())
	}
}

func TestManagerConstructionFailureDegrades(t *testing.T) {
	// Sliding window without a summarizer cannot be built; the manager
	// must fall back to disabled memory instead of failing startup.
	m := NewManager(context.Background(), "summarization_sliding_window", "", nil)
	if m.Kind() != KindDisabled {
		t.Errorf("expected degradation to disabled, got %v", m.Kind())
	}
}

func TestManagerBufferFromConfigFile(t *testing.T) {
	ctx := context.Background()
	path := writeStrategies(t, `
simple_buffer:
  parameters:
    memory_key: history
    max_messages: 2
`)

	m := NewManager(ctx, "simple_buffer", path, nil)
	if m.Kind() != KindBuffer {
		t.Fatalf("expected buffer memory, got %v", m.Kind())
	}

	m.AddMessage(ctx, "one", "1")
	m.AddMessage(ctx, "two", "2")
	m.AddMessage(ctx, "three", "3")

	vars := m.MemoryVariables(ctx)
	history, ok := vars["history"]
	if !ok {
		t.Fatalf("expected configured memory key, got %v", vars)
	}
	if strings.Contains(history, "Human: one") {
		t.Errorf("oldest turn should be evicted, history: %q", history)
	}
	if !strings.Contains(history, "Human: two") || !strings.Contains(history, "Human: three") {
		t.Errorf("expected the 2 most recent turns, history: %q", history)
	}
}

func TestManagerSaveFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	llm := &fakeSummarizer{err: errors.New("llm down")}

	m := NewManager(ctx, "summary", "", llm)
	if m.Kind() != KindSummary {
		t.Fatalf("expected summary memory, got %v", m.Kind())
	}

	// Must not panic or propagate despite the failing summarizer.
	m.AddMessage(ctx, "hello", "hi")

	vars := m.MemoryVariables(ctx)
	if vars[defaultMemoryKey] != "" {
		t.Errorf("failed save should leave the summary empty, got %q", vars[defaultMemoryKey])
	}
}
