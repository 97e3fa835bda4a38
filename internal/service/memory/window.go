package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/lorebot/internal/core"
)

// SlidingWindow keeps the most recent turns verbatim and folds evicted
// turns into an LLM-maintained running summary, so long-range context is
// not lost outright.
type SlidingWindow struct {
	memoryKey  string
	windowSize int
	llm        core.Summarizer
	turns      []core.Turn
	summary    string
}

func NewSlidingWindow(p Parameters, llm core.Summarizer) (*SlidingWindow, error) {
	if llm == nil {
		return nil, errors.New("sliding window memory requires a summarizer")
	}
	if p.WindowSize < 0 {
		return nil, fmt.Errorf("window_size must be positive, got %d", p.WindowSize)
	}
	key := p.MemoryKey
	if key == "" {
		key = defaultMemoryKey
	}
	size := p.WindowSize
	if size == 0 {
		size = defaultWindowSize
	}
	return &SlidingWindow{memoryKey: key, windowSize: size, llm: llm}, nil
}

func (w *SlidingWindow) SaveTurn(ctx context.Context, turn core.Turn) error {
	w.turns = append(w.turns, turn)
	if len(w.turns) <= w.windowSize {
		return nil
	}

	evicted := w.turns[:len(w.turns)-w.windowSize]
	w.turns = append([]core.Turn(nil), w.turns[len(w.turns)-w.windowSize:]...)

	var sb strings.Builder
	if w.summary != "" {
		sb.WriteString("Current summary:\n")
		sb.WriteString(w.summary)
		sb.WriteString("\n\nNew conversation turns:\n")
	}
	sb.WriteString(renderTurns(evicted))

	// The window keeps operating if summarization fails; the previous
	// summary stands and the error surfaces only in the log.
	summary, err := w.llm.Summarize(ctx, sb.String())
	if err != nil {
		return &StrategyError{Op: "save", Kind: KindSlidingWindow, Err: err}
	}
	w.summary = summary
	return nil
}

func (w *SlidingWindow) Variables(context.Context) (map[string]string, error) {
	var sb strings.Builder
	if w.summary != "" {
		sb.WriteString("Summary of earlier conversation:\n")
		sb.WriteString(w.summary)
		if len(w.turns) > 0 {
			sb.WriteString("\n\n")
		}
	}
	sb.WriteString(renderTurns(w.turns))
	return map[string]string{w.memoryKey: sb.String()}, nil
}
