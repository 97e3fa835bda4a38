package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/sandevgo/lorebot/internal/core"
)

// Summary keeps no verbatim turns at all; after each turn the running
// summary is regenerated through the LLM, seeded by the summary prompt.
type Summary struct {
	memoryKey string
	prompt    string
	llm       core.Summarizer
	summary   string
}

func NewSummary(p Parameters, llm core.Summarizer) (*Summary, error) {
	if llm == nil {
		return nil, errors.New("summary memory requires a summarizer")
	}
	key := p.MemoryKey
	if key == "" {
		key = defaultMemoryKey
	}
	prompt := p.SummaryPrompt
	if prompt == "" {
		prompt = defaultSummaryPrompt
	}
	return &Summary{memoryKey: key, prompt: prompt, llm: llm}, nil
}

func (s *Summary) SaveTurn(ctx context.Context, turn core.Turn) error {
	var sb strings.Builder
	sb.WriteString(s.prompt)
	sb.WriteString("\n\n")
	if s.summary != "" {
		sb.WriteString("Current summary:\n")
		sb.WriteString(s.summary)
		sb.WriteString("\n\nNew conversation turn:\n")
	}
	sb.WriteString(renderTurns([]core.Turn{turn}))

	// On failure the last good summary stands.
	summary, err := s.llm.Summarize(ctx, sb.String())
	if err != nil {
		return &StrategyError{Op: "save", Kind: KindSummary, Err: err}
	}
	s.summary = summary
	return nil
}

func (s *Summary) Variables(context.Context) (map[string]string, error) {
	return map[string]string{s.memoryKey: s.summary}, nil
}
