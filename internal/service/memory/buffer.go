package memory

import (
	"context"
	"fmt"

	"github.com/sandevgo/lorebot/internal/core"
)

// Buffer keeps the most recent turn pairs verbatim, oldest evicted first.
type Buffer struct {
	memoryKey   string
	maxMessages int
	turns       []core.Turn
}

func NewBuffer(p Parameters) (*Buffer, error) {
	if p.MaxMessages < 0 {
		return nil, fmt.Errorf("max_messages must be positive, got %d", p.MaxMessages)
	}
	key := p.MemoryKey
	if key == "" {
		key = defaultMemoryKey
	}
	max := p.MaxMessages
	if max == 0 {
		max = defaultMaxMessages
	}
	return &Buffer{memoryKey: key, maxMessages: max}, nil
}

func (b *Buffer) SaveTurn(_ context.Context, turn core.Turn) error {
	b.turns = append(b.turns, turn)
	if len(b.turns) > b.maxMessages {
		b.turns = b.turns[len(b.turns)-b.maxMessages:]
	}
	return nil
}

func (b *Buffer) Variables(context.Context) (map[string]string, error) {
	return map[string]string{b.memoryKey: renderTurns(b.turns)}, nil
}
