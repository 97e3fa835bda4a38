package memory

import (
	"context"
	"strings"

	"github.com/sandevgo/lorebot/internal/core"
)

// Strategy is one conversation-memory retention policy. Implementations
// are not safe for concurrent use; a Manager owns exactly one instance
// for the lifetime of a session.
type Strategy interface {
	SaveTurn(ctx context.Context, turn core.Turn) error
	Variables(ctx context.Context) (map[string]string, error)
}

func renderTurns(turns []core.Turn) string {
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Human: ")
		sb.WriteString(t.Input)
		sb.WriteString("\nAssistant: ")
		sb.WriteString(t.Output)
	}
	return sb.String()
}
