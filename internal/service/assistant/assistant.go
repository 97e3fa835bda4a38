package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/lorebot/internal/core"
	"github.com/sandevgo/lorebot/pkg/log"
)

type Retriever interface {
	Search(ctx context.Context, query string, k int) (core.SearchResults, error)
}

type Memory interface {
	AddMessage(ctx context.Context, input, output string)
	MemoryVariables(ctx context.Context) map[string]string
}

type ChatProvider interface {
	Chat(ctx context.Context, history []core.Message) (core.Message, error)
}

const systemPrompt = "You are " + core.BotName + ", a helpful assistant. " +
	"Answer the question using the provided document context. " +
	"If the context does not contain the answer, say so instead of guessing."

// Assistant answers questions grounded in retrieved document chunks,
// carrying conversation memory between turns.
type Assistant struct {
	retriever Retriever
	memory    Memory
	llm       ChatProvider
}

func New(retriever Retriever, memory Memory, llm ChatProvider) *Assistant {
	return &Assistant{
		retriever: retriever,
		memory:    memory,
		llm:       llm,
	}
}

func (a *Assistant) Answer(ctx context.Context, query string) (string, error) {
	logger := log.FromCtx(ctx)

	results, err := a.retriever.Search(ctx, query, 0)
	if err != nil {
		return "", fmt.Errorf("retrieval failed: %w", err)
	}
	logger.Debug().Int("chunks", len(results.Documents)).Msg("retrieved context")

	messages := a.buildMessages(ctx, query, results.Documents)

	response, err := a.llm.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}

	a.memory.AddMessage(ctx, query, response.Content)
	return response.Content, nil
}

func (a *Assistant) buildMessages(ctx context.Context, query string, chunks []string) []core.Message {
	messages := []core.Message{
		{Role: core.RoleSystem, Content: systemPrompt},
	}

	vars := a.memory.MemoryVariables(ctx)
	keys := make([]string, 0, len(vars))
	for k := range vars {
		if vars[k] != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		messages = append(messages, core.Message{
			Role:    core.RoleSystem,
			Content: fmt.Sprintf("Conversation memory (%s):\n%s", k, vars[k]),
		})
	}

	contextBlock := "No relevant documents found."
	if len(chunks) > 0 {
		contextBlock = strings.Join(chunks, "\n")
	}

	messages = append(messages, core.Message{
		Role:    core.RoleUser,
		Content: fmt.Sprintf("Context from documents:\n%s\n\nQuestion: %s", contextBlock, query),
	})
	return messages
}
