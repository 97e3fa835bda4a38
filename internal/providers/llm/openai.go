package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sandevgo/lorebot/internal/core"
	"github.com/sandevgo/lorebot/pkg/retry"
)

// OpenAICompatible talks to any endpoint that speaks the OpenAI chat
// completions API: OpenAI itself, OpenRouter, vLLM, Ollama and friends.
type OpenAICompatible struct {
	baseProvider
	retrier *retry.Retrier
}

func NewOpenAICompatible(baseURL, apiKey, model string) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(baseURL, apiKey, model),
		retrier:      retry.NewDefaultRetrier(),
	}
}

func (o *OpenAICompatible) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	payload := map[string]any{
		"model":    o.model,
		"messages": history,
	}

	var result struct {
		Choices []struct {
			Message core.Message `json:"message"`
		} `json:"choices"`
	}
	err := o.retrier.Do(ctx, func() error {
		resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		return readResponse(resp, &result)
	})
	if err != nil {
		return core.Message{}, err
	}
	if len(result.Choices) == 0 {
		return core.Message{}, fmt.Errorf("empty choices in completion response")
	}
	return result.Choices[0].Message, nil
}

// Summarize runs a single-message completion, for conversation memory.
func (o *OpenAICompatible) Summarize(ctx context.Context, history string) (string, error) {
	msg, err := o.Chat(ctx, []core.Message{{Role: core.RoleUser, Content: history}})
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}
