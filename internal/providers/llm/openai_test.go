package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/lorebot/internal/core"
)

func TestChatParsesCompletion(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "42"}},
			},
		})
	}))
	defer server.Close()

	provider := NewOpenAICompatible(server.URL, "sk-test", "gpt-4o-mini")
	msg, err := provider.Chat(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "meaning of life?"},
	})

	require.NoError(t, err)
	assert.Equal(t, core.RoleAssistant, msg.Role)
	assert.Equal(t, "42", msg.Content)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotPayload["model"])
}

func TestChatEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	provider := NewOpenAICompatible(server.URL, "", "gpt-4o-mini")
	_, err := provider.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}})
	assert.Error(t, err)
}

func TestSummarizeReturnsContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []core.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Messages, 1)
		assert.Equal(t, core.RoleUser, payload.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "a short summary"}},
			},
		})
	}))
	defer server.Close()

	provider := NewOpenAICompatible(server.URL, "", "gpt-4o-mini")
	summary, err := provider.Summarize(context.Background(), "Human: hi\nAssistant: hello")

	require.NoError(t, err)
	assert.Equal(t, "a short summary", summary)
}

func TestEmbedDocumentsOrdersByIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0, 1}},
				{"index": 0, "embedding": []float32{1, 0}},
			},
		})
	}))
	defer server.Close()

	client := NewEmbeddingClient(server.URL, "", "text-embedding-3-small")
	embeddings, err := client.EmbedDocuments(context.Background(), []string{"first", "second"})

	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float32{1, 0}, embeddings[0])
	assert.Equal(t, []float32{0, 1}, embeddings[1])
}

func TestEmbedDocumentsCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float32{1, 0}},
			},
		})
	}))
	defer server.Close()

	client := NewEmbeddingClient(server.URL, "", "text-embedding-3-small")
	_, err := client.EmbedDocuments(context.Background(), []string{"first", "second"})
	assert.ErrorContains(t, err, "mismatch")
}

func TestEmbedDocumentsEmptyInput(t *testing.T) {
	client := NewEmbeddingClient("http://unused", "", "text-embedding-3-small")
	embeddings, err := client.EmbedDocuments(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, embeddings)
	assert.Empty(t, embeddings)
}

func TestEmbedQueryDelegates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float32{0.5, 0.5}},
			},
		})
	}))
	defer server.Close()

	client := NewEmbeddingClient(server.URL, "", "text-embedding-3-small")
	vec, err := client.EmbedQuery(context.Background(), "what is Go")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, vec)
}
