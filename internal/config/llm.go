package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lorebot/pkg/log"
)

type LLMConfig struct {
	BaseURL        string `env:"LORE_LLM_BASE_URL" envDefault:"https://api.openai.com"`
	APIKey         string `env:"LORE_LLM_API_KEY"`
	ChatModel      string `env:"LORE_CHAT_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel string `env:"LORE_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	EmbeddingDim   int    `env:"LORE_EMBEDDING_DIM" envDefault:"1536"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	cfg := &LLMConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse llm config")
	}
	return cfg
}
