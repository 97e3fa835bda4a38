package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lorebot/pkg/log"
)

type RetrievalConfig struct {
	Collection string `env:"LORE_COLLECTION" envDefault:"documents"`

	// Store backend: sqlite (persistent, sqlite-vec) or memory.
	Store string `env:"LORE_STORE" envDefault:"sqlite"`

	// Characters per chunk and overlap between adjacent chunks.
	ChunkSize    int `env:"LORE_CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap int `env:"LORE_CHUNK_OVERLAP" envDefault:"200"`

	// Number of chunks retrieved per query.
	RetrievalK int `env:"LORE_RETRIEVAL_K" envDefault:"5"`
}

func NewRetrievalConfig(ctx context.Context) *RetrievalConfig {
	cfg := &RetrievalConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse retrieval config")
	}
	return cfg
}
