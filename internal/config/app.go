package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lorebot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"LORE_RUNTIME_PATH" envDefault:".lorebot"`

	// Conversation memory strategy: simple_buffer, summarization_sliding_window,
	// summary or none. Unknown values degrade to no memory.
	MemoryStrategy string `env:"LORE_MEMORY_STRATEGY" envDefault:"simple_buffer"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "lorebot.db")
}

func (c AppConfig) GetStrategiesPath() string {
	return filepath.Join(c.RuntimePath, "strategies.yaml")
}
