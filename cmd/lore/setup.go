package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/lorebot/internal/config"
	"github.com/sandevgo/lorebot/internal/core"
	"github.com/sandevgo/lorebot/internal/providers/llm"
	"github.com/sandevgo/lorebot/internal/service/assistant"
	"github.com/sandevgo/lorebot/internal/service/knowledge"
	"github.com/sandevgo/lorebot/internal/service/memory"
	"github.com/sandevgo/lorebot/internal/storage/memstore"
	"github.com/sandevgo/lorebot/internal/storage/sqlite"
	"github.com/sandevgo/lorebot/pkg/log"
	"github.com/sandevgo/lorebot/pkg/srv"
)

// app wires configuration, storage, providers and services together.
// Commands pick the pieces they need.
type app struct {
	appCfg    *config.AppConfig
	engine    *knowledge.Engine
	assistant *assistant.Assistant
	cleanups  []srv.Service
}

func newApp(ctx context.Context) *app {
	logger := log.FromCtx(ctx)

	// 1. Configuration; the runtime .env is loaded before the rest so
	// its values are visible to the remaining config structs.
	appCfg := config.NewAppConfig(ctx)
	if err := initEnv(ctx, appCfg.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}
	ragCfg := config.NewRetrievalConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)

	// 2. Storage
	store, cleanups := initStore(ctx, appCfg, ragCfg, llmCfg)

	// 3. Providers
	embedder := llm.NewEmbeddingClient(llmCfg.BaseURL, llmCfg.APIKey, llmCfg.EmbeddingModel)
	chatLLM := llm.NewOpenAICompatible(llmCfg.BaseURL, llmCfg.APIKey, llmCfg.ChatModel)

	// 4. Retrieval engine
	engine := knowledge.NewEngine(ragCfg, store, embedder)

	// 5. Conversation memory
	mem := memory.NewManager(ctx, appCfg.MemoryStrategy, appCfg.GetStrategiesPath(), chatLLM)

	// 6. Assistant
	asst := assistant.New(engine, mem, chatLLM)

	return &app{
		appCfg:    appCfg,
		engine:    engine,
		assistant: asst,
		cleanups:  cleanups,
	}
}

func (a *app) shutdown(ctx context.Context) {
	for _, c := range a.cleanups {
		if err := c.Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("cleanup failed")
		}
	}
}

func initStore(ctx context.Context, appCfg *config.AppConfig, ragCfg *config.RetrievalConfig, llmCfg *config.LLMConfig) (core.ChunkStore, []srv.Service) {
	logger := log.FromCtx(ctx)

	switch ragCfg.Store {
	case "memory":
		return memstore.New(), nil
	case "sqlite":
		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize database")
		}
		repo, err := sqlite.NewChunkRepo(ctx, db, ragCfg.Collection, llmCfg.EmbeddingDim)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize chunk store")
		}
		return repo, []srv.Service{srv.NewCleanup(db.Close)}
	default:
		logger.Fatal().Str("store", ragCfg.Store).Msg("unknown store backend")
		return nil, nil
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
