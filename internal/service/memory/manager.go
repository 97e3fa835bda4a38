package memory

import (
	"context"

	"github.com/sandevgo/lorebot/internal/core"
	"github.com/sandevgo/lorebot/pkg/log"
)

// Manager selects one memory strategy at construction and exposes a
// uniform interface over it. Memory is a best-effort amenity: every
// failure past construction is logged and absorbed, and construction
// failures degrade to disabled memory rather than aborting startup.
// One Manager per conversation session; not safe for sharing across
// concurrent sessions.
type Manager struct {
	kind     Kind
	strategy Strategy
}

func NewManager(ctx context.Context, name, configPath string, llm core.Summarizer) *Manager {
	logger := log.FromCtx(ctx)

	kind := ParseKind(name)
	if kind == KindDisabled {
		if name != nameNone {
			logger.Warn().Str("strategy", name).Msg("unknown memory strategy, no memory applied")
		}
		return &Manager{kind: KindDisabled}
	}

	params := LoadParameters(ctx, configPath, name)

	var (
		strategy Strategy
		err      error
	)
	switch kind {
	case KindBuffer:
		strategy, err = NewBuffer(params)
	case KindSlidingWindow:
		strategy, err = NewSlidingWindow(params, llm)
	case KindSummary:
		strategy, err = NewSummary(params, llm)
	}
	if err != nil {
		initErr := &StrategyError{Op: "init", Kind: kind, Err: err}
		logger.Warn().Err(initErr).Msg("memory initialization failed, falling back to no memory")
		return &Manager{kind: KindDisabled}
	}

	logger.Info().Str("strategy", kind.String()).Msg("conversation memory initialized")
	return &Manager{kind: kind, strategy: strategy}
}

func (m *Manager) Kind() Kind { return m.kind }

// AddMessage records one turn with the active strategy. Failures are
// logged and dropped; the call never propagates an error.
func (m *Manager) AddMessage(ctx context.Context, input, output string) {
	if m.strategy == nil {
		return
	}
	if err := m.strategy.SaveTurn(ctx, core.Turn{Input: input, Output: output}); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to save turn to memory")
	}
}

// MemoryVariables returns the active strategy's context materialization,
// or an empty map when memory is disabled or the read fails.
func (m *Manager) MemoryVariables(ctx context.Context) map[string]string {
	if m.strategy == nil {
		return map[string]string{}
	}
	vars, err := m.strategy.Variables(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to load memory variables")
		return map[string]string{}
	}
	return vars
}
