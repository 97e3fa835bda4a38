package memory

import (
	"context"
	"os"

	"github.com/sandevgo/lorebot/pkg/log"
	"gopkg.in/yaml.v3"
)

const (
	defaultMemoryKey     = "chat_history"
	defaultMaxMessages   = 50
	defaultWindowSize    = 20
	defaultSummaryPrompt = "Summarize the conversation so far in a few sentences."
)

// Parameters are the per-strategy tunables from the strategies file.
// Zero values fall back to the defaults above at construction time.
type Parameters struct {
	WindowSize    int    `yaml:"window_size"`
	MemoryKey     string `yaml:"memory_key"`
	MaxMessages   int    `yaml:"max_messages"`
	SummaryPrompt string `yaml:"summary_prompt"`
}

type strategyConfig struct {
	Parameters Parameters `yaml:"parameters"`
}

// LoadParameters reads the parameters for the named strategy from the
// YAML file at path. A missing file or missing key yields zero
// parameters and a log line, never an error.
func LoadParameters(ctx context.Context, path, name string) Parameters {
	logger := log.FromCtx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Str("path", path).Msg("memory strategies config not found")
		return Parameters{}
	}

	var strategies map[string]strategyConfig
	if err := yaml.Unmarshal(data, &strategies); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to parse memory strategies config")
		return Parameters{}
	}
	return strategies[name].Parameters
}
