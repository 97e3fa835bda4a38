package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/lorebot/internal/config"
	"github.com/sandevgo/lorebot/internal/service/assistant"
	"github.com/sandevgo/lorebot/internal/service/ui"
	"github.com/sandevgo/lorebot/pkg/log"
)

type ReadLine struct {
	cfg       *config.AppConfig
	assistant *assistant.Assistant
	rl        *readline.Instance
}

func NewReadLine(assistant *assistant.Assistant, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:       cfg,
		assistant: assistant,
		rl:        rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("Chat started. Type 'exit' to quit.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		answer, err := r.assistant.Answer(ctx, line)
		if err != nil {
			logger.Error().Err(err).Msg("failed to answer")
			fmt.Fprintln(r.rl.Stdout(), ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
			continue
		}
		fmt.Fprintln(r.rl.Stdout(), ui.AnswerStyle.Render(answer))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
