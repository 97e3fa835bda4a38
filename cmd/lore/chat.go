package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/sandevgo/lorebot/internal/transport/cli"
	"github.com/sandevgo/lorebot/pkg/log"
	"github.com/sandevgo/lorebot/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:           "chat",
	Short:         "Start an interactive chat session",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting lorebot")

		app := newApp(ctx)

		chat, err := cli.NewReadLine(app.assistant, app.appCfg)
		if err != nil {
			app.shutdown(ctx)
			return err
		}

		services := append([]srv.Service{&chatService{chat: chat, stop: stop}}, app.cleanups...)
		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)

		logger.Info().Msg("lorebot has been shut down gracefully")
		return nil
	},
}

// chatService ends the whole session when the chat loop exits, so
// typing 'exit' tears the process down like an interrupt would.
type chatService struct {
	chat *cli.ReadLine
	stop context.CancelFunc
}

func (s *chatService) Start(ctx context.Context) error {
	err := s.chat.Start(ctx)
	s.stop()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *chatService) Shutdown(ctx context.Context) error {
	return s.chat.Shutdown(ctx)
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
