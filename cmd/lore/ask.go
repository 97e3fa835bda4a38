package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/lorebot/internal/service/ui"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:           "ask <question>",
	Short:         "Answer a single question from the ingested documents",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		app := newApp(ctx)
		defer app.shutdown(ctx)

		answer, err := app.assistant.Answer(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Println(ui.AnswerStyle.Render(answer))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
