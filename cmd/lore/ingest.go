package main

import (
	"github.com/sandevgo/lorebot/internal/service/knowledge"
	"github.com/sandevgo/lorebot/pkg/log"
	"github.com/spf13/cobra"
)

var ingestExtensions []string

var ingestCmd = &cobra.Command{
	Use:           "ingest <folder>",
	Short:         "Chunk and embed documents from a folder",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		app := newApp(ctx)
		defer app.shutdown(ctx)

		docs, err := knowledge.LoadDocuments(ctx, args[0], ingestExtensions...)
		if err != nil {
			return err
		}
		logger.Info().Int("documents", len(docs)).Str("folder", args[0]).Msg("loaded documents")

		if err := app.engine.AddDocuments(ctx, docs); err != nil {
			return err
		}

		logger.Info().Msg("ingestion complete")
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringSliceVarP(&ingestExtensions, "ext", "e", nil, "file extensions to ingest (default .txt)")
	rootCmd.AddCommand(ingestCmd)
}
