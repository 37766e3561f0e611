package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		slog.Error("sheetmerge failed", "error", err)
		os.Exit(1)
	}
}

func run(output io.Writer, args []string) error {
	root := newRootCmd(output)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(output io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "sheetmerge",
		Short:         "Merge report values into templated Excel sheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
			return nil
		},
	}
	root.SetOut(output)
	root.SetErr(output)

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(mergeCmd(), scanCmd(), serveCmd())
	return root
}
