package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lkzdsb-lab/postsvc/internal/printer"
)

func main() {
	var (
		interval time.Duration
		greet    bool
	)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:           "printers",
		Short:         "Run two printers concurrently and interleave their output",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, time.Now().Format(time.DateOnly))
			if greet {
				if err := printer.Greet(cmd.Context(), out, 2*interval); err != nil {
					return err
				}
			}
			return printer.Gather(cmd.Context(), out, interval,
				printer.Job{Name: "A", Times: 3},
				printer.Job{Name: "B", Times: 10},
			)
		},
	}
	root.Flags().DurationVar(&interval, "interval", time.Second, "pause after each print")
	root.Flags().BoolVar(&greet, "greet", false, "print the hello/world greeting first")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("printers exited")
	}
}
