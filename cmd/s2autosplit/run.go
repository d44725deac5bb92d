package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"s2autosplit/process_find"
	"s2autosplit/splitter"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Attach to the game and drive the timer until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		t := cfg.NewTimer()
		if c, ok := t.(io.Closer); ok {
			defer c.Close()
		}

		runner := splitter.NewRunner(process_find.New(), openProcess, t, cfg.RunnerOptions())
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().AddFlagSet(overrideFlags())
	runCmd.Flags().String("timer", "", "Timer backend: livesplit or log")
	runCmd.Flags().String("livesplit", "", "LiveSplit Server address")
	runCmd.Flags().Float64("tick-rate", 0, "Samples per second")
}
