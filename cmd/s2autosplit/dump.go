package main

import (
	"errors"
	"fmt"

	"s2autosplit/process_blob"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Save the game's readable memory to a directory for offline scans.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		pid, _ := cmd.Flags().GetInt("pid")
		if output == "" {
			return errors.New("--output is required")
		}

		proc, name, err := attachOnce(cfg.ProcessNames, pid)
		if err != nil {
			return err
		}
		defer proc.Close()

		stats, err := process_blob.Save(proc, name, output)
		if err != nil {
			return err
		}

		fmt.Printf("Saved %d regions to %s (%d unreadable, %d too large, %d read errors, %d write errors)\n",
			stats.Saved, output, stats.SkippedUnread, stats.SkippedTooLarge, stats.ReadErrors, stats.WriteErrors)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().AddFlagSet(overrideFlags())
	dumpCmd.Flags().StringP("output", "o", "", "Output directory for the dump")
	dumpCmd.Flags().Int("pid", 0, "Attach to this PID instead of searching by name")
}
