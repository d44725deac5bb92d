// Command s2autosplit drives a speedrun timer from a running copy of
// Sonic 2 Absolute.
package main

import (
	"fmt"
	"os"

	"s2autosplit/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s2autosplit",
	Short: "Autosplitter for Sonic 2 Absolute.",
	Long: `Autosplitter for Sonic 2 Absolute. It attaches to the running game, ` +
		`reads its memory and starts, splits and resets a LiveSplit timer.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file (default $"+config.EnvPath+")")
}

// overrideFlags are the flags every command that reads game state accepts
func overrideFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("overrides", pflag.ContinueOnError)
	fs.StringArray("disable", nil, "Turn a setting off, may be repeated (see 'settings')")
	fs.StringSlice("process", nil, "Process names to attach to")
	fs.Duration("retry", 0, "Pause between attach and discovery attempts")
	return fs
}

// loadConfig reads the configuration file and applies command-line overrides
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Path(path))
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if disabled, err := flags.GetStringArray("disable"); err == nil {
		if err := cfg.Disable(disabled...); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("process") {
		cfg.ProcessNames, _ = flags.GetStringSlice("process")
	}
	if flags.Changed("retry") {
		cfg.RetryInterval, _ = flags.GetDuration("retry")
	}
	if flags.Changed("timer") {
		cfg.Timer, _ = flags.GetString("timer")
	}
	if flags.Changed("livesplit") {
		cfg.LiveSplitAddress, _ = flags.GetString("livesplit")
	}
	if flags.Changed("tick-rate") {
		cfg.TickRate, _ = flags.GetFloat64("tick-rate")
	}

	return cfg, cfg.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
