package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"s2autosplit/splitter"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "List every setting with its effective value.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "KEY\tVALUE\tDESCRIPTION\n")
		for _, o := range splitter.Options() {
			v, err := cfg.Settings.Get(o.Key)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%t\t%s\n", o.Key, v, o.Label)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().AddFlagSet(overrideFlags())
}
