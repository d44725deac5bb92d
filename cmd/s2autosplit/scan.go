package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"s2autosplit/hexdump"
	"s2autosplit/process"
	"s2autosplit/process/memory_map"
	"s2autosplit/signature"
	"s2autosplit/splitter"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run address discovery once and print what was found.",
	Long: "Run address discovery once against the live game, or against a " +
		"directory written by 'dump', and print the address table, the " +
		"signature hits and the values currently in memory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dump")
		pid, _ := cmd.Flags().GetInt("pid")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		var proc process.Process
		if dir != "" {
			proc, err = loadDump(dir)
		} else {
			proc, _, err = attachOnce(cfg.ProcessNames, pid)
		}
		if err != nil {
			return err
		}
		defer proc.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		found, err := splitter.Discover(ctx, proc, cfg.Modules(), cfg.RetryInterval, nil)
		if err != nil {
			return fmt.Errorf("discovery: %w", err)
		}

		printTable(found)

		mm, _ := proc.GetMemoryMap()
		printHit("save data", proc, found.Hits.SaveData, splitter.SaveDataSignature, mm)
		printHit("zone indicator", proc, found.Hits.ZoneIndicator, splitter.ZoneIndicatorSignature, mm)

		sample, err := splitter.ReadSample(proc, found.Table)
		if err != nil {
			return err
		}
		printSample(sample)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().AddFlagSet(overrideFlags())
	scanCmd.Flags().String("dump", "", "Scan a saved dump directory instead of the live game")
	scanCmd.Flags().Int("pid", 0, "Attach to this PID instead of searching by name")
	scanCmd.Flags().Duration("timeout", 10*time.Second, "Give up discovery after this long")
}

func printTable(found splitter.Discovery) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FIELD\tADDRESS\n")
	fmt.Fprintf(w, "state\t%s\n", found.Table.State.ToString())
	fmt.Fprintf(w, "levelid\t%s\n", found.Table.LevelID.ToString())
	fmt.Fprintf(w, "startindicator\t%s\n", found.Table.StartIndicator.ToString())
	fmt.Fprintf(w, "zoneselectongamecomplete\t%s\n", found.Table.ZoneSelectOnGameComplete.ToString())
	fmt.Fprintf(w, "zoneindicator\t%s\n", found.Table.ZoneIndicator.ToString())
	w.Flush()
	fmt.Printf("\nFound after %d attempts\n", found.Attempts)
}

func printHit(name string, r process.MemoryReader, addr process.ProcessMemoryAddress, sig signature.Signature, mm []memory_map.MemoryMapItem) {
	fmt.Printf("\n%s signature at %s\n", name, addr.ToString())
	dump, err := hexdump.Around(r, addr, 16, 48, sig, mm)
	if err != nil {
		fmt.Println(" ", err)
		return
	}
	fmt.Print(dump)
}

func printSample(s splitter.Sample) {
	zone := splitter.DecodeZone(s.ZoneIndicator)

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FIELD\tVALUE\n")
	fmt.Fprintf(w, "state\t%d\n", s.State)
	fmt.Fprintf(w, "startindicator\t%d\n", s.StartIndicator)
	fmt.Fprintf(w, "zoneselectongamecomplete\t%d\n", s.ZoneSelectOnGameComplete)
	fmt.Fprintf(w, "zoneindicator\t0x%08X (%s)\n", s.ZoneIndicator, zone)
	if zone == splitter.ZoneZones {
		fmt.Fprintf(w, "levelid\t%d (%s)\n", s.LevelID, splitter.DecodeAct(s.LevelID))
	} else {
		fmt.Fprintf(w, "levelid\t-\n")
	}
	w.Flush()
}
