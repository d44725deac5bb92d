package process_blob

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"s2autosplit/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// MaxRegionSize is the largest region Save writes; bigger ones are skipped
const MaxRegionSize = 100 * 1024 * 1024

// SaveStats counts what Save did with each region
type SaveStats struct {
	Saved           int
	SkippedUnread   int
	SkippedTooLarge int
	ReadErrors      int
	WriteErrors     int
}

// Save writes the readable memory, memory map and module list of proc to dirname
// in the format Load understands.
func Save(proc process.Process, name string, dirname string) (SaveStats, error) {
	var stats SaveStats
	log := logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "dump"))

	if err := os.MkdirAll(dirname, 0755); err != nil {
		return stats, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := proc.UpdateMemoryMap(); err != nil {
		return stats, fmt.Errorf("failed to update memory map: %w", err)
	}

	mm, err := proc.GetMemoryMap()
	if err != nil {
		return stats, err
	}

	modules, err := proc.Modules()
	if err != nil {
		log.Warn("Failed to list modules: ", err)
	}

	metadata := dumpMetadata{PID: proc.GetPID(), Name: name, Modules: modules}
	if err := writeJSON(filepath.Join(dirname, metadataFile), metadata); err != nil {
		return stats, err
	}
	if err := writeJSON(filepath.Join(dirname, memoryMapFile), mm); err != nil {
		return stats, err
	}

	log.Infoln("Saving", len(mm), "regions to", dirname)

	for _, region := range mm {
		if !region.IsReadable() {
			stats.SkippedUnread++
			continue
		}

		if region.Size > MaxRegionSize {
			log.Infoln("Skipping large region at", fmt.Sprintf("%x", region.Address), "(size:", region.Size/1024/1024, "MB)")
			stats.SkippedTooLarge++
			continue
		}

		data, err := proc.ReadMemory(process.ProcessMemoryAddress(region.Address), process.ProcessMemorySize(region.Size))
		if err != nil {
			if errors.Is(err, process.ErrProcessNotOpen) {
				return stats, err
			}
			log.Debugln("Failed to read memory region at", fmt.Sprintf("%x", region.Address), err)
			stats.ReadErrors++
			continue
		}

		if err := os.WriteFile(filepath.Join(dirname, blobFileName(region)), data, 0644); err != nil {
			log.Infoln("Failed to write memory file for region at", fmt.Sprintf("%x", region.Address), ":", err)
			stats.WriteErrors++
			continue
		}

		stats.Saved++
	}

	log.Infoln("Process dump saved:", stats.Saved, "regions saved,", stats.ReadErrors+stats.WriteErrors, "errors")

	return stats, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
