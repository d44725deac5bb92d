package main

import (
	"fmt"

	"s2autosplit/process"
	"s2autosplit/process_blob"
	"s2autosplit/process_find"
)

// attachOnce opens the game by PID, or by name when pid is 0
func attachOnce(names []string, pid int) (process.Process, string, error) {
	name := names[0]
	if pid == 0 {
		info, err := process_find.New().FindProcessByName(names...)
		if err != nil {
			return nil, "", err
		}
		pid = int(info.PID)
		name = info.Name
	}

	proc, err := openProcess(process.ProcessID(pid))
	if err != nil {
		return nil, "", fmt.Errorf("attach to %d: %w", pid, err)
	}
	return proc, name, nil
}

// loadDump opens a directory written by the dump command
func loadDump(dir string) (*process_blob.ProcessDump, error) {
	dump := process_blob.NewProcessDump()
	if err := dump.Load(dir); err != nil {
		return nil, err
	}
	return dump, nil
}
