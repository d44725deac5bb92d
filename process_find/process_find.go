// Package process_find looks up running processes by name using gopsutil,
// which works the same on Linux (including Wine/Proton games) and Windows.
package process_find

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"s2autosplit/process"

	gops "github.com/shirou/gopsutil/process"
)

var _ process.ProcessFinder = (*Finder)(nil)

// Finder implements process.ProcessFinder
type Finder struct {
	// list is swapped out by tests
	list func() ([]candidate, error)
}

type candidate interface {
	pid() int32
	names() []string
}

// New creates a Finder backed by the live process table
func New() *Finder {
	return &Finder{list: listProcesses}
}

// FindProcessByName returns the lowest-PID process matching any of names.
// A process matches on its reported name, its executable's base name, or
// the base name of argv[0]; the last one catches Wine processes whose
// command line is a Windows path and whose comm is truncated to 15 bytes.
func (f *Finder) FindProcessByName(names ...string) (*process.ProcessInfo, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no process names given")
	}

	candidates, err := f.list()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].pid() < candidates[j].pid()
	})

	for _, c := range candidates {
		for _, have := range c.names() {
			for _, want := range names {
				if strings.EqualFold(have, want) {
					return &process.ProcessInfo{PID: process.ProcessID(c.pid()), Name: want}, nil
				}
			}
		}
	}

	return nil, fmt.Errorf("%v: %w", names, process.ErrProcessNotFound)
}

// IsRunning reports whether the PID is still present in the process table
func (f *Finder) IsRunning(pid process.ProcessID) bool {
	ok, err := gops.PidExists(int32(pid))
	return err == nil && ok
}

type gopsCandidate struct {
	p *gops.Process
}

func (c gopsCandidate) pid() int32 {
	return c.p.Pid
}

func (c gopsCandidate) names() []string {
	var out []string
	if name, err := c.p.Name(); err == nil && name != "" {
		out = append(out, name)
	}
	if exe, err := c.p.Exe(); err == nil && exe != "" {
		out = append(out, filepath.Base(exe))
	}
	if args, err := c.p.CmdlineSlice(); err == nil && len(args) > 0 {
		out = append(out, windowsBase(args[0]))
	}
	return out
}

// windowsBase returns the last element of a path using either separator
func windowsBase(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func listProcesses() ([]candidate, error) {
	procs, err := gops.Processes()
	if err != nil {
		return nil, err
	}

	out := make([]candidate, 0, len(procs))
	for _, p := range procs {
		out = append(out, gopsCandidate{p: p})
	}
	return out, nil
}
