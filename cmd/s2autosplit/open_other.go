//go:build !linux && !windows

package main

import (
	"fmt"
	"runtime"

	"s2autosplit/process"
)

var openProcess process.Opener = func(pid process.ProcessID) (process.Process, error) {
	return nil, fmt.Errorf("reading process memory is not supported on %s", runtime.GOOS)
}
