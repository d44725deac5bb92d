// Package splitter turns sampled Sonic 2 Absolute memory into timer commands.
//
// Discovery locates the game's fields once per attachment by scanning the
// main module for two code signatures and following 32-bit pointer chains.
// A Session then samples those fields every tick and applies the start,
// split and reset rules.
package splitter

import (
	"errors"
	"fmt"

	"s2autosplit/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

var (
	// ErrScanFailed is returned when the main module or a signature cannot be found yet
	ErrScanFailed = errors.New("signature scan failed")

	// ErrPointerUnresolved is returned when a pointer chain hits an unreadable or null pointer
	ErrPointerUnresolved = errors.New("pointer unresolved")

	// ErrSampleReadFailed makes a tick a no-op
	ErrSampleReadFailed = errors.New("sample read failed")

	// ErrProcessLost is returned once the game has exited; everything
	// discovered for it must be dropped
	ErrProcessLost = errors.New("process lost")
)

// DefaultProcessNames are the executable names the game ships under
var DefaultProcessNames = []string{"Sonic2Absolute.exe"}

// classify wraps err in kind, or in ErrProcessLost if the process is gone
func classify(kind error, err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, process.ErrProcessNotOpen) {
		return fmt.Errorf("%s: %w: %w", msg, ErrProcessLost, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, kind, err)
}

func newLogger(name string) *logger.Logger {
	return logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, name))
}
