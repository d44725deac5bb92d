// Package timer controls the speedrun timer that splits are sent to.
package timer

import (
	"errors"
	"fmt"
)

// Phase is the state of the timer as reported by the timing tool
type Phase int

const (
	NotRunning Phase = iota
	Running
	Paused
	Ended
)

var ErrUnknownPhase = errors.New("unknown timer phase")

var phaseNames = [...]string{
	NotRunning: "NotRunning",
	Running:    "Running",
	Paused:     "Paused",
	Ended:      "Ended",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// ParsePhase accepts the names LiveSplit Server answers with
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return NotRunning, fmt.Errorf("%q: %w", s, ErrUnknownPhase)
}

// Timer is the consumer of start, split and reset commands
type Timer interface {
	Phase() (Phase, error)
	Start() error
	Split() error
	Reset() error
}
