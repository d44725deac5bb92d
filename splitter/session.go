package splitter

import (
	"fmt"
	"sync"

	"s2autosplit/process"
	"s2autosplit/timer"

	"github.com/Moonlight-Companies/gologger/logger"
)

// Command is what a tick asks of the timer
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandSplit
	CommandReset
)

func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandSplit:
		return "split"
	case CommandReset:
		return "reset"
	default:
		return "none"
	}
}

// Decide picks at most one command. While the timer runs or is paused
// reset wins over split; start is only considered while it is not running.
// An ended run gets nothing.
func Decide(phase timer.Phase, w *WatcherSet, s Settings) Command {
	switch phase {
	case timer.Running, timer.Paused:
		if Reset(w, s) {
			return CommandReset
		}
		if Split(w, s) {
			return CommandSplit
		}
	case timer.NotRunning:
		if Start(w, s) {
			return CommandStart
		}
	}
	return CommandNone
}

// Session is the state kept for one attachment: the discovered addresses
// and the watchers fed from them. A new attachment needs a new Session.
type Session struct {
	proc  process.MemoryReader
	table AddressTable
	timer timer.Timer
	log   *logger.Logger

	mu       sync.Mutex
	watchers WatcherSet
}

func NewSession(proc process.MemoryReader, table AddressTable, t timer.Timer) *Session {
	return &Session{
		proc:  proc,
		table: table,
		timer: t,
		log:   newLogger("splitter"),
	}
}

func (s *Session) Table() AddressTable {
	return s.table
}

// Watchers returns a copy of the current watcher state
func (s *Session) Watchers() WatcherSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchers
}

// Tick samples the game, updates the watchers and sends the resulting
// command to the timer. A failed read leaves the watchers untouched and
// sends nothing.
func (s *Session) Tick(settings Settings) (Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample, err := ReadSample(s.proc, s.table)
	if err != nil {
		return CommandNone, err
	}
	s.watchers.Apply(sample)

	phase, err := s.timer.Phase()
	if err != nil {
		return CommandNone, fmt.Errorf("timer phase: %w", err)
	}

	cmd := Decide(phase, &s.watchers, settings)
	switch cmd {
	case CommandStart:
		err = s.timer.Start()
	case CommandSplit:
		err = s.timer.Split()
	case CommandReset:
		err = s.timer.Reset()
	default:
		return CommandNone, nil
	}
	if err != nil {
		return cmd, fmt.Errorf("%s: %w", cmd, err)
	}

	s.log.Infoln("Sent", cmd, "in", s.watchers.Zone.Current(ZoneDefault), s.watchers.Act.Current(ActDefault))
	return cmd, nil
}
