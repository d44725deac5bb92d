package timer

import (
	"sync"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

var _ Timer = (*Log)(nil)

// Log is a timer that lives in this process and only logs what it is told.
// It follows the LiveSplit phase rules so that gating behaves the same as
// with a real timer. After segments splits the run ends; 0 never ends.
type Log struct {
	segments int
	log      *logger.Logger

	mu     sync.Mutex
	phase  Phase
	splits int
}

func NewLog(segments int) *Log {
	return &Log{
		segments: segments,
		log:      logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "timer")),
	}
}

func (t *Log) Phase() (Phase, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase, nil
}

// Splits returns how many splits the current run has
func (t *Log) Splits() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.splits
}

func (t *Log) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != NotRunning {
		t.log.Debugln("Start ignored in phase", t.phase)
		return nil
	}
	t.phase = Running
	t.splits = 0
	t.log.Infoln("Timer started")
	return nil
}

func (t *Log) Split() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != Running {
		t.log.Debugln("Split ignored in phase", t.phase)
		return nil
	}
	t.splits++
	t.log.Infoln("Split", t.splits)
	if t.segments > 0 && t.splits >= t.segments {
		t.phase = Ended
		t.log.Infoln("Run ended")
	}
	return nil
}

func (t *Log) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase == NotRunning {
		return nil
	}
	t.phase = NotRunning
	t.splits = 0
	t.log.Infoln("Timer reset")
	return nil
}
