package splitter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"s2autosplit/process"
	"s2autosplit/timer"

	"github.com/Moonlight-Companies/gologger/logger"
)

// DefaultTickRate is how often the game is sampled, in Hz
const DefaultTickRate = 60

// RunnerOptions configure a Runner. Zero values fall back to defaults.
type RunnerOptions struct {
	ProcessNames  []string
	ModuleNames   []string
	TickInterval  time.Duration
	RetryInterval time.Duration

	// Settings is called every tick so that changes apply without a restart
	Settings func() Settings
}

// Runner attaches to the game, discovers its addresses and ticks a Session
// until the game exits, then starts over.
type Runner struct {
	finder process.ProcessFinder
	open   process.Opener
	timer  timer.Timer
	opts   RunnerOptions
	log    *logger.Logger
}

func NewRunner(finder process.ProcessFinder, open process.Opener, t timer.Timer, opts RunnerOptions) *Runner {
	if len(opts.ProcessNames) == 0 {
		opts.ProcessNames = DefaultProcessNames
	}
	if len(opts.ModuleNames) == 0 {
		opts.ModuleNames = opts.ProcessNames
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / DefaultTickRate
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	if opts.Settings == nil {
		defaults := DefaultSettings()
		opts.Settings = func() Settings { return defaults }
	}

	return &Runner{
		finder: finder,
		open:   open,
		timer:  t,
		opts:   opts,
		log:    newLogger("autosplit"),
	}
}

// Run blocks until ctx is done and returns ctx.Err()
func (r *Runner) Run(ctx context.Context) error {
	for {
		proc, err := r.attach(ctx)
		if err != nil {
			return err
		}

		err = r.runAttached(ctx, proc)
		proc.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.log.Infoln("Detached:", err)
	}
}

// attach waits for the game to appear and opens it
func (r *Runner) attach(ctx context.Context) (process.Process, error) {
	wait := time.NewTimer(0)
	defer wait.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wait.C:
		}
		wait.Reset(r.opts.RetryInterval)

		info, err := r.finder.FindProcessByName(r.opts.ProcessNames...)
		if err != nil {
			if attempt == 1 {
				r.log.Infoln("Waiting for", r.opts.ProcessNames)
			}
			continue
		}

		proc, err := r.open(info.PID)
		if err != nil {
			r.log.Debugln("Open", info.PID, "failed:", err)
			continue
		}

		r.log.Infoln("Attached to", info.Name, "pid", info.PID)
		return proc, nil
	}
}

func (r *Runner) runAttached(ctx context.Context, proc process.Process) error {
	found, err := Discover(ctx, proc, r.opts.ModuleNames, r.opts.RetryInterval, newLogger("discovery"))
	if err != nil {
		return err
	}

	session := NewSession(proc, found.Table, r.timer)

	ticker := time.NewTicker(r.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if !proc.IsOpen() || !r.finder.IsRunning(proc.GetPID()) {
			return fmt.Errorf("pid %d: %w", proc.GetPID(), ErrProcessLost)
		}

		if _, err := session.Tick(r.opts.Settings()); err != nil {
			if errors.Is(err, ErrProcessLost) {
				return err
			}
			r.log.Debugln("Tick:", err)
		}
	}
}
