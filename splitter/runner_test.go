package splitter

import (
	"context"
	"sync"
	"time"

	"s2autosplit/process"
	"s2autosplit/timer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeFinder struct {
	mu      sync.Mutex
	running bool
	games   []*fakeGame
	opened  int
}

func (f *fakeFinder) FindProcessByName(names ...string) (*process.ProcessInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running || f.opened >= len(f.games) {
		return nil, process.ErrProcessNotFound
	}
	return &process.ProcessInfo{PID: process.ProcessID(1000 + f.opened), Name: names[0]}, nil
}

func (f *fakeFinder) IsRunning(pid process.ProcessID) bool {
	return true
}

func (f *fakeFinder) open(pid process.ProcessID) (process.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := f.games[f.opened]
	f.opened++
	return g.dump, nil
}

func (f *fakeFinder) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened
}

var _ = Describe("Runner", func() {
	var (
		finder *fakeFinder
		tm     *timer.Log
		runner *Runner
		ctx    context.Context
		cancel context.CancelFunc
		done   chan error
	)

	BeforeEach(func() {
		finder = &fakeFinder{games: []*fakeGame{newFakeGame(), newFakeGame()}}
		finder.games[0].set(Sample{State: 5, ZoneIndicator: TagSaveSelect})
		finder.games[1].set(Sample{State: 5, ZoneIndicator: TagSaveSelect})

		tm = timer.NewLog(0)
		runner = NewRunner(finder, finder.open, tm, RunnerOptions{
			TickInterval:  time.Millisecond,
			RetryInterval: 5 * time.Millisecond,
		})

		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
		go func() { done <- runner.Run(ctx) }()
	})

	AfterEach(func() {
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})

	// alternate flips game memory between two frames until cond holds, so
	// that the runner sees the transition whatever tick it is on
	alternate := func(game *fakeGame, from, to Sample, cond func() bool) func() bool {
		return func() bool {
			game.set(from)
			time.Sleep(5 * time.Millisecond)
			game.set(to)
			time.Sleep(5 * time.Millisecond)
			return cond()
		}
	}

	running := func() bool {
		p, _ := tm.Phase()
		return p == timer.Running
	}

	It("should wait for the game and then drive the timer", func() {
		Consistently(finder.openCount, 30*time.Millisecond).Should(BeZero())

		finder.mu.Lock()
		finder.running = true
		finder.mu.Unlock()
		Eventually(finder.openCount).Should(Equal(1))

		game := finder.games[0]
		Eventually(alternate(game,
			Sample{State: 5, ZoneIndicator: TagSaveSelect},
			Sample{State: 7, ZoneIndicator: TagSaveSelect},
			running,
		)).Should(BeTrue())

		Eventually(alternate(game,
			sampleAt(7, EmeraldHill1),
			sampleAt(7, EmeraldHill2),
			func() bool { return tm.Splits() > 0 },
		)).Should(BeTrue())
	})

	It("should attach again after the game exits", func() {
		finder.mu.Lock()
		finder.running = true
		finder.mu.Unlock()
		Eventually(finder.openCount).Should(Equal(1))

		Expect(finder.games[0].dump.Close()).To(Succeed())
		Eventually(finder.openCount).Should(Equal(2))

		Eventually(alternate(finder.games[1],
			Sample{State: 5, ZoneIndicator: TagSaveSelect},
			Sample{State: 7, ZoneIndicator: TagSaveSelect},
			running,
		)).Should(BeTrue())
	})
})
