package splitter

import (
	"errors"

	"s2autosplit/timer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Session", func() {
	var (
		mockCtrl *gomock.Controller
		tm       *MockTimer
		game     *fakeGame
		session  *Session
		settings Settings
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		tm = NewMockTimer(mockCtrl)
		game = newFakeGame()
		session = NewSession(game.dump, gameTable, tm)
		settings = DefaultSettings()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	tick := func(s Sample, phase timer.Phase) Command {
		game.set(s)
		tm.EXPECT().Phase().Return(phase, nil)
		cmd, err := session.Tick(settings)
		Expect(err).NotTo(HaveOccurred())
		return cmd
	}

	It("should start the timer when a save file is picked", func() {
		Expect(tick(Sample{State: 5, ZoneIndicator: TagSaveSelect}, timer.NotRunning)).To(Equal(CommandNone))

		game.set(Sample{State: 7, ZoneIndicator: TagSaveSelect})
		gomock.InOrder(
			tm.EXPECT().Phase().Return(timer.NotRunning, nil),
			tm.EXPECT().Start().Return(nil),
		)
		cmd, err := session.Tick(settings)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd).To(Equal(CommandStart))
	})

	It("should split once per act transition", func() {
		Expect(tick(sampleAt(7, EmeraldHill1), timer.Running)).To(Equal(CommandNone))

		game.set(sampleAt(7, EmeraldHill2))
		tm.EXPECT().Phase().Return(timer.Running, nil)
		tm.EXPECT().Split().Return(nil)
		cmd, err := session.Tick(settings)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd).To(Equal(CommandSplit))

		Expect(tick(sampleAt(7, EmeraldHill2), timer.Running)).To(Equal(CommandNone))
		Expect(tick(Sample{State: 7, ZoneIndicator: TagMainMenu}, timer.Running)).To(Equal(CommandNone))
		Expect(tick(sampleAt(7, EmeraldHill2), timer.Running)).To(Equal(CommandNone))
	})

	It("should send only the reset when reset and split both hold", func() {
		Expect(tick(Sample{State: 0, ZoneIndicator: TagZones, LevelID: uint8(EmeraldHill1)}, timer.Running)).To(Equal(CommandNone))

		game.set(Sample{State: 4, ZoneIndicator: TagZones, LevelID: uint8(EmeraldHill2)})
		tm.EXPECT().Phase().Return(timer.Running, nil)
		tm.EXPECT().Reset().Return(nil)
		cmd, err := session.Tick(settings)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd).To(Equal(CommandReset))
	})

	It("should do nothing after the run has ended", func() {
		tick(sampleAt(7, WingFortress), timer.Ended)
		Expect(tick(sampleAt(7, DeathEgg), timer.Ended)).To(Equal(CommandNone))
	})

	It("should skip the whole tick when a read fails", func() {
		tick(sampleAt(7, EmeraldHill1), timer.Running)
		before := session.Watchers()

		game.dump.RemoveRegion(gameHeap)
		cmd, err := session.Tick(settings)
		Expect(err).To(MatchError(ErrSampleReadFailed))
		Expect(cmd).To(Equal(CommandNone))
		Expect(session.Watchers()).To(Equal(before))
	})

	It("should keep a change visible across failed ticks", func() {
		tick(sampleAt(7, HillTop1), timer.Paused)

		heap, err := game.dump.ReadMemory(gameHeap, gameHeapSize)
		Expect(err).NotTo(HaveOccurred())
		game.dump.RemoveRegion(gameHeap)
		_, err = session.Tick(settings)
		Expect(err).To(HaveOccurred())
		game.dump.SetRegion(gameHeap, heap, "rw-p")

		game.set(sampleAt(7, HillTop2))
		tm.EXPECT().Phase().Return(timer.Paused, nil)
		tm.EXPECT().Split().Return(nil)
		cmd, err := session.Tick(settings)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd).To(Equal(CommandSplit))
	})

	It("should report timer failures", func() {
		game.set(sampleAt(7, EmeraldHill1))
		tm.EXPECT().Phase().Return(timer.NotRunning, errors.New("connection refused"))
		cmd, err := session.Tick(settings)
		Expect(err).To(HaveOccurred())
		Expect(cmd).To(Equal(CommandNone))

		game.set(sampleAt(7, EmeraldHill2))
		tm.EXPECT().Phase().Return(timer.Running, nil)
		tm.EXPECT().Split().Return(errors.New("broken pipe"))
		cmd, err = session.Tick(settings)
		Expect(err).To(MatchError(ContainSubstring("broken pipe")))
		Expect(cmd).To(Equal(CommandSplit))
	})

	It("should honor settings read at tick time", func() {
		tick(sampleAt(7, EmeraldHill1), timer.Running)

		settings.EmeraldHill1 = false
		Expect(tick(sampleAt(7, EmeraldHill2), timer.Running)).To(Equal(CommandNone))
	})

	It("should expose the table it was built with", func() {
		Expect(session.Table()).To(Equal(gameTable))
	})
})
