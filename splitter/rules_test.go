package splitter

import (
	"s2autosplit/timer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Rules", func() {
	var settings Settings

	BeforeEach(func() {
		settings = DefaultSettings()
	})

	It("should not fire before anything is sampled", func() {
		w := &WatcherSet{}
		Expect(Reset(w, settings)).To(BeFalse())
		Expect(Start(w, settings)).To(BeFalse())
		Expect(Split(w, settings)).To(BeFalse())
	})

	Describe("Reset", func() {
		DescribeTable("state transitions",
			func(old, current uint8, enabled, want bool) {
				settings.Reset = enabled
				w := watchersFrom(Sample{State: old}, Sample{State: current})
				Expect(Reset(w, settings)).To(Equal(want))
			},
			Entry("0 -> 4", uint8(0), uint8(4), true, true),
			Entry("0 -> 5", uint8(0), uint8(5), true, true),
			Entry("0 -> 4 disabled", uint8(0), uint8(4), false, false),
			Entry("0 -> 5 disabled", uint8(0), uint8(5), false, false),
			Entry("0 -> 6", uint8(0), uint8(6), true, false),
			Entry("0 -> 0", uint8(0), uint8(0), true, false),
			Entry("1 -> 4", uint8(1), uint8(4), true, false),
			Entry("4 -> 4", uint8(4), uint8(4), true, false),
			Entry("5 -> 0", uint8(5), uint8(0), true, false),
		)

		It("should compare against the first sample on the first tick", func() {
			w := watchersFrom(Sample{State: 4})
			Expect(Reset(w, settings)).To(BeFalse())
		})
	})

	Describe("Start", func() {
		It("should start when a save file is picked", func() {
			w := watchersFrom(Sample{State: 5}, Sample{State: 7})
			Expect(Start(w, settings)).To(BeTrue())

			settings.StartCleanSave = false
			Expect(Start(w, settings)).To(BeFalse())
		})

		It("should start a new game without a save file on the start indicator edge", func() {
			w := watchersFrom(Sample{State: 4}, Sample{State: 4, StartIndicator: 1})
			Expect(Start(w, settings)).To(BeTrue())

			w.Apply(Sample{State: 4, StartIndicator: 1})
			Expect(Start(w, settings)).To(BeFalse())
		})

		It("should not start without the start indicator edge reaching 1", func() {
			w := watchersFrom(Sample{State: 4, StartIndicator: 0}, Sample{State: 4, StartIndicator: 2})
			Expect(Start(w, settings)).To(BeFalse())
		})

		It("should start new game plus only from a normal zone select", func() {
			w := watchersFrom(Sample{State: 6}, Sample{State: 6, StartIndicator: 1})
			Expect(Start(w, settings)).To(BeTrue())

			settings.StartNewGamePlus = false
			Expect(Start(w, settings)).To(BeFalse())

			settings = DefaultSettings()
			w = watchersFrom(
				Sample{State: 6, ZoneSelectOnGameComplete: 1},
				Sample{State: 6, StartIndicator: 1, ZoneSelectOnGameComplete: 1},
			)
			Expect(Start(w, settings)).To(BeFalse())
		})

		It("should keep new game plus independent of start_clean_save", func() {
			settings.StartCleanSave = false
			w := watchersFrom(Sample{State: 6}, Sample{State: 6, StartIndicator: 1})
			Expect(Start(w, settings)).To(BeTrue())
		})
	})

	Describe("Split", func() {
		It("should split from Emerald Hill 1 to 2 when emerald_hill_1 is on", func() {
			w := watchersFrom(sampleAt(7, EmeraldHill1), sampleAt(7, EmeraldHill2))
			Expect(Split(w, settings)).To(BeTrue())

			settings.EmeraldHill1 = false
			Expect(Split(w, settings)).To(BeFalse())
		})

		It("should evaluate Emerald Hill 2 to Chemical Plant 1 against emerald_hill_2", func() {
			w := watchersFrom(sampleAt(7, EmeraldHill2), sampleAt(7, ChemicalPlant1))

			settings.EmeraldHill1 = false
			Expect(Split(w, settings)).To(BeTrue())

			settings.EmeraldHill2 = false
			Expect(Split(w, settings)).To(BeFalse())
		})

		It("should split on every consecutive act", func() {
			for i := 1; i < ActCount; i++ {
				w := watchersFrom(sampleAt(7, Act(i-1)), sampleAt(7, Act(i)))
				Expect(Split(w, settings)).To(BeTrue(), Act(i).String())
			}
		})

		It("should not split on skipped or repeated acts", func() {
			Expect(Split(watchersFrom(sampleAt(7, EmeraldHill1), sampleAt(7, ChemicalPlant1)), settings)).To(BeFalse())
			Expect(Split(watchersFrom(sampleAt(7, HillTop2), sampleAt(7, HillTop2)), settings)).To(BeFalse())
			Expect(Split(watchersFrom(sampleAt(7, HillTop2), sampleAt(7, HillTop1)), settings)).To(BeFalse())
		})

		It("should never split into Emerald Hill 1", func() {
			Expect(Split(watchersFrom(sampleAt(7, DeathEgg), sampleAt(7, EmeraldHill1)), settings)).To(BeFalse())
			Expect(Split(watchersFrom(sampleAt(7, EmeraldHill1)), settings)).To(BeFalse())
		})

		It("should split on reaching the ending with death_egg", func() {
			w := watchersFrom(sampleAt(7, DeathEgg), Sample{State: 7, ZoneIndicator: TagEnding})
			Expect(w.Act.Current(EmeraldHill1)).To(Equal(ActDefault))
			Expect(Split(w, settings)).To(BeTrue())

			settings.DeathEgg = false
			Expect(Split(w, settings)).To(BeFalse())

			settings = DefaultSettings()
			w.Apply(Sample{State: 7, ZoneIndicator: TagEnding})
			Expect(Split(w, settings)).To(BeFalse())
		})

		It("should not split when returning to a menu", func() {
			w := watchersFrom(sampleAt(7, OilOcean1), Sample{State: 0, ZoneIndicator: TagMainMenu})
			Expect(Split(w, settings)).To(BeFalse())

			w.Apply(sampleAt(7, OilOcean1))
			Expect(Split(w, settings)).To(BeFalse())
		})
	})

	It("should be free of side effects", func() {
		w := watchersFrom(Sample{State: 0}, sampleAt(4, EmeraldHill1), sampleAt(4, EmeraldHill2))
		before := *w

		for i := 0; i < 3; i++ {
			Expect(Split(w, settings)).To(BeTrue())
			Expect(Reset(w, settings)).To(BeFalse())
			Expect(Start(w, settings)).To(BeFalse())
			Expect(Decide(timer.Running, w, settings)).To(Equal(CommandSplit))
		}
		Expect(*w).To(Equal(before))
	})

	Describe("Decide", func() {
		var w *WatcherSet

		BeforeEach(func() {
			// reset, split and start all hold at once
			w = watchersFrom(
				Sample{State: 0, ZoneIndicator: TagZones, LevelID: uint8(EmeraldHill1)},
				Sample{State: 4, StartIndicator: 1, ZoneIndicator: TagZones, LevelID: uint8(EmeraldHill2)},
			)
			Expect(Reset(w, settings)).To(BeTrue())
			Expect(Split(w, settings)).To(BeTrue())
			Expect(Start(w, settings)).To(BeTrue())
		})

		It("should prefer reset while running or paused", func() {
			Expect(Decide(timer.Running, w, settings)).To(Equal(CommandReset))
			Expect(Decide(timer.Paused, w, settings)).To(Equal(CommandReset))
		})

		It("should split when reset is disabled", func() {
			settings.Reset = false
			Expect(Decide(timer.Running, w, settings)).To(Equal(CommandSplit))
		})

		It("should only start while not running", func() {
			Expect(Decide(timer.NotRunning, w, settings)).To(Equal(CommandStart))
		})

		It("should do nothing once the run has ended", func() {
			Expect(Decide(timer.Ended, w, settings)).To(Equal(CommandNone))
		})

		It("should name commands", func() {
			Expect(CommandNone.String()).To(Equal("none"))
			Expect(CommandStart.String()).To(Equal("start"))
			Expect(CommandSplit.String()).To(Equal("split"))
			Expect(CommandReset.String()).To(Equal("reset"))
		})
	})
})
