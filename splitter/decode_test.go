package splitter

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decoding", func() {
	DescribeTable("zone tags",
		func(raw uint32, want Zone) {
			Expect(DecodeZone(raw)).To(Equal(want))
			Expect(DecodeZone(raw)).To(Equal(want))
		},
		Entry("Main", uint32(0x6E69614D), ZoneMainMenu),
		Entry("Zone", uint32(0x656E6F5A), ZoneZones),
		Entry("Endi", uint32(0x69646E45), ZoneEnding),
		Entry("Save", uint32(0x65766153), ZoneSaveSelect),
		Entry("zero", uint32(0), ZoneDefault),
		Entry("big endian Main", uint32(0x4D61696E), ZoneDefault),
	)

	It("should decode every level id in play order", func() {
		want := []Act{
			EmeraldHill1, EmeraldHill2, ChemicalPlant1, ChemicalPlant2,
			AquaticRuin1, AquaticRuin2, CasinoNight1, CasinoNight2,
			HillTop1, HillTop2, MysticCave1, MysticCave2,
			OilOcean1, OilOcean2, Metropolis1, Metropolis2, Metropolis3,
			SkyChase, WingFortress, DeathEgg,
		}
		Expect(want).To(HaveLen(ActCount))
		for i, act := range want {
			Expect(DecodeAct(uint8(i))).To(Equal(act))
			Expect(act.IsStage()).To(BeTrue())
		}
	})

	It("should decode out of range level ids to Default", func() {
		for _, raw := range []uint8{20, 21, 0x7F, 0xFF} {
			Expect(DecodeAct(raw)).To(Equal(ActDefault))
		}
		Expect(ActDefault.IsStage()).To(BeFalse())
	})

	It("should name acts and zones", func() {
		Expect(EmeraldHill1.String()).To(Equal("EmeraldHill1"))
		Expect(ActDefault.String()).To(Equal("Default"))
		Expect(Act(40).String()).To(Equal("Act(40)"))
		Expect(ZoneSaveSelect.String()).To(Equal("SaveSelect"))
		Expect(Zone(99).String()).To(Equal("Default"))
	})
})
