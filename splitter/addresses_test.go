package splitter

import (
	"context"
	"time"

	"s2autosplit/process"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Address discovery", func() {
	var game *fakeGame

	BeforeEach(func() {
		game = newFakeGame()
	})

	It("should build the address table", func() {
		table, hits, err := buildAddressTable(game.dump, DefaultProcessNames)
		Expect(err).NotTo(HaveOccurred())
		Expect(table).To(Equal(gameTable))
		Expect(hits.SaveData).To(Equal(gameSig1))
		Expect(hits.ZoneIndicator).To(Equal(gameSig2))
	})

	It("should match module names case-insensitively", func() {
		table, err := BuildAddressTable(game.dump, "SONIC2ABSOLUTE.EXE")
		Expect(err).NotTo(HaveOccurred())
		Expect(table).To(Equal(gameTable))
	})

	It("should fail the scan when the module is not loaded", func() {
		_, err := BuildAddressTable(game.dump, "Sonic1Forever.exe")
		Expect(err).To(MatchError(ErrScanFailed))
		Expect(err).To(MatchError(process.ErrModuleNotFound))
	})

	It("should fail the scan when a signature is missing", func() {
		game.poke8(gameSig2, 0x00)

		_, err := BuildAddressTable(game.dump)
		Expect(err).To(MatchError(ErrScanFailed))
	})

	It("should report a null save data pointer as unresolved", func() {
		game.poke32(gameSig1+14, 0)

		_, err := BuildAddressTable(game.dump)
		Expect(err).To(MatchError(ErrPointerUnresolved))
		Expect(err).To(MatchError(process.ErrInvalidPointer))
	})

	It("should report a broken chain as unresolved", func() {
		game.poke32(0x601100+1, 0)

		_, err := BuildAddressTable(game.dump)
		Expect(err).To(MatchError(ErrPointerUnresolved))
	})

	It("should report a closed process as lost", func() {
		Expect(game.dump.Close()).To(Succeed())

		_, err := BuildAddressTable(game.dump)
		Expect(err).To(MatchError(ErrProcessLost))
	})

	Describe("Discover", func() {
		It("should retry until the game has initialized", func() {
			game.poke32(gameSaveData+0x4*30, 0)

			go func() {
				defer GinkgoRecover()
				time.Sleep(30 * time.Millisecond)
				game.poke32(gameSaveData+0x4*30, 0x601200)
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			found, err := Discover(ctx, game.dump, nil, 5*time.Millisecond, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Table).To(Equal(gameTable))
			Expect(found.Hits.SaveData).To(Equal(gameSig1))
			Expect(found.Attempts).To(BeNumerically(">", 1))
		})

		It("should stop when the context is cancelled", func() {
			game.poke32(gameSig1+14, 0)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
			defer cancel()

			_, err := Discover(ctx, game.dump, nil, 5*time.Millisecond, nil)
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})

		It("should give up when the process goes away", func() {
			game.poke32(gameSig1+14, 0)

			go func() {
				defer GinkgoRecover()
				time.Sleep(20 * time.Millisecond)
				Expect(game.dump.Close()).To(Succeed())
			}()

			_, err := Discover(context.Background(), game.dump, nil, 5*time.Millisecond, nil)
			Expect(err).To(MatchError(ErrProcessLost))
		})
	})
})
