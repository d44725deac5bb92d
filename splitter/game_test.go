package splitter

import (
	"bytes"
	"debug/pe"
	"encoding/binary"

	"s2autosplit/process"
	"s2autosplit/process_blob"

	. "github.com/onsi/gomega"
)

// Layout of the fake game: a module image holding both signatures and a
// heap holding the pointer chains they lead to.
const (
	gameModuleBase = process.ProcessMemoryAddress(0x400000)
	gameModuleSize = 0x3000
	gameSig1       = gameModuleBase + 0x1000
	gameSig2       = gameModuleBase + 0x2000

	gameHeap     = process.ProcessMemoryAddress(0x600000)
	gameHeapSize = 0x4000
	gameSaveData = gameHeap
	gameZoneTag  = gameHeap + 0x3100
)

var gameTable = AddressTable{
	State:                    0x602000 + 0x9D8,
	LevelID:                  0x603000,
	StartIndicator:           0x602100 + 0x9D8,
	ZoneSelectOnGameComplete: 0x602200 + 0x9D8,
	ZoneIndicator:            gameZoneTag,
}

type fakeGame struct {
	dump *process_blob.ProcessDump
}

func newFakeGame() *fakeGame {
	image := make([]byte, 0x1000*3)
	copy(image, peHeaders(gameModuleSize))

	sig1 := []byte{0x3D, 1, 2, 3, 4, 0x0F, 0x87, 5, 6, 7, 8, 0xFF, 0x24, 0x85, 0, 0, 0, 0, 0xA1}
	binary.LittleEndian.PutUint32(sig1[14:], uint32(gameSaveData))
	copy(image[gameSig1-gameModuleBase:], sig1)

	sig2 := []byte{0x69, 0xF8, 1, 2, 3, 4, 0xB8, 0, 0, 0, 0}
	binary.LittleEndian.PutUint32(sig2[7:], uint32(gameZoneTag))
	copy(image[gameSig2-gameModuleBase:], sig2)

	dump := process_blob.NewProcessDump()
	dump.PID = 1234
	dump.Name = "Sonic2Absolute.exe"
	dump.SetRegion(gameModuleBase, image, "r-xp")
	dump.SetRegion(gameHeap, make([]byte, gameHeapSize), "rw-p")
	dump.AddModule(process.Module{Name: "Sonic2Absolute.exe", Base: gameModuleBase, Size: 0x1000})

	g := &fakeGame{dump: dump}
	g.poke32(gameSaveData+0x4*89, 0x601000)
	g.poke32(0x601000+8, 0x602000)
	g.poke32(gameSaveData+0x4*123, 0x601100)
	g.poke32(0x601100+1, 0x603000)
	g.poke32(gameSaveData+0x4*30, 0x601200)
	g.poke32(0x601200+8, 0x602100)
	g.poke32(gameSaveData+0x4*91, 0x601300)
	g.poke32(0x601300+8, 0x602200)
	return g
}

func (g *fakeGame) poke32(addr process.ProcessMemoryAddress, v uint32) {
	Expect(g.dump.PokeUINT32(addr, v)).To(Succeed())
}

func (g *fakeGame) poke8(addr process.ProcessMemoryAddress, v uint8) {
	Expect(g.dump.PokeUINT8(addr, v)).To(Succeed())
}

// set writes one frame of game memory
func (g *fakeGame) set(s Sample) {
	g.poke8(gameTable.State, s.State)
	g.poke8(gameTable.StartIndicator, s.StartIndicator)
	g.poke8(gameTable.ZoneSelectOnGameComplete, s.ZoneSelectOnGameComplete)
	g.poke32(gameTable.ZoneIndicator, s.ZoneIndicator)
	g.poke8(gameTable.LevelID, s.LevelID)
}

// peHeaders returns minimal DOS and PE32 headers for an image of size bytes
func peHeaders(size uint32) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{'M', 'Z'})
	buf.Write(make([]byte, 0x3C-2))
	Expect(binary.Write(&buf, binary.LittleEndian, uint32(0x40))).To(Succeed())
	buf.Write([]byte{'P', 'E', 0, 0})

	oh := pe.OptionalHeader32{Magic: 0x10b, ImageBase: uint32(gameModuleBase), SizeOfImage: size}
	fh := pe.FileHeader{Machine: pe.IMAGE_FILE_MACHINE_I386, SizeOfOptionalHeader: uint16(binary.Size(oh))}
	Expect(binary.Write(&buf, binary.LittleEndian, fh)).To(Succeed())
	Expect(binary.Write(&buf, binary.LittleEndian, oh)).To(Succeed())
	return buf.Bytes()
}

// sampleAt is a frame inside a stage
func sampleAt(state uint8, act Act) Sample {
	return Sample{State: state, ZoneIndicator: TagZones, LevelID: uint8(act)}
}

// watchersFrom applies samples in order to a fresh WatcherSet
func watchersFrom(samples ...Sample) *WatcherSet {
	w := &WatcherSet{}
	for _, s := range samples {
		w.Apply(s)
	}
	return w
}
