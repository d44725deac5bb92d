package process_blob

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"s2autosplit/process"
	"s2autosplit/process/memory_map"
)

const (
	metadataFile  = "metadata.json"
	memoryMapFile = "process_memory_map.json"
)

var _ process.Process = (*ProcessDump)(nil)

// ProcessDump implements process.Process over memory held in this process:
// either a dump loaded from disk or an image assembled region by region.
// A closed dump behaves like an exited process.
type ProcessDump struct {
	PID        process.ProcessID
	Name       string
	MemoryMap  []memory_map.MemoryMapItem
	Blobs      map[uint64]*ProcessBlob // Region address -> data
	ModuleList []process.Module

	mu     sync.RWMutex
	closed bool
}

type dumpMetadata struct {
	PID     process.ProcessID `json:"pid"`
	Name    string            `json:"name"`
	Modules []process.Module  `json:"modules"`
}

// NewProcessDump creates an empty, open ProcessDump
func NewProcessDump() *ProcessDump {
	return &ProcessDump{
		Blobs: make(map[uint64]*ProcessBlob),
	}
}

// SetRegion maps data at addr, replacing any region already starting there
func (p *ProcessDump) SetRegion(addr process.ProcessMemoryAddress, data []byte, perms string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.removeRegionLocked(uint64(addr))
	p.MemoryMap = append(p.MemoryMap, memory_map.MemoryMapItem{
		Address: uint64(addr),
		Size:    uint(len(data)),
		Perms:   perms,
	})
	memory_map.Sort(p.MemoryMap)
	p.Blobs[uint64(addr)] = NewProcessBlob(addr, data)
}

// RemoveRegion unmaps the region starting at addr
func (p *ProcessDump) RemoveRegion(addr process.ProcessMemoryAddress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeRegionLocked(uint64(addr))
}

func (p *ProcessDump) removeRegionLocked(addr uint64) {
	delete(p.Blobs, addr)
	kept := p.MemoryMap[:0]
	for _, item := range p.MemoryMap {
		if item.Address != addr {
			kept = append(kept, item)
		}
	}
	p.MemoryMap = kept
}

// AddModule registers a loaded image
func (p *ProcessDump) AddModule(m process.Module) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ModuleList = append(p.ModuleList, m)
}

// Poke overwrites bytes inside an existing region
func (p *ProcessDump) Poke(addr process.ProcessMemoryAddress, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	blob, err := p.blobForLocked(addr, process.ProcessMemorySize(len(data)))
	if err != nil {
		return err
	}
	copy(blob.data[addr-blob.baseaddress:], data)
	return nil
}

func (p *ProcessDump) PokeUINT8(addr process.ProcessMemoryAddress, v uint8) error {
	return p.Poke(addr, []byte{v})
}

func (p *ProcessDump) PokeUINT32(addr process.ProcessMemoryAddress, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return p.Poke(addr, buf[:])
}

func (p *ProcessDump) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *ProcessDump) GetPID() process.ProcessID {
	return p.PID
}

func (p *ProcessDump) IsOpen() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

func (p *ProcessDump) UpdateMemoryMap() error {
	return nil // Memory map is static in a dump
}

func (p *ProcessDump) IsValidAddress(addr process.ProcessMemoryAddress) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	item := memory_map.FindRegion(uint64(addr), p.MemoryMap)
	return item != nil && item.IsReadable()
}

func (p *ProcessDump) GetMemoryMap() ([]memory_map.MemoryMapItem, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	result := make([]memory_map.MemoryMapItem, len(p.MemoryMap))
	copy(result, p.MemoryMap)
	return result, nil
}

func (p *ProcessDump) Modules() ([]process.Module, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, process.ErrProcessNotOpen
	}
	result := make([]process.Module, len(p.ModuleList))
	copy(result, p.ModuleList)
	return result, nil
}

func (p *ProcessDump) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, process.ErrProcessNotOpen
	}

	blob, err := p.blobForLocked(addr, size)
	if err != nil {
		return nil, err
	}
	return blob.ReadMemory(addr, size)
}

func (p *ProcessDump) blobForLocked(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) (*ProcessBlob, error) {
	region := memory_map.FindRegion(uint64(addr), p.MemoryMap)
	if region == nil {
		return nil, fmt.Errorf("%s: %w", addr.ToString(), process.ErrAddressNotMapped)
	}

	blob, ok := p.Blobs[region.Address]
	if !ok {
		return nil, fmt.Errorf("no data for region 0x%x: %w", region.Address, process.ErrAddressNotMapped)
	}

	if !blob.Contains(addr, size) {
		return nil, fmt.Errorf("read size %d at %s exceeds region data bounds: %w", size, addr.ToString(), process.ErrAddressNotMapped)
	}
	return blob, nil
}

func blobFileName(region memory_map.MemoryMapItem) string {
	return fmt.Sprintf("blob_0x%x_%d.bin", region.Address, region.Size)
}

// Load loads a dump written by Save
func (p *ProcessDump) Load(dirname string) error {
	metadataBytes, err := os.ReadFile(filepath.Join(dirname, metadataFile))
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata dumpMetadata
	if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
		return fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	mmBytes, err := os.ReadFile(filepath.Join(dirname, memoryMapFile))
	if err != nil {
		return fmt.Errorf("failed to read memory map: %w", err)
	}

	var mm []memory_map.MemoryMapItem
	if err := json.Unmarshal(mmBytes, &mm); err != nil {
		return fmt.Errorf("failed to unmarshal memory map: %w", err)
	}
	memory_map.Sort(mm)

	blobs := make(map[uint64]*ProcessBlob)
	for _, region := range mm {
		filename := filepath.Join(dirname, blobFileName(region))
		data, err := os.ReadFile(filename)
		if os.IsNotExist(err) {
			continue // Blob not saved (e.g. too large or not readable)
		}
		if err != nil {
			return fmt.Errorf("failed to read blob %s: %w", filename, err)
		}
		blobs[region.Address] = NewProcessBlob(process.ProcessMemoryAddress(region.Address), data)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.PID = metadata.PID
	p.Name = metadata.Name
	p.ModuleList = metadata.Modules
	p.MemoryMap = mm
	p.Blobs = blobs
	p.closed = false

	return nil
}
