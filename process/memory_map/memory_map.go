package memory_map

import (
	"fmt"
	"sort"
)

// MemoryMapItem represents a memory region in a process's address space
type MemoryMapItem struct {
	Address uint64 `json:"Address"` // The starting address of the memory region
	Size    uint   `json:"Size"`    // The size of the memory region in bytes
	Perms   string `json:"Perms"`   // Permissions (e.g., "r-xp" for read, execute, private)
	Offset  uint64 `json:"Offset"`  // Offset into the backing file, 0 for anonymous regions
	Path    string `json:"Path"`    // Backing file or pseudo path, empty for anonymous regions
}

// String returns a string representation of the memory map item
func (mmItem MemoryMapItem) String() string {
	return fmt.Sprintf("Address: %x, Size: %d, Perms: %s, Path: %s", mmItem.Address, mmItem.Size, mmItem.Perms, mmItem.Path)
}

func (mmItem MemoryMapItem) End() uint64 {
	return mmItem.Address + uint64(mmItem.Size)
}

func (mmItem MemoryMapItem) IsReadable() bool {
	return len(mmItem.Perms) > 0 && mmItem.Perms[0] == 'r'
}

func (mmItem MemoryMapItem) IsWritable() bool {
	return len(mmItem.Perms) > 1 && mmItem.Perms[1] == 'w'
}

// MemoryMap defines the interface for operations related to a process's memory map
type MemoryMap interface {
	// ReadMemoryMap reads and parses the memory map for a process
	ReadMemoryMap(pid int) ([]MemoryMapItem, error)
}

// Sort orders the map by address, which FindRegion requires
func Sort(memoryMap []MemoryMapItem) {
	sort.Slice(memoryMap, func(i, j int) bool {
		return memoryMap[i].Address < memoryMap[j].Address
	})
}

// FindRegion returns the region containing addr in a memory map sorted by address, or nil
func FindRegion(addr uint64, memoryMap []MemoryMapItem) *MemoryMapItem {
	i := sort.Search(len(memoryMap), func(i int) bool {
		return memoryMap[i].End() > addr
	})
	if i < len(memoryMap) && memoryMap[i].Address <= addr {
		return &memoryMap[i]
	}

	return nil
}

// FileMapping is the extent covered by all regions backed by one file
type FileMapping struct {
	Path  string
	Start uint64 // Lowest address mapped at file offset 0
	End   uint64
}

// FileMappings groups a memory map by backing file. Only files with a
// region mapped at offset 0 are reported, in order of their first mapping.
func FileMappings(memoryMap []MemoryMapItem) []FileMapping {
	var order []string
	byPath := make(map[string]*FileMapping)

	for _, item := range memoryMap {
		if item.Path == "" || item.Path[0] == '[' {
			continue
		}

		fm, ok := byPath[item.Path]
		if !ok {
			if item.Offset != 0 {
				continue
			}
			fm = &FileMapping{Path: item.Path, Start: item.Address, End: item.End()}
			byPath[item.Path] = fm
			order = append(order, item.Path)
			continue
		}

		if item.Offset == 0 && item.Address < fm.Start {
			fm.Start = item.Address
		}
		if item.End() > fm.End {
			fm.End = item.End()
		}
	}

	result := make([]FileMapping, 0, len(order))
	for _, path := range order {
		result = append(result, *byPath[path])
	}
	return result
}
