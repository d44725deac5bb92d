package process

import (
	"fmt"
)

// ProcessMemoryAddress represents a memory address within a process
type ProcessMemoryAddress uint64

func (pma ProcessMemoryAddress) ToString() string {
	return fmt.Sprintf("0x%X", uint64(pma))
}

// Add returns the address offset by the given size
func (pma ProcessMemoryAddress) Add(offset ProcessMemorySize) ProcessMemoryAddress {
	return pma + ProcessMemoryAddress(offset)
}

// ProcessMemorySize represents a size of memory region
type ProcessMemorySize uint

func (pms ProcessMemorySize) ToString() string {
	return fmt.Sprintf("%d bytes", uint(pms))
}

// Module is an image mapped into the address space of a process
type Module struct {
	Name string               // Base file name, e.g. "Sonic2Absolute.exe"
	Path string               // Full path as reported by the OS
	Base ProcessMemoryAddress // Load address of the image
	Size ProcessMemorySize    // Mapped extent as reported by the OS, 0 if unknown
}

func (m Module) String() string {
	return fmt.Sprintf("%s@%s+0x%X", m.Name, m.Base.ToString(), uint(m.Size))
}
