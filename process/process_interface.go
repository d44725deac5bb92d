package process

import (
	"s2autosplit/process/memory_map"
)

// MemoryReader reads raw bytes from an address space
type MemoryReader interface {
	// ReadMemory reads exactly size bytes at addr or fails
	ReadMemory(addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error)
}

// Process is the interface that defines read-only operations on an attached process.
// Nothing in this module ever writes to the target.
type Process interface {
	MemoryReader

	// Close closes the process and releases resources
	Close() error

	// GetPID returns the process ID
	GetPID() ProcessID

	// IsOpen reports whether the handle still refers to a live process
	IsOpen() bool

	// UpdateMemoryMap refreshes the memory map for the process
	UpdateMemoryMap() error

	// IsValidAddress checks if the given memory address is valid and readable
	IsValidAddress(addr ProcessMemoryAddress) bool

	// GetMemoryMap returns a copy of the current memory map
	GetMemoryMap() ([]memory_map.MemoryMapItem, error)

	// Modules lists the images loaded into the process
	Modules() ([]Module, error)
}

// Opener opens a live process by PID
type Opener func(pid ProcessID) (Process, error)
