package process_blob

import (
	"fmt"

	"s2autosplit/process"
)

var _ process.MemoryReader = (*ProcessBlob)(nil)

// ProcessBlob is a contiguous copy of process memory starting at a base address
type ProcessBlob struct {
	baseaddress process.ProcessMemoryAddress
	data        []byte
}

func NewProcessBlob(baseAddress process.ProcessMemoryAddress, data []byte) *ProcessBlob {
	return &ProcessBlob{
		baseaddress: baseAddress,
		data:        data,
	}
}

func (p *ProcessBlob) Base() process.ProcessMemoryAddress {
	return p.baseaddress
}

func (p *ProcessBlob) Data() []byte {
	return p.data
}

func (p *ProcessBlob) Size() process.ProcessMemorySize {
	return process.ProcessMemorySize(len(p.data))
}

// Contains reports whether [addr, addr+size) lies inside the blob
func (p *ProcessBlob) Contains(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) bool {
	if addr < p.baseaddress {
		return false
	}
	offset := uint64(addr - p.baseaddress)
	return offset+uint64(size) <= uint64(len(p.data))
}

// ReadMemory returns a copy so that callers cannot alter the blob
func (p *ProcessBlob) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	if !p.Contains(addr, size) {
		return nil, fmt.Errorf("%s+%d outside blob %s+%d: %w",
			addr.ToString(), size, p.baseaddress.ToString(), len(p.data), process.ErrAddressNotMapped)
	}
	offset := uint64(addr - p.baseaddress)
	out := make([]byte, size)
	copy(out, p.data[offset:offset+uint64(size)])
	return out, nil
}
