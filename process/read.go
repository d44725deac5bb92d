package process

import (
	"encoding/binary"
	"fmt"
)

// PointerSize32 is the width of a pointer inside a 32-bit target, which is
// what every pointer read in this module assumes regardless of the host.
const PointerSize32 = 4

// ReadUINT8 reads an unsigned 8-bit integer from the specified address
func ReadUINT8(r MemoryReader, addr ProcessMemoryAddress) (uint8, error) {
	data, err := readExact(r, addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadUINT16 reads a little-endian unsigned 16-bit integer from the specified address
func ReadUINT16(r MemoryReader, addr ProcessMemoryAddress) (uint16, error) {
	data, err := readExact(r, addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadUINT32 reads a little-endian unsigned 32-bit integer from the specified address
func ReadUINT32(r MemoryReader, addr ProcessMemoryAddress) (uint32, error) {
	data, err := readExact(r, addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadPOINTER32 reads a 4-byte pointer from the specified address.
// A null pointer is reported as ErrInvalidPointer.
func ReadPOINTER32(r MemoryReader, addr ProcessMemoryAddress) (ProcessMemoryAddress, error) {
	v, err := ReadUINT32(r, addr)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("null pointer at %s: %w", addr.ToString(), ErrInvalidPointer)
	}
	return ProcessMemoryAddress(v), nil
}

func readExact(r MemoryReader, addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error) {
	data, err := r.ReadMemory(addr, size)
	if err != nil {
		return nil, err
	}
	if len(data) < int(size) {
		return nil, fmt.Errorf("read %d of %d bytes at %s: %w", len(data), size, addr.ToString(), ErrPartialRead)
	}
	return data, nil
}
