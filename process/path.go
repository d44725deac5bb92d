package process

import (
	"fmt"
)

// ResolvePointerPath32 walks a chain of 32-bit pointers and returns the final address.
// It starts at base, adds the first offset, reads a pointer, adds the next offset, reads a pointer, etc.
// The last offset is added to the final pointer without dereferencing it.
// If offsets is empty, base is returned unchanged.
//
// Example:
//
//	// read32(read32(base + 0x164) + 8) + 0x9D8
//	addr, err := process.ResolvePointerPath32(proc, base, 0x164, 8, 0x9D8)
func ResolvePointerPath32(r MemoryReader, base ProcessMemoryAddress, offsets ...ProcessMemorySize) (ProcessMemoryAddress, error) {
	if len(offsets) == 0 {
		return base, nil
	}

	current := base

	// Deref each offset except the last
	for i := 0; i < len(offsets)-1; i++ {
		ptrAddr := current.Add(offsets[i])

		ptr, err := ReadPOINTER32(r, ptrAddr)
		if err != nil {
			return 0, fmt.Errorf("pointer path step %d (%s + 0x%X): %w", i, current.ToString(), uint(offsets[i]), err)
		}

		current = ptr
	}

	return current.Add(offsets[len(offsets)-1]), nil
}
