package signature

import (
	"errors"
	"fmt"

	"s2autosplit/process"
)

// ChunkSize is how much of the range is read per call: one page, since image
// sections are mapped with page granularity. Chunks overlap by one signature
// length so that a match spanning two pages is still found.
const ChunkSize = 0x1000

// ScanRange reads [base, base+size) from r and returns the address of the
// first match. Chunks that cannot be read (unmapped gaps between image
// sections) are skipped. A closed process aborts the scan.
func ScanRange(r process.MemoryReader, sig Signature, base process.ProcessMemoryAddress, size process.ProcessMemorySize) (process.ProcessMemoryAddress, error) {
	n := process.ProcessMemorySize(sig.Len())
	if n == 0 {
		return 0, ErrEmptySignature
	}
	if size < n {
		return 0, fmt.Errorf("range of %d bytes shorter than signature: %w", size, ErrNotFound)
	}

	step := process.ProcessMemorySize(ChunkSize)
	if step < n {
		step = n
	}

	for offset := process.ProcessMemorySize(0); offset+n <= size; offset += step {
		length := step + n - 1
		if offset+length > size {
			length = size - offset
		}

		buf, err := r.ReadMemory(base.Add(offset), length)
		if err != nil && length > step {
			// The overlap may run into an unmapped page; retry this chunk alone
			buf, err = r.ReadMemory(base.Add(offset), step)
		}
		if err != nil {
			if errors.Is(err, process.ErrProcessNotOpen) {
				return 0, err
			}
			continue
		}

		if i, ok := sig.Find(buf); ok {
			return base.Add(offset + process.ProcessMemorySize(i)), nil
		}
	}

	return 0, fmt.Errorf("%s in %s+0x%X: %w", sig.String(), base.ToString(), uint(size), ErrNotFound)
}
