//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"unsafe"

	"s2autosplit/process"

	"golang.org/x/sys/unix"
)

// process_vm_readv uses the process_vm_readv syscall to read memory from another process
func process_vm_readv(
	pid process.ProcessID,
	remoteAddr process.ProcessMemoryAddress,
	bytesToRead process.ProcessMemorySize,
) ([]byte, error) {
	localBuf := make([]byte, bytesToRead)

	localIov := unix.Iovec{
		Base: &localBuf[0],
		Len:  uint64(bytesToRead),
	}

	remoteIov := unix.RemoteIovec{
		Base: uintptr(remoteAddr),
		Len:  int(bytesToRead),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_READV,
		uintptr(pid),                        // Remote process PID
		uintptr(unsafe.Pointer(&localIov)),  // Local iovec
		uintptr(1),                          // Number of local iovecs
		uintptr(unsafe.Pointer(&remoteIov)), // Remote iovec
		uintptr(1),                          // Number of remote iovecs
		uintptr(0),                          // Flags (reserved for future use)
	)

	if errno != 0 {
		return nil, errno
	}

	if int(n) != int(bytesToRead) {
		return localBuf[:n], fmt.Errorf("%d of %d bytes: %w", n, bytesToRead, process.ErrPartialRead)
	}

	return localBuf, nil
}

// ReadMemory reads memory from the process at the specified address.
// It never blocks beyond the syscall itself: the cached memory map is not
// consulted, so regions mapped after Open are readable without a refresh.
func (p *LinuxProcess) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	pid := p.GetPID()
	if pid == 0 {
		return nil, process.ErrProcessNotOpen
	}

	if size == 0 {
		return []byte{}, nil
	}

	if addr <= 0x10000 {
		return nil, process.ErrAddressNotMapped
	}

	data, err := process_vm_readv(pid, addr, size)
	if err != nil {
		switch {
		case errors.Is(err, unix.ESRCH):
			return nil, fmt.Errorf("process_vm_readv pid %d: %w", pid, process.ErrProcessNotOpen)
		case errors.Is(err, unix.EFAULT):
			return nil, fmt.Errorf("process_vm_readv at %s: %w", addr.ToString(), process.ErrAddressNotMapped)
		}
		return nil, fmt.Errorf("process_vm_readv: failed to read process memory at %s: %w", addr.ToString(), err)
	}

	return data, nil
}
