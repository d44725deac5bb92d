// Package process provides interfaces and types for reading the memory of
// another process
package process

import "errors"

// The OS specific implementations live in process_linux and
// process_windows; process_blob provides in-memory images and dumps.

var (
	// ErrAddressNotMapped is returned when a memory address is not found within any mapped region of a process.
	ErrAddressNotMapped = errors.New("address not mapped")

	// ErrProcessNotOpen is returned when an operation requiring an open process is attempted
	// before the process has been successfully opened or after it has exited.
	ErrProcessNotOpen = errors.New("process not open")

	ErrInvalidPointer = errors.New("invalid pointer read")

	ErrPartialRead = errors.New("partial read")

	// ErrModuleNotFound is returned when no module with a requested name is loaded.
	ErrModuleNotFound = errors.New("module not found")

	ErrProcessNotFound = errors.New("process not found")

	ErrInvalidImage = errors.New("invalid PE image")
)
