package process

import (
	"fmt"
	"strings"
)

// FindModule returns the first loaded module whose name matches any of names, ignoring case.
func FindModule(proc Process, names ...string) (Module, error) {
	modules, err := proc.Modules()
	if err != nil {
		return Module{}, fmt.Errorf("list modules: %w", err)
	}

	for _, name := range names {
		for _, m := range modules {
			if strings.EqualFold(m.Name, name) {
				return m, nil
			}
		}
	}

	return Module{}, fmt.Errorf("%v: %w", names, ErrModuleNotFound)
}

// ModuleRange locates the named module and returns its base address and image size.
// The size always comes from the PE header of the mapped image, since the extent
// the OS reports may only cover the headers (Wine maps sections separately).
func ModuleRange(proc Process, names ...string) (ProcessMemoryAddress, ProcessMemorySize, error) {
	m, err := FindModule(proc, names...)
	if err != nil {
		return 0, 0, err
	}

	size, err := SizeOfImage(proc, m.Base)
	if err != nil {
		return 0, 0, fmt.Errorf("module %s: %w", m.Name, err)
	}

	return m.Base, size, nil
}
