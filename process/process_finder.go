package process

// ProcessFinder defines operations for discovering processes
type ProcessFinder interface {
	// FindProcessByName returns the lowest-PID process whose name matches
	// any of names (case-insensitive), or ErrProcessNotFound
	FindProcessByName(names ...string) (*ProcessInfo, error)

	// IsRunning reports whether a process with the given PID still exists
	IsRunning(pid ProcessID) bool
}
