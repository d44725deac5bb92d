package splitter

// State codes are the game's own values, compared verbatim.

// Reset fires when the state leaves 0 for 4 or 5
func Reset(w *WatcherSet, s Settings) bool {
	state, ok := w.State.Pair()
	if !ok {
		return false
	}
	return s.Reset && state.Old == 0 &&
		(state.Current == 4 || state.Current == 5)
}

// Start fires when a new game or new game plus begins
func Start(w *WatcherSet, s Settings) bool {
	state, ok := w.State.Pair()
	if !ok {
		return false
	}
	start, ok := w.StartIndicator.Pair()
	if !ok {
		return false
	}
	zoneSelect, ok := w.ZoneSelectOnGameComplete.Pair()
	if !ok {
		return false
	}

	startedSaveFile := state.Old == 5 && state.Current == 7
	startedNoSaveFile := state.Current == 4 && start.Changed() && start.Current == 1
	startedNewGamePlus := state.Current == 6 && start.Changed() && start.Current == 1 &&
		zoneSelect.Current == 0

	return (s.StartCleanSave && (startedSaveFile || startedNoSaveFile)) ||
		(s.StartNewGamePlus && startedNewGamePlus)
}

// Split fires on entering the act that directly follows the previous one,
// if the previous act's setting is on. A change to ActDefault, which is
// what the ending decodes to, is the final split and uses death_egg.
func Split(w *WatcherSet, s Settings) bool {
	act, ok := w.Act.Pair()
	if !ok {
		return false
	}

	switch act.Current {
	case EmeraldHill1:
		return false
	case ActDefault:
		return s.DeathEgg && act.Changed()
	default:
		prev := act.Current - 1
		return act.Old == prev && s.SplitAfter(prev)
	}
}
