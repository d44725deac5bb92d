package splitter

import (
	"fmt"

	"s2autosplit/process"
	"s2autosplit/watcher"
)

// Sample is one tick's worth of raw reads. LevelID is only read, and only
// meaningful, while the zone tag says the player is in a stage.
type Sample struct {
	State                    uint8
	StartIndicator           uint8
	ZoneSelectOnGameComplete uint8
	ZoneIndicator            uint32
	LevelID                  uint8
}

func (s Sample) String() string {
	return fmt.Sprintf("state=%d startindicator=%d zoneselectongamecomplete=%d zone=%s levelid=%d",
		s.State, s.StartIndicator, s.ZoneSelectOnGameComplete, DecodeZone(s.ZoneIndicator), s.LevelID)
}

// ReadSample reads every field of t. It fails as a whole: a sample is
// either complete or not returned.
func ReadSample(r process.MemoryReader, t AddressTable) (Sample, error) {
	var s Sample
	var err error

	if s.State, err = process.ReadUINT8(r, t.State); err != nil {
		return Sample{}, classify(ErrSampleReadFailed, err, "state")
	}
	if s.StartIndicator, err = process.ReadUINT8(r, t.StartIndicator); err != nil {
		return Sample{}, classify(ErrSampleReadFailed, err, "startindicator")
	}
	if s.ZoneSelectOnGameComplete, err = process.ReadUINT8(r, t.ZoneSelectOnGameComplete); err != nil {
		return Sample{}, classify(ErrSampleReadFailed, err, "zoneselectongamecomplete")
	}
	if s.ZoneIndicator, err = process.ReadUINT32(r, t.ZoneIndicator); err != nil {
		return Sample{}, classify(ErrSampleReadFailed, err, "zoneindicator")
	}

	if DecodeZone(s.ZoneIndicator) == ZoneZones {
		if s.LevelID, err = process.ReadUINT8(r, t.LevelID); err != nil {
			return Sample{}, classify(ErrSampleReadFailed, err, "levelid")
		}
	}

	return s, nil
}

// WatcherSet holds the old/current pairs the rules look at. The zero value
// has nothing sampled.
type WatcherSet struct {
	State                    watcher.Watcher[uint8]
	StartIndicator           watcher.Watcher[uint8]
	ZoneSelectOnGameComplete watcher.Watcher[uint8]
	ZoneIndicator            watcher.Watcher[uint32]
	LevelID                  watcher.Watcher[uint8]

	Zone watcher.Watcher[Zone]
	Act  watcher.Watcher[Act]
}

// Apply feeds a complete sample into every watcher and updates the
// decoded zone and act. In menus the act keeps its last value, so leaving
// and re-entering a stage through a menu does not look like a transition.
func (w *WatcherSet) Apply(s Sample) {
	w.State.Update(s.State)
	w.StartIndicator.Update(s.StartIndicator)
	w.ZoneSelectOnGameComplete.Update(s.ZoneSelectOnGameComplete)
	w.ZoneIndicator.Update(s.ZoneIndicator)

	zone := w.Zone.Update(DecodeZone(s.ZoneIndicator)).Current

	switch zone {
	case ZoneZones:
		w.LevelID.Update(s.LevelID)
		w.Act.Update(DecodeAct(s.LevelID))
	case ZoneEnding:
		w.Act.Update(ActDefault)
	default:
		w.Act.Update(w.Act.Current(ActDefault))
	}
}

// Reset forgets every sample
func (w *WatcherSet) Reset() {
	*w = WatcherSet{}
}
