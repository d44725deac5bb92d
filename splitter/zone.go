package splitter

// Zone is the coarse game screen, decoded from a four character tag the
// game keeps in memory
type Zone uint8

const (
	ZoneDefault Zone = iota
	ZoneMainMenu
	ZoneZones
	ZoneEnding
	ZoneSaveSelect
)

// Raw tags as little-endian u32
const (
	TagMainMenu   uint32 = 0x6E69614D // "Main"
	TagZones      uint32 = 0x656E6F5A // "Zone"
	TagEnding     uint32 = 0x69646E45 // "Endi"
	TagSaveSelect uint32 = 0x65766153 // "Save"
)

func (z Zone) String() string {
	switch z {
	case ZoneMainMenu:
		return "MainMenu"
	case ZoneZones:
		return "Zones"
	case ZoneEnding:
		return "Ending"
	case ZoneSaveSelect:
		return "SaveSelect"
	default:
		return "Default"
	}
}

// DecodeZone maps the raw tag to a Zone; unknown tags are ZoneDefault
func DecodeZone(raw uint32) Zone {
	switch raw {
	case TagMainMenu:
		return ZoneMainMenu
	case TagZones:
		return ZoneZones
	case TagEnding:
		return ZoneEnding
	case TagSaveSelect:
		return ZoneSaveSelect
	default:
		return ZoneDefault
	}
}
