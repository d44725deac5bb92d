package splitter

import (
	"errors"
	"fmt"
)

var ErrUnknownSetting = errors.New("unknown setting")

// Settings are the user toggles read by the rules every tick.
// Each act flag enables the split taken when leaving that act.
type Settings struct {
	StartCleanSave   bool `yaml:"start_clean_save"`
	StartNewGamePlus bool `yaml:"start_new_game_plus"`
	Reset            bool `yaml:"reset"`

	EmeraldHill1   bool `yaml:"emerald_hill_1"`
	EmeraldHill2   bool `yaml:"emerald_hill_2"`
	ChemicalPlant1 bool `yaml:"chemical_plant_1"`
	ChemicalPlant2 bool `yaml:"chemical_plant_2"`
	AquaticRuin1   bool `yaml:"aquatic_ruin_1"`
	AquaticRuin2   bool `yaml:"aquatic_ruin_2"`
	CasinoNight1   bool `yaml:"casino_night_1"`
	CasinoNight2   bool `yaml:"casino_night_2"`
	HillTop1       bool `yaml:"hill_top_1"`
	HillTop2       bool `yaml:"hill_top_2"`
	MysticCave1    bool `yaml:"mystic_cave_1"`
	MysticCave2    bool `yaml:"mystic_cave_2"`
	OilOcean1      bool `yaml:"oil_ocean_1"`
	OilOcean2      bool `yaml:"oil_ocean_2"`
	Metropolis1    bool `yaml:"metropolis_1"`
	Metropolis2    bool `yaml:"metropolis_2"`
	Metropolis3    bool `yaml:"metropolis_3"`
	SkyChase       bool `yaml:"sky_chase"`
	WingFortress   bool `yaml:"wing_fortress"`
	DeathEgg       bool `yaml:"death_egg"`
}

// Option describes one setting for listings and flag parsing
type Option struct {
	Key   string
	Label string
	field func(*Settings) *bool
}

var options = []Option{
	{"start_clean_save", "Start --> New Game", func(s *Settings) *bool { return &s.StartCleanSave }},
	{"start_new_game_plus", "Start --> New Game+", func(s *Settings) *bool { return &s.StartNewGamePlus }},
	{"reset", "Reset --> Enable automatic reset", func(s *Settings) *bool { return &s.Reset }},
	{"emerald_hill_1", "Emerald Hill Zone - Act 1", func(s *Settings) *bool { return &s.EmeraldHill1 }},
	{"emerald_hill_2", "Emerald Hill Zone - Act 2", func(s *Settings) *bool { return &s.EmeraldHill2 }},
	{"chemical_plant_1", "Chemical Plant Zone - Act 1", func(s *Settings) *bool { return &s.ChemicalPlant1 }},
	{"chemical_plant_2", "Chemical Plant Zone - Act 2", func(s *Settings) *bool { return &s.ChemicalPlant2 }},
	{"aquatic_ruin_1", "Aquatic Ruin Zone - Act 1", func(s *Settings) *bool { return &s.AquaticRuin1 }},
	{"aquatic_ruin_2", "Aquatic Ruin Zone - Act 2", func(s *Settings) *bool { return &s.AquaticRuin2 }},
	{"casino_night_1", "Casino Night Zone - Act 1", func(s *Settings) *bool { return &s.CasinoNight1 }},
	{"casino_night_2", "Casino Night Zone - Act 2", func(s *Settings) *bool { return &s.CasinoNight2 }},
	{"hill_top_1", "Hill Top Zone - Act 1", func(s *Settings) *bool { return &s.HillTop1 }},
	{"hill_top_2", "Hill Top Zone - Act 2", func(s *Settings) *bool { return &s.HillTop2 }},
	{"mystic_cave_1", "Mystic Cave Zone - Act 1", func(s *Settings) *bool { return &s.MysticCave1 }},
	{"mystic_cave_2", "Mystic Cave Zone - Act 2", func(s *Settings) *bool { return &s.MysticCave2 }},
	{"oil_ocean_1", "Oil Ocean Zone - Act 1", func(s *Settings) *bool { return &s.OilOcean1 }},
	{"oil_ocean_2", "Oil Ocean Zone - Act 2", func(s *Settings) *bool { return &s.OilOcean2 }},
	{"metropolis_1", "Metropolis Zone - Act 1", func(s *Settings) *bool { return &s.Metropolis1 }},
	{"metropolis_2", "Metropolis Zone - Act 2", func(s *Settings) *bool { return &s.Metropolis2 }},
	{"metropolis_3", "Metropolis Zone - Act 3", func(s *Settings) *bool { return &s.Metropolis3 }},
	{"sky_chase", "Sky Chase Zone", func(s *Settings) *bool { return &s.SkyChase }},
	{"wing_fortress", "Wing Fortress Zone", func(s *Settings) *bool { return &s.WingFortress }},
	{"death_egg", "Death Egg Zone", func(s *Settings) *bool { return &s.DeathEgg }},
}

// actOptionStart is the index of emerald_hill_1; act options follow in Act order
const actOptionStart = 3

// DefaultSettings has every toggle on
func DefaultSettings() Settings {
	var s Settings
	for _, o := range options {
		*o.field(&s) = true
	}
	return s
}

// Options lists every setting in display order
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

func lookup(key string) (Option, error) {
	for _, o := range options {
		if o.Key == key {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("%q: %w", key, ErrUnknownSetting)
}

func (s *Settings) Get(key string) (bool, error) {
	o, err := lookup(key)
	if err != nil {
		return false, err
	}
	return *o.field(s), nil
}

func (s *Settings) Set(key string, v bool) error {
	o, err := lookup(key)
	if err != nil {
		return err
	}
	*o.field(s) = v
	return nil
}

// SplitAfter reports whether leaving a splits
func (s *Settings) SplitAfter(a Act) bool {
	if !a.IsStage() {
		return false
	}
	return *options[actOptionStart+int(a)].field(s)
}
