package splitter

import "fmt"

// Act is a stage of the game in play order. ActDefault stands for anything
// that is not a stage: the ending, unknown level ids and never sampled.
type Act uint8

const (
	EmeraldHill1 Act = iota
	EmeraldHill2
	ChemicalPlant1
	ChemicalPlant2
	AquaticRuin1
	AquaticRuin2
	CasinoNight1
	CasinoNight2
	HillTop1
	HillTop2
	MysticCave1
	MysticCave2
	OilOcean1
	OilOcean2
	Metropolis1
	Metropolis2
	Metropolis3
	SkyChase
	WingFortress
	DeathEgg
	ActDefault
)

// ActCount is the number of playable stages
const ActCount = int(ActDefault)

var actNames = [...]string{
	EmeraldHill1:   "EmeraldHill1",
	EmeraldHill2:   "EmeraldHill2",
	ChemicalPlant1: "ChemicalPlant1",
	ChemicalPlant2: "ChemicalPlant2",
	AquaticRuin1:   "AquaticRuin1",
	AquaticRuin2:   "AquaticRuin2",
	CasinoNight1:   "CasinoNight1",
	CasinoNight2:   "CasinoNight2",
	HillTop1:       "HillTop1",
	HillTop2:       "HillTop2",
	MysticCave1:    "MysticCave1",
	MysticCave2:    "MysticCave2",
	OilOcean1:      "OilOcean1",
	OilOcean2:      "OilOcean2",
	Metropolis1:    "Metropolis1",
	Metropolis2:    "Metropolis2",
	Metropolis3:    "Metropolis3",
	SkyChase:       "SkyChase",
	WingFortress:   "WingFortress",
	DeathEgg:       "DeathEgg",
	ActDefault:     "Default",
}

func (a Act) String() string {
	if int(a) < len(actNames) {
		return actNames[a]
	}
	return fmt.Sprintf("Act(%d)", uint8(a))
}

// IsStage is false only for ActDefault and out of range values
func (a Act) IsStage() bool {
	return a < ActDefault
}

// DecodeAct maps the raw level id byte to an Act
func DecodeAct(raw uint8) Act {
	if raw < uint8(ActDefault) {
		return Act(raw)
	}
	return ActDefault
}
