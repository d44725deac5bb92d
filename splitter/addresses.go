package splitter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"s2autosplit/process"
	"s2autosplit/signature"

	"github.com/Moonlight-Companies/gologger/logger"
)

var (
	// SaveDataSignature precedes the pointer to the per-save-slot data block
	SaveDataSignature = signature.MustParse("3D ???????? 0F 87 ???????? FF 24 85 ???????? A1")

	// ZoneIndicatorSignature precedes the pointer to the zone tag
	ZoneIndicatorSignature = signature.MustParse("69 F8 ?? ?? ?? ?? B8 ?? ?? ?? ??")
)

const (
	saveDataPointerOffset      = 14
	zoneIndicatorPointerOffset = 7
)

// Pointer chains from the save data block: read32(read32(base+o1)+o2)+o3
var (
	statePath                    = []process.ProcessMemorySize{0x4 * 89, 8, 0x9D8}
	levelIDPath                  = []process.ProcessMemorySize{0x4 * 123, 1, 0}
	startIndicatorPath           = []process.ProcessMemorySize{0x4 * 30, 8, 0x9D8}
	zoneSelectOnGameCompletePath = []process.ProcessMemorySize{0x4 * 91, 8, 0x9D8}
)

// DefaultRetryInterval is the pause between discovery attempts
const DefaultRetryInterval = 500 * time.Millisecond

// AddressTable holds the addresses of the sampled fields. It is only valid
// for the attachment it was built on.
type AddressTable struct {
	State                    process.ProcessMemoryAddress
	LevelID                  process.ProcessMemoryAddress
	StartIndicator           process.ProcessMemoryAddress
	ZoneSelectOnGameComplete process.ProcessMemoryAddress
	ZoneIndicator            process.ProcessMemoryAddress
}

func (t AddressTable) String() string {
	return fmt.Sprintf("state=%s levelid=%s startindicator=%s zoneselectongamecomplete=%s zoneindicator=%s",
		t.State.ToString(), t.LevelID.ToString(), t.StartIndicator.ToString(),
		t.ZoneSelectOnGameComplete.ToString(), t.ZoneIndicator.ToString())
}

// SignatureHits are the match addresses found while building a table
type SignatureHits struct {
	SaveData      process.ProcessMemoryAddress
	ZoneIndicator process.ProcessMemoryAddress
}

// BuildAddressTable makes one discovery attempt against proc: locate the
// main module, scan it for both signatures and resolve every pointer chain.
// Nothing is kept from a failed attempt.
func BuildAddressTable(proc process.Process, moduleNames ...string) (AddressTable, error) {
	table, _, err := buildAddressTable(proc, moduleNames)
	return table, err
}

func buildAddressTable(proc process.Process, moduleNames []string) (AddressTable, SignatureHits, error) {
	var hits SignatureHits

	if len(moduleNames) == 0 {
		moduleNames = DefaultProcessNames
	}

	base, size, err := process.ModuleRange(proc, moduleNames...)
	if err != nil {
		return AddressTable{}, hits, classify(ErrScanFailed, err, "main module")
	}

	hits.SaveData, err = signature.ScanRange(proc, SaveDataSignature, base, size)
	if err != nil {
		return AddressTable{}, hits, classify(ErrScanFailed, err, "save data signature")
	}

	saveData, err := process.ReadPOINTER32(proc, hits.SaveData.Add(saveDataPointerOffset))
	if err != nil {
		return AddressTable{}, hits, classify(ErrPointerUnresolved, err, "save data pointer")
	}

	var table AddressTable
	fields := []struct {
		name string
		path []process.ProcessMemorySize
		dst  *process.ProcessMemoryAddress
	}{
		{"state", statePath, &table.State},
		{"levelid", levelIDPath, &table.LevelID},
		{"startindicator", startIndicatorPath, &table.StartIndicator},
		{"zoneselectongamecomplete", zoneSelectOnGameCompletePath, &table.ZoneSelectOnGameComplete},
	}
	for _, f := range fields {
		addr, err := process.ResolvePointerPath32(proc, saveData, f.path...)
		if err != nil {
			return AddressTable{}, hits, classify(ErrPointerUnresolved, err, "%s", f.name)
		}
		*f.dst = addr
	}

	hits.ZoneIndicator, err = signature.ScanRange(proc, ZoneIndicatorSignature, base, size)
	if err != nil {
		return AddressTable{}, hits, classify(ErrScanFailed, err, "zone indicator signature")
	}

	table.ZoneIndicator, err = process.ReadPOINTER32(proc, hits.ZoneIndicator.Add(zoneIndicatorPointerOffset))
	if err != nil {
		return AddressTable{}, hits, classify(ErrPointerUnresolved, err, "zone indicator pointer")
	}

	return table, hits, nil
}

// Discovery is the outcome of a successful Discover
type Discovery struct {
	Table    AddressTable
	Hits     SignatureHits
	Attempts int
}

// Discover retries BuildAddressTable until it succeeds, the process goes
// away or ctx is done. The game fills in its pointers while it boots, so
// early attempts failing is normal.
func Discover(ctx context.Context, proc process.Process, moduleNames []string, retry time.Duration, log *logger.Logger) (Discovery, error) {
	if retry <= 0 {
		retry = DefaultRetryInterval
	}
	if log == nil {
		log = newLogger("discovery")
	}

	wait := time.NewTimer(0)
	defer wait.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return Discovery{}, ctx.Err()
		case <-wait.C:
		}

		if !proc.IsOpen() {
			return Discovery{}, fmt.Errorf("discovery: %w", ErrProcessLost)
		}

		table, hits, err := buildAddressTable(proc, moduleNames)
		if err == nil {
			log.Infoln("Addresses found after", attempt, "attempts:", table.String())
			return Discovery{Table: table, Hits: hits, Attempts: attempt}, nil
		}
		if errors.Is(err, ErrProcessLost) {
			return Discovery{}, err
		}

		if attempt%20 == 0 {
			log.Infoln("Still waiting for the game to initialize, attempt", attempt, ":", err)
		} else {
			log.Debugln("Discovery attempt", attempt, "failed:", err)
		}

		wait.Reset(retry)
	}
}
