// Package boot validates and identifies the bootstrap program that runs
// before the cartridge. The bootstrap is optional: without one the CPU
// starts directly at the cartridge entry point.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the size of a bootstrap program. It occupies 0x0000-0x00FF,
// ending right where the cartridge entry point begins.
const Size = 0x100

// ErrInvalidSize is returned when a bootstrap is not exactly Size bytes.
var ErrInvalidSize = errors.New("boot: invalid boot rom size")

// ROM is a bootstrap program, placed at 0x0000 ahead of the cartridge.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom
}

// LoadBootROM validates b and returns it as a ROM. The MD5 checksum is
// computed up front so the ROM can be identified against known dumps.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrInvalidSize, len(b), Size)
	}

	sum := md5.Sum(b)
	return &ROM{
		raw:      append([]byte(nil), b...),
		checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Bytes returns the program.
func (b *ROM) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.raw
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom. The model
// is determined by the checksum of the boot rom.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// Known reports whether the boot rom matches a known dump.
func (b *ROM) Known() bool {
	if b == nil {
		return false
	}
	_, ok := knownBootROMChecksums[b.checksum]
	return ok
}

// knownBootROMChecksums maps the checksum of the known 256 byte
// bootstraps to the model they shipped with.
var knownBootROMChecksums = map[string]string{
	DMG0:         "Game Boy (DMG-0)",
	DMG:          "Game Boy (DMG-01)",
	MGB:          "Game Boy Pocket",
	SGB:          "Super Game Boy",
	SGB2:         "Super Game Boy 2",
	FORTUNE:      "Fortune/Bitman 3000B",
	GAME_FIGHTER: "Game Fighter",
	MAX_STATION:  "Max Station",
}

const (
	// DMG0 is the early DMG bootstrap, only sold in Japan. On a bad
	// header it flashes the screen instead of hanging.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the bootstrap of the original DMG-01.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by a single byte, loading 0xFF into A
	// instead of 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB hands the cartridge header to the SNES instead of
	// scrolling the logo.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 is to SGB what MGB is to DMG.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
	// FORTUNE is found in the Fortune/Bitman 3000B clone.
	FORTUNE = "92ed4eca17d61fcd53f8a64c3ce84743"
	// GAME_FIGHTER is found in the Game Fighter clone.
	GAME_FIGHTER = "6a7b8ee12a793f66a969c6a2b8926cc9"
	// MAX_STATION is found in the Maxstation clone.
	MAX_STATION = "77a7021db824010a678791f6d062943d"
)
