package cartridge

import (
	"bytes"
	"fmt"
	"strings"
)

// HeaderStart and HeaderEnd delimit the cartridge header in the image.
const (
	HeaderStart = 0x0100
	HeaderEnd   = 0x0150
)

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}

	// nintendoLogo is the bitmap the bootstrap compares against
	// 0x0104-0x0133 before handing over to the cartridge.
	nintendoLogo = []byte{
		0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
		0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
		0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
		0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
	}
)

type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM: "ROM ONLY", MBC1: "MBC1", MBC1RAM: "MBC1+RAM", MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2: "MBC2", MBC2BATT: "MBC2+BATTERY", ROMRAM: "ROM+RAM", ROMRAMBATT: "ROM+RAM+BATTERY",
	MMM01: "MMM01", MMM01RAM: "MMM01+RAM", MMM01RAMBATT: "MMM01+RAM+BATTERY",
	MBC3TIMERBATT: "MBC3+TIMER+BATTERY", MBC3TIMERRAMBATT: "MBC3+TIMER+RAM+BATTERY",
	MBC3: "MBC3", MBC3RAM: "MBC3+RAM", MBC3RAMBATT: "MBC3+RAM+BATTERY",
	MBC5: "MBC5", MBC5RAM: "MBC5+RAM", MBC5RAMBATT: "MBC5+RAM+BATTERY", MBC5RUMBLE: "MBC5+RUMBLE",
	MBC5RUMBLERAM: "MBC5+RUMBLE+RAM", MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
	POCKETCAMERA: "POCKET CAMERA", BANDAITAMA5: "BANDAI TAMA5", HUDSONHUC3: "HuC3", HUDSONHUC1: "HuC1+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02X)", uint8(t))
}

// Header represents the header of a cartridge, located at 0x0100-0x014F.
// It is informational only: nothing in it changes how the image is placed
// on the bus or executed.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x013F-0x0142 - ManufacturerCode of the game
	ManufacturerCode string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title.
	CartridgeGBMode Flag

	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	CountryCode     uint8
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	logo bool // logo matches the one the bootstrap expects
}

// parseHeader parses the 0x50 byte header of a cartridge.
func parseHeader(header []byte) (*Header, error) {
	if len(header) != HeaderEnd-HeaderStart {
		return nil, fmt.Errorf("cartridge: invalid header length: %d", len(header))
	}
	h := &Header{}

	// parse the mode of the cartridge and parse the header accordingly
	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	title := header[0x34:0x44]
	if h.CartridgeGBMode != FlagOnlyDMG {
		title = header[0x34:0x43]
	}
	h.Title = printable(title)

	h.ManufacturerCode = printable(header[0x3F:0x43])
	h.NewLicenseeCode = printable(header[0x44:0x46])
	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])

	// 32kB x (1 << n)
	if header[0x48] <= 8 {
		h.ROMSize = (32 * 1024) * (1 << header[0x48])
	}
	h.RAMSize = ramMAP[header[0x49]]
	h.CountryCode = header[0x4A]
	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]

	// the global checksum is stored big-endian
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	h.logo = bytes.Equal(header[0x04:0x34], nintendoLogo)
	return h, nil
}

// printable trims the padding from a header string and replaces anything
// that is not printable ASCII.
func printable(b []byte) string {
	s := strings.TrimRight(string(b), "\x00 ")
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7E {
			return '?'
		}
		return r
	}, s)
}

// headerChecksum computes the checksum of 0x0134-0x014C as the bootstrap
// does.
func headerChecksum(rom []byte) uint8 {
	var x uint8
	for _, b := range rom[0x0134:0x014D] {
		x = x - b - 1
	}
	return x
}

// globalChecksum sums every byte of the image except the checksum itself.
func globalChecksum(rom []byte) uint16 {
	var sum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		sum += uint16(b)
	}
	return sum
}

func (h *Header) GameboyColor() bool {
	return h.CartridgeGBMode == FlagOnlyCGB || h.CartridgeGBMode == FlagSupportsCGB
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
