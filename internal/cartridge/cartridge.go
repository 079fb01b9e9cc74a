// Package cartridge wraps the image loaded ahead of execution. The image
// is placed on the bus as is: there is no banking, and the header is only
// parsed to describe and sanity check what is being run.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/hashicorp/go-multierror"
)

var (
	// ErrEmpty is returned when creating a Cartridge from no data.
	ErrEmpty = errors.New("cartridge: empty image")

	// the following are collected by Validate
	ErrNoHeader       = errors.New("cartridge: image too small to hold a header")
	ErrLogo           = errors.New("cartridge: logo does not match")
	ErrHeaderChecksum = errors.New("cartridge: header checksum mismatch")
	ErrGlobalChecksum = errors.New("cartridge: global checksum mismatch")
	ErrROMSize        = errors.New("cartridge: image size does not match header")
)

// Cartridge is an image ready to be placed on the bus.
type Cartridge struct {
	rom    []byte
	header *Header
	hash   uint64
}

// New wraps rom in a Cartridge. Images large enough to hold a header
// have it parsed, smaller images are accepted as raw programs.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) == 0 {
		return nil, ErrEmpty
	}
	c := &Cartridge{
		rom:  rom,
		hash: xxhash.Sum64(rom),
	}
	if len(rom) >= HeaderEnd {
		header, err := parseHeader(rom[HeaderStart:HeaderEnd])
		if err != nil {
			return nil, err
		}
		c.header = header
	}
	return c, nil
}

// Bytes returns the image.
func (c *Cartridge) Bytes() []byte {
	return c.rom
}

// Len returns the size of the image in bytes.
func (c *Cartridge) Len() int {
	return len(c.rom)
}

// Header returns the parsed header, or nil if the image is too small to
// hold one.
func (c *Cartridge) Header() *Header {
	return c.header
}

// Title returns the title from the header, if there is one.
func (c *Cartridge) Title() string {
	if c.header == nil {
		return ""
	}
	return c.header.Title
}

// Hash returns the xxhash of the image. It identifies the image that a
// save state belongs to.
func (c *Cartridge) Hash() uint64 {
	return c.hash
}

// Validate checks the header against the image, returning every problem
// found. None of the problems prevent the image from running.
func (c *Cartridge) Validate() error {
	if c.header == nil {
		return ErrNoHeader
	}

	var result *multierror.Error
	if !c.header.logo {
		result = multierror.Append(result, ErrLogo)
	}
	if sum := headerChecksum(c.rom); sum != c.header.HeaderChecksum {
		result = multierror.Append(result, fmt.Errorf("%w: computed 0x%02X, header has 0x%02X", ErrHeaderChecksum, sum, c.header.HeaderChecksum))
	}
	if sum := globalChecksum(c.rom); sum != c.header.GlobalChecksum {
		result = multierror.Append(result, fmt.Errorf("%w: computed 0x%04X, header has 0x%04X", ErrGlobalChecksum, sum, c.header.GlobalChecksum))
	}
	if uint(len(c.rom)) != c.header.ROMSize {
		result = multierror.Append(result, fmt.Errorf("%w: %d bytes, header declares %d", ErrROMSize, len(c.rom), c.header.ROMSize))
	}
	return result.ErrorOrNil()
}

func (c *Cartridge) String() string {
	if c.header == nil {
		return fmt.Sprintf("raw program (%d bytes, xxhash %016x)", len(c.rom), c.hash)
	}
	return fmt.Sprintf("%s (%d bytes, xxhash %016x)", c.header, len(c.rom), c.hash)
}
