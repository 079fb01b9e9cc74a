// Package mmu provides the flat memory bus the CPU executes against. It
// has no banking or translation logic: the address space is a single
// contiguous block of bytes, with optional write hooks for the handful of
// I/O registers the emulator needs to observe.
package mmu

import (
	"github.com/thelolagemann/kemu/internal/types"
	"github.com/thelolagemann/kemu/pkg/log"
)

// WriteHook is called when the CPU writes to a reserved address. The value
// returned is what gets stored on the bus.
type WriteHook func(value uint8) uint8

// MMU is the memory bus of the emulator. Words are stored little-endian,
// with the low byte at the lower address.
type MMU struct {
	raw   []byte
	hooks map[uint16]WriteHook

	Log log.Logger
}

// NewMMU returns an MMU spanning the full 64kB address space.
func NewMMU() *MMU {
	return NewMMUWithSize(types.AddressSpace)
}

// NewMMUWithSize returns an MMU with size addressable bytes. Sizes larger
// than the 16-bit address space are clamped to it.
func NewMMUWithSize(size int) *MMU {
	if size > types.AddressSpace || size <= 0 {
		size = types.AddressSpace
	}
	return &MMU{
		raw:   make([]byte, size),
		hooks: make(map[uint16]WriteHook),
		Log:   log.NewNullLogger(),
	}
}

// Size returns the number of addressable bytes.
func (m *MMU) Size() int {
	return len(m.raw)
}

// ReserveAddress installs a write hook for the given address, replacing
// any hook already installed there.
func (m *MMU) ReserveAddress(address uint16, hook WriteHook) {
	m.hooks[address] = hook
}

func (m *MMU) fault(address uint32, access Access) error {
	return &Fault{Address: address, Access: access, Size: uint32(len(m.raw))}
}

// Read returns the byte at the given address.
func (m *MMU) Read(address uint16) (uint8, error) {
	if int(address) >= len(m.raw) {
		return 0xFF, m.fault(uint32(address), AccessRead)
	}
	return m.raw[address], nil
}

// Write writes value to the given address.
func (m *MMU) Write(address uint16, value uint8) error {
	if int(address) >= len(m.raw) {
		return m.fault(uint32(address), AccessWrite)
	}
	if hook, ok := m.hooks[address]; ok {
		value = hook(value)
	}
	m.raw[address] = value
	return nil
}

// Read16 returns the little-endian word at the given address. Reading the
// high byte past the end of the address space is a fault, it does not wrap
// to 0x0000.
func (m *MMU) Read16(address uint16) (uint16, error) {
	low, err := m.Read(address)
	if err != nil {
		return 0xFFFF, err
	}
	if address == 0xFFFF {
		return 0xFFFF, m.fault(0x10000, AccessRead)
	}
	high, err := m.Read(address + 1)
	if err != nil {
		return 0xFFFF, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// Write16 writes value to the given address, low byte first.
func (m *MMU) Write16(address uint16, value uint16) error {
	if int(address)+1 >= len(m.raw) {
		return m.fault(uint32(address)+1, AccessWrite)
	}
	if err := m.Write(address, uint8(value)); err != nil {
		return err
	}
	return m.Write(address+1, uint8(value>>8))
}

// LoadRegion copies data onto the bus starting at base, bypassing any
// write hooks. The whole region must fit inside the address space.
func (m *MMU) LoadRegion(base uint16, data []byte) error {
	end := int(base) + len(data)
	if end > len(m.raw) {
		return m.fault(uint32(len(m.raw)), AccessWrite)
	}
	copy(m.raw[base:end], data)
	m.Log.Debugf("mmu: loaded %d bytes at 0x%04X-0x%04X", len(data), base, end-1)
	return nil
}

// Get returns the byte at the given address, or 0xFF when out of range.
// It is intended for debugging and tests, and never faults.
func (m *MMU) Get(address uint16) uint8 {
	if int(address) >= len(m.raw) {
		return 0xFF
	}
	return m.raw[address]
}

var _ types.Stater = (*MMU)(nil)

// Save writes the contents of memory to s.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.raw)
}

// Load restores the contents of memory from s. A snapshot of a different
// size replaces the address space with the saved one.
func (m *MMU) Load(s *types.State) {
	data := s.ReadData()
	if s.Err() != nil {
		return
	}
	m.raw = data
}
