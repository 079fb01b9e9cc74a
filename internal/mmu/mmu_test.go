package mmu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/kemu/internal/types"
)

func TestMMU_ReadWrite(t *testing.T) {
	m := NewMMU()
	require.Equal(t, types.AddressSpace, m.Size())

	require.NoError(t, m.Write(0xC000, 0x42))
	v, err := m.Read(0xC000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), v)

	// the last byte of the address space is addressable
	require.NoError(t, m.Write(0xFFFF, 0x99))
	assert.Equal(t, uint8(0x99), m.Get(0xFFFF))
}

func TestMMU_LittleEndian(t *testing.T) {
	m := NewMMU()

	require.NoError(t, m.Write16(0xC000, 0xBEEF))
	assert.Equal(t, uint8(0xEF), m.Get(0xC000), "low byte must be stored at the lower address")
	assert.Equal(t, uint8(0xBE), m.Get(0xC001), "high byte must be stored at the higher address")

	require.NoError(t, m.Write(0xD000, 0x34))
	require.NoError(t, m.Write(0xD001, 0x12))
	v, err := m.Read16(0xD000)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)
}

func TestMMU_Faults(t *testing.T) {
	m := NewMMUWithSize(0xFFFF) // the last address is not addressable

	_, err := m.Read(0xFFFF)
	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, uint32(0xFFFF), fault.Address)
	assert.Equal(t, AccessRead, fault.Access)

	err = m.Write(0xFFFF, 0x01)
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, AccessWrite, fault.Access)

	// 16-bit accesses straddling the end fault on the high byte
	_, err = m.Read16(0xFFFE)
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, uint32(0xFFFF), fault.Address)

	err = m.Write16(0xFFFE, 0x1234)
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, uint8(0x00), m.Get(0xFFFE), "a faulting write must not store the low byte")

	// and never wrap to 0x0000 at the end of a full address space
	full := NewMMU()
	_, err = full.Read16(0xFFFF)
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, uint32(0x10000), fault.Address)
	assert.Error(t, full.Write16(0xFFFF, 0x1234))
	assert.Equal(t, uint8(0x00), full.Get(0x0000))
}

func TestMMU_LoadRegion(t *testing.T) {
	m := NewMMU()
	require.NoError(t, m.LoadRegion(0x0100, []byte{0xC3, 0x50, 0x01}))
	assert.Equal(t, uint8(0xC3), m.Get(0x0100))
	assert.Equal(t, uint8(0x01), m.Get(0x0102))

	require.NoError(t, m.LoadRegion(0xFFFE, []byte{1, 2}))
	assert.Error(t, m.LoadRegion(0xFFFE, []byte{1, 2, 3}))
}

func TestMMU_ReserveAddress(t *testing.T) {
	m := NewMMU()
	var seen []uint8
	m.ReserveAddress(types.SC, func(v uint8) uint8 {
		seen = append(seen, v)
		return v & 0x7F
	})

	require.NoError(t, m.Write(types.SC, 0x81))
	assert.Equal(t, []uint8{0x81}, seen)
	assert.Equal(t, uint8(0x01), m.Get(types.SC))

	// LoadRegion bypasses hooks
	require.NoError(t, m.LoadRegion(types.SC, []byte{0x81}))
	assert.Len(t, seen, 1)
}

func TestMMU_State(t *testing.T) {
	m := NewMMU()
	require.NoError(t, m.Write(0x1234, 0x56))

	s := types.NewState()
	m.Save(s)

	restored := NewMMU()
	restored.Load(types.StateFromBytes(s.Bytes()))
	assert.Equal(t, uint8(0x56), restored.Get(0x1234))
}
