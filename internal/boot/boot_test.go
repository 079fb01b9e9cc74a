package boot

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBootROM(t *testing.T) {
	raw := make([]byte, Size)
	for i := range raw {
		raw[i] = byte(i)
	}

	rom, err := LoadBootROM(raw)
	require.NoError(t, err)

	sum := md5.Sum(raw)
	assert.Equal(t, hex.EncodeToString(sum[:]), rom.Checksum())
	assert.Equal(t, "unknown", rom.Model())
	assert.False(t, rom.Known())
	assert.Equal(t, raw, rom.Bytes())

	// the ROM keeps its own copy
	raw[0] = 0xFF
	assert.Equal(t, byte(0), rom.Bytes()[0])
}

func TestLoadBootROM_InvalidSize(t *testing.T) {
	for _, size := range []int{0, 255, 257, 2304} {
		_, err := LoadBootROM(make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
	}
}

func TestROM_Nil(t *testing.T) {
	var rom *ROM
	assert.Equal(t, "none", rom.Model())
	assert.Empty(t, rom.Checksum())
	assert.Nil(t, rom.Bytes())
	assert.False(t, rom.Known())
}
