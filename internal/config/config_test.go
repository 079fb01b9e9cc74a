package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
rom: roms/cpu_instrs.gb
boot: dmg_boot.bin
entry: "0x0150"
verbose: true
log_level: debug
max_steps: 1000000
serial: true
trace_addr: localhost:8090
state_out: run.state
save_dir: saves
memory_size: 32768
`))
	require.NoError(t, err)

	assert.Equal(t, "roms/cpu_instrs.gb", cfg.ROM)
	assert.Equal(t, "dmg_boot.bin", cfg.Boot)
	require.NotNil(t, cfg.Entry)
	assert.Equal(t, Address(0x0150), *cfg.Entry)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(1000000), cfg.MaxSteps)
	assert.True(t, cfg.Serial)
	assert.Equal(t, "localhost:8090", cfg.TraceAddr)
	assert.Equal(t, "run.state", cfg.StateOut)
	assert.Empty(t, cfg.StateIn)
	assert.Equal(t, "saves", cfg.SaveDir)
	assert.Equal(t, 32768, cfg.MemorySize)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Nil(t, cfg.Entry)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":   "roms: x.gb",
		"bad entry":     "entry: 0x10000",
		"bad memory":    "memory_size: 70000",
		"bad log level": "log_level: loud",
		"not yaml":      "rom: [",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestParseAddress(t *testing.T) {
	for s, want := range map[string]Address{"0x0100": 0x100, "$FF80": 0xFF80, "256": 0x100, "0256": 0x100, " 0xffff ": 0xFFFF} {
		got, err := ParseAddress(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	_, err := ParseAddress("nope")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	entry := Address(0x0000)
	cfg := Default()
	cfg.ROM = "game.gb"
	cfg.Entry = &entry
	raw, err := cfg.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "kemu.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
