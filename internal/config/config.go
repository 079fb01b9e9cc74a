// Package config loads the optional YAML configuration of a run. Every
// field can also be set from the command line, which takes precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thelolagemann/kemu/internal/types"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Address is a 16-bit address that unmarshals from either a number or a
// hexadecimal string such as "0x0150".
type Address uint16

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Address) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseAddress(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*a = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (a Address) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("0x%04X", uint16(a)), nil
}

// ParseAddress parses a decimal, 0x prefixed or $ prefixed address.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	digits, base := s, 10
	switch {
	case strings.HasPrefix(s, "$"):
		digits, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits, base = s[2:], 16
	}
	// leading zeros are decimal, 0100 is not an octal address
	v, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: address %q: %v", ErrInvalid, s, err)
	}
	return Address(v), nil
}

// Config describes a single run of the emulator.
type Config struct {
	ROM  string `yaml:"rom"`
	Boot string `yaml:"boot"`

	// Entry overrides the initial program counter.
	Entry *Address `yaml:"entry"`

	Verbose  bool   `yaml:"verbose"`
	LogLevel string `yaml:"log_level"`
	MaxSteps uint64 `yaml:"max_steps"`

	// Serial prints bytes sent over the serial port to stdout.
	Serial bool `yaml:"serial"`
	// TraceAddr serves the live trace over websocket on this address.
	TraceAddr string `yaml:"trace_addr"`

	StateIn  string `yaml:"state_in"`
	StateOut string `yaml:"state_out"`
	// SaveDir keeps save states in a folder per rom.
	SaveDir string `yaml:"save_dir"`

	MemorySize int `yaml:"memory_size"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		MemorySize: types.AddressSpace,
	}
}

// Load reads the configuration at path on top of Default.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes raw YAML on top of Default. Unknown keys are an error.
func Parse(raw []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that can never work.
func (c *Config) Validate() error {
	if c.MemorySize <= 0 || c.MemorySize > types.AddressSpace {
		return fmt.Errorf("%w: memory_size must be within 1-%d, got %d", ErrInvalid, types.AddressSpace, c.MemorySize)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
