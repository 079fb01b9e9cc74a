package types

import (
	"errors"
	"fmt"
)

// ErrShortState is returned when a State runs out of data while being read.
var ErrShortState = errors.New("state: unexpected end of data")

// State is a little-endian byte stream used to save and restore the
// emulator between runs. Reads past the end of the stream do not panic,
// they return zero values and latch ErrShortState, which is reported
// by Err.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new, empty state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// Err returns the first error encountered while reading the state.
func (s *State) Err() error {
	return s.err
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write64(value uint64) {
	for i := 0; i < 8; i++ {
		s.raw = append(s.raw, byte(value>>(8*i)))
	}
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

// WriteData writes a length prefixed block of data.
func (s *State) WriteData(data []byte) {
	s.Write64(uint64(len(data)))
	s.raw = append(s.raw, data...)
}

// take returns the next n bytes of the stream, or nil if there are fewer
// than n bytes left.
func (s *State) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if n < 0 || len(s.raw)-s.readPosition < n {
		s.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortState, n, s.readPosition, len(s.raw)-s.readPosition)
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) Read64() uint64 {
	b := s.take(8)
	var value uint64
	for i, v := range b {
		value |= uint64(v) << (8 * i)
	}
	return value
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

// ReadData reads a block of data written by WriteData.
func (s *State) ReadData() []byte {
	n := s.Read64()
	if s.err != nil {
		return nil
	}
	if n > uint64(len(s.raw)) {
		s.err = fmt.Errorf("%w: block of %d bytes", ErrShortState, n)
		return nil
	}
	b := s.take(int(n))
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// Bytes returns the raw state data.
func (s *State) Bytes() []byte {
	return s.raw
}
