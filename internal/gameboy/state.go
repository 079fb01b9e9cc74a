package gameboy

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/thelolagemann/kemu/internal/types"
)

// ErrStateMismatch is returned when loading a save state that was taken
// while running a different image.
var ErrStateMismatch = errors.New("gameboy: save state belongs to a different rom")

var _ types.Stater = (*GameBoy)(nil)

// Save writes the hash of the running image, followed by the CPU and the
// contents of memory.
func (g *GameBoy) Save(s *types.State) {
	s.Write64(g.Cart.Hash())
	g.CPU.Save(s)
	g.MMU.Save(s)
}

// Load restores the CPU and memory from s. The image hash is read by
// LoadState, which verifies it before calling Load.
func (g *GameBoy) Load(s *types.State) {
	g.CPU.Load(s)
	g.MMU.Load(s)
	g.loadedFromState = true
}

// SaveState returns a brotli compressed snapshot of the machine.
func (g *GameBoy) SaveState() ([]byte, error) {
	s := types.NewState()
	g.Save(s)

	var buf bytes.Buffer
	if err := compress(&buf, s.Bytes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compress(w io.Writer, raw []byte) error {
	bw := brotli.NewWriterLevel(w, brotli.BestCompression)
	if _, err := bw.Write(raw); err != nil {
		return err
	}
	return bw.Close()
}

// LoadState restores the machine from a snapshot returned by SaveState.
func (g *GameBoy) LoadState(b []byte) error {
	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(b)))
	if err != nil {
		return fmt.Errorf("decompressing save state: %w", err)
	}

	s := types.StateFromBytes(raw)
	if hash := s.Read64(); s.Err() == nil && hash != g.Cart.Hash() {
		return fmt.Errorf("%w: state %016x, rom %016x", ErrStateMismatch, hash, g.Cart.Hash())
	}
	g.Load(s)
	if err := s.Err(); err != nil {
		return fmt.Errorf("loading save state: %w", err)
	}
	g.Logger.Debugf("restored save state at 0x%04X after %d steps", g.CPU.PC, g.CPU.Steps)
	return nil
}
