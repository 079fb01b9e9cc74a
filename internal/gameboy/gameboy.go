// Package gameboy wires the CPU to a flat memory bus and the loaded
// program, and drives execution until the CPU halts, stops or faults.
package gameboy

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/thelolagemann/kemu/internal/boot"
	"github.com/thelolagemann/kemu/internal/cartridge"
	"github.com/thelolagemann/kemu/internal/cpu"
	"github.com/thelolagemann/kemu/internal/mmu"
	"github.com/thelolagemann/kemu/internal/types"
	"github.com/thelolagemann/kemu/pkg/log"
)

// ErrStepLimit is returned by Start when the configured step limit is
// reached before the program halts.
var ErrStepLimit = cpu.ErrStepLimit

// GameBoy holds the components needed to execute a program: the CPU, the
// bus it executes against and the images placed on that bus.
type GameBoy struct {
	CPU  *cpu.CPU
	MMU  *mmu.MMU
	Cart *cartridge.Cartridge
	Boot *boot.ROM

	log.Logger

	entry      *uint16
	memorySize int
	maxSteps   uint64
	debug      bool
	serial     io.Writer
	tracers    []cpu.Tracer
	state      []byte

	// loadedFromState is set when the machine was restored from a save
	// state, in which case execution resumes from the saved PC.
	loadedFromState bool
}

// NewGameBoy returns a GameBoy with rom placed at the cartridge entry
// point. Options are applied before the bus is populated, so they decide
// its size, the boot program and where execution begins.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	g := &GameBoy{
		Cart:       cart,
		Logger:     log.NewNullLogger(),
		memorySize: types.AddressSpace,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.MMU = mmu.NewMMUWithSize(g.memorySize)
	g.MMU.Log = g.Logger
	g.CPU = cpu.NewCPU(g.MMU, g.Logger)
	g.CPU.MaxSteps = g.maxSteps
	g.CPU.Debug = g.debug
	if len(g.tracers) > 0 {
		g.CPU.Tracer = append(cpu.MultiTracer{g.CPU.Tracer}, g.tracers...)
	}

	if err := g.place(); err != nil {
		return nil, err
	}
	if g.serial != nil {
		g.attachSerial(g.serial)
	}

	if g.state != nil {
		if err := g.LoadState(g.state); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// place copies the boot program and the cartridge image onto the bus.
func (g *GameBoy) place() error {
	if g.Boot != nil {
		if err := g.MMU.LoadRegion(types.BootAddress, g.Boot.Bytes()); err != nil {
			return fmt.Errorf("placing boot rom: %w", err)
		}
		g.Logger.Debugf("boot rom %s (%s) placed at 0x%04X", g.Boot.Model(), g.Boot.Checksum(), types.BootAddress)
	}
	if err := g.MMU.LoadRegion(types.EntryPoint, g.Cart.Bytes()); err != nil {
		return fmt.Errorf("placing rom of %d bytes: %w", g.Cart.Len(), err)
	}
	return nil
}

// attachSerial hooks the serial control register, emitting SB to w every
// time a transfer is started with the internal clock. The transfer
// completes immediately, so the start bit is cleared straight away.
func (g *GameBoy) attachSerial(w io.Writer) {
	g.MMU.ReserveAddress(types.SC, func(v uint8) uint8 {
		if v != 0x81 {
			return v
		}
		if _, err := w.Write([]byte{g.MMU.Get(types.SB)}); err != nil {
			g.Logger.Warnf("serial: %v", err)
		}
		return v &^ 0x80
	})
}

// Entry returns the address execution begins at: an explicit override,
// the boot program when present, or the cartridge entry point.
func (g *GameBoy) Entry() uint16 {
	switch {
	case g.entry != nil:
		return *g.entry
	case g.Boot != nil:
		return types.BootAddress
	}
	return types.EntryPoint
}

// Start runs the program until the CPU halts, stops, faults, reaches the
// step limit or ctx is done. A machine restored from a save state resumes
// from the saved program counter rather than the entry point.
func (g *GameBoy) Start(ctx context.Context) (cpu.Status, error) {
	var (
		status cpu.Status
		err    error
	)
	if g.loadedFromState {
		g.Logger.Infof("resuming %s at 0x%04X", g.Cart, g.CPU.PC)
		g.CPU.Resume()
		status, err = g.CPU.Run(ctx)
	} else {
		g.Logger.Infof("starting %s at 0x%04X", g.Cart, g.Entry())
		status, err = g.CPU.Start(ctx, g.Entry(), g.CPU.Debug)
	}

	switch {
	case err == nil:
		g.Logger.Infof("cpu %s after %d steps (%d cycles)", status, g.CPU.Steps, g.CPU.Cycles)
	case errors.Is(err, ErrStepLimit):
		g.Logger.Warnf("step limit of %d reached at 0x%04X", g.CPU.MaxSteps, g.CPU.PC)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		g.Logger.Infof("execution interrupted at 0x%04X: %v", g.CPU.PC, err)
	default:
		g.Logger.Errorf("%v", err)
		g.Logger.Debugf("cpu state at fault:\n%s", spew.Sdump(g.CPU.Snapshot()))
	}
	return status, err
}
