package gameboy

import (
	"io"

	"github.com/thelolagemann/kemu/internal/boot"
	"github.com/thelolagemann/kemu/internal/cpu"
	"github.com/thelolagemann/kemu/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug traces every executed instruction.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// SerialDebugger writes every byte sent over the serial port to output.
// Test ROMs report their results this way.
func SerialDebugger(output io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serial = output
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		if log != nil {
			gb.Logger = log
		}
	}
}

// WithState restores the machine from a save state produced by
// SaveState once the bus has been populated.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}

// WithBootROM places rom at 0x0000 and starts execution there, unless an
// entry point is given explicitly.
func WithBootROM(rom *boot.ROM) Opt {
	return func(gb *GameBoy) {
		gb.Boot = rom
	}
}

// WithEntryPoint overrides the address execution begins at.
func WithEntryPoint(pc uint16) Opt {
	return func(gb *GameBoy) {
		gb.entry = &pc
	}
}

// WithStepLimit stops execution with ErrStepLimit after n instructions.
func WithStepLimit(n uint64) Opt {
	return func(gb *GameBoy) {
		gb.maxSteps = n
	}
}

// WithTracer adds t to the tracers invoked for every executed instruction
// while debugging.
func WithTracer(t cpu.Tracer) Opt {
	return func(gb *GameBoy) {
		if t != nil {
			gb.tracers = append(gb.tracers, t)
		}
	}
}

// WithMemorySize limits the bus to size bytes. Accesses beyond it fault.
func WithMemorySize(size int) Opt {
	return func(gb *GameBoy) {
		gb.memorySize = size
	}
}
