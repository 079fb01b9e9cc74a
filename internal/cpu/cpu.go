package cpu

import (
	"context"

	"github.com/thelolagemann/kemu/internal/types"
	"github.com/thelolagemann/kemu/pkg/log"
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT.
	ModeHalt
	// ModeStop is entered by STOP.
	ModeStop
)

// Status is the outcome of executing an instruction.
type Status uint8

const (
	// StatusRunning means the CPU can execute the next instruction.
	StatusRunning Status = iota
	// StatusHalted means the CPU executed HALT and is waiting for an
	// interrupt that will never come.
	StatusHalted
	// StatusStopped means the CPU executed STOP.
	StatusStopped
	// StatusFaulted means the last instruction raised an error.
	StatusFaulted
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusHalted:
		return "halted"
	case StatusStopped:
		return "stopped"
	case StatusFaulted:
		return "faulted"
	}
	return "unknown"
}

// CPU represents the SM83 CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	*Registers

	// IME is the interrupt master enable flag, set by EI and RETI and
	// reset by DI. Interrupts are not dispatched, the flag is kept so
	// programs observe the value they set.
	IME bool

	// Cycles is the number of machine cycles executed so far.
	Cycles uint64
	// Steps is the number of instructions executed so far.
	Steps uint64
	// MaxSteps stops Run with ErrStepLimit after that many instructions,
	// zero means no limit.
	MaxSteps uint64

	// Debug enables tracing every executed instruction to Tracer.
	Debug  bool
	Tracer Tracer
	Log    log.Logger

	b    Bus
	mode mode

	// state of the instruction being executed
	instructionPC uint16
	operands      [2]byte
	branched      bool
	fault         error
}

// NewCPU creates a new CPU executing against the given Bus. All registers
// start at zero, except SP which starts at the top of the stack and PC
// which starts at the cartridge entry point.
func NewCPU(b Bus, logger log.Logger) *CPU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	c := &CPU{
		PC:        types.EntryPoint,
		SP:        types.StackTop,
		Registers: types.NewRegisters(),
		Log:       logger,
		b:         b,
	}
	c.Tracer = NewLogTracer(logger)
	return c
}

// Mode returns the current mode of the CPU.
func (c *CPU) Mode() mode {
	return c.mode
}

// Resume returns a halted or stopped CPU to normal execution.
func (c *CPU) Resume() {
	c.mode = ModeNormal
}

// Start sets the program counter to entry and runs until the CPU halts,
// stops, faults or ctx is done. When verbose is true every executed
// instruction is traced.
func (c *CPU) Start(ctx context.Context, entry uint16, verbose bool) (Status, error) {
	c.PC = entry
	c.Debug = verbose
	c.Log.Debugf("starting execution at 0x%04X", entry)
	return c.Run(ctx)
}

// Run executes instructions until the CPU halts, stops or faults. ctx is
// only checked between instructions, as instructions are atomic. If ctx
// is done, Run returns StatusRunning along with ctx.Err().
func (c *CPU) Run(ctx context.Context) (Status, error) {
	done := ctx.Done()
	for {
		select {
		case <-done:
			return StatusRunning, ctx.Err()
		default:
		}

		if c.MaxSteps > 0 && c.Steps >= c.MaxSteps {
			return StatusRunning, ErrStepLimit
		}

		status, err := c.Step()
		if err != nil || status != StatusRunning {
			return status, err
		}
	}
}

// restore rolls the registers back to s. A faulted instruction leaves
// PC on its first opcode byte.
func (c *CPU) restore(s Snapshot, m mode) {
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L
	c.SP, c.PC, c.IME = s.SP, s.PC, s.IME
	c.mode = m
}

// Step executes a single instruction and reports the resulting status of
// the CPU. A halted or stopped CPU does not execute anything until it is
// resumed.
func (c *CPU) Step() (Status, error) {
	switch c.mode {
	case ModeHalt:
		return StatusHalted, nil
	case ModeStop:
		return StatusStopped, nil
	}

	c.instructionPC = c.PC
	c.branched = false
	c.fault = nil
	saved, savedMode := c.Snapshot(), c.mode

	instruction := &InstructionSet[c.readOperand()]
	if instruction.prefix {
		instruction = &InstructionSetCB[c.readOperand()]
	}
	if c.fault != nil {
		c.restore(saved, savedMode)
		return StatusFaulted, &BusError{PC: c.instructionPC, Err: c.fault}
	}

	// operands are fetched before the handler runs, as jumps and calls
	// overwrite PC
	operands := c.operands[:instruction.operand.Size()]
	for i := range operands {
		operands[i] = c.readOperand()
	}
	if c.fault == nil {
		instruction.fn(c, operands)
	}
	if c.fault != nil {
		c.restore(saved, savedMode)
	}

	c.Steps++
	c.Cycles += uint64(instruction.cycles)
	if c.branched {
		c.Cycles += uint64(instruction.branch)
	}

	if c.Debug && c.Tracer != nil {
		c.Tracer.Trace(c.entry(instruction, operands))
	}

	if c.fault != nil {
		if illegal, ok := c.fault.(*IllegalOpcodeError); ok {
			return StatusFaulted, illegal
		}
		return StatusFaulted, &BusError{PC: c.instructionPC, Instruction: instruction.name, Err: c.fault}
	}

	switch c.mode {
	case ModeHalt:
		return StatusHalted, nil
	case ModeStop:
		return StatusStopped, nil
	}
	return StatusRunning, nil
}

// raise records the first error of the current instruction. Once an
// error has been raised, the remaining writes of the instruction are
// dropped.
func (c *CPU) raise(err error) {
	if c.fault == nil {
		c.fault = err
	}
}

// readOperand reads the byte at PC and advances PC.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readByte reads a byte from the bus.
func (c *CPU) readByte(addr uint16) uint8 {
	value, err := c.b.Read(addr)
	if err != nil {
		c.raise(err)
	}
	return value
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, value uint8) {
	if c.fault != nil {
		return
	}
	if err := c.b.Write(addr, value); err != nil {
		c.raise(err)
	}
}

// readWord reads a little-endian word from the bus.
func (c *CPU) readWord(addr uint16) uint16 {
	value, err := c.b.Read16(addr)
	if err != nil {
		c.raise(err)
	}
	return value
}

// writeWord writes a little-endian word to the bus.
func (c *CPU) writeWord(addr uint16, value uint16) {
	if c.fault != nil {
		return
	}
	if err := c.b.Write16(addr, value); err != nil {
		c.raise(err)
	}
}

// branch marks the current conditional instruction as taken.
func (c *CPU) branch() {
	c.branched = true
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.setF(s.Read8())
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.mode = s.Read8()
	c.IME = s.ReadBool()
	c.Cycles = s.Read64()
	c.Steps = s.Read64()
}

func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(c.mode)
	s.WriteBool(c.IME)
	s.Write64(c.Cycles)
	s.Write64(c.Steps)
}
