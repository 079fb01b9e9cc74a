package cpu

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/kemu/pkg/log"
)

// Snapshot is a copy of the CPU registers at a point in time.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
}

func (s Snapshot) String() string {
	return fmt.Sprintf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.PC)
}

// Snapshot returns a copy of the current registers.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
		IME: c.IME,
	}
}

// Entry describes a decoded instruction. Entries produced while tracing
// also carry the registers after the instruction executed.
type Entry struct {
	PC        uint16 // address of the first opcode byte
	Bytes     []byte // opcode, including any prefix, followed by the operands
	Name      string // mnemonic with its operand placeholder unresolved
	Operand   Operand
	Cycles    uint8
	Illegal   bool
	Registers Snapshot
}

// Operands returns the immediate operand bytes of the entry.
func (e Entry) Operands() []byte {
	n := int(e.Operand.Size())
	if n > len(e.Bytes) {
		return nil
	}
	return e.Bytes[len(e.Bytes)-n:]
}

// Mnemonic returns the mnemonic of the entry with its operand resolved.
// Relative jumps resolve to their target address.
func (e Entry) Mnemonic() string {
	operands := e.Operands()
	if e.Operand == OperandNone || len(operands) == 0 || !strings.Contains(e.Name, e.Operand.String()) {
		return e.Name
	}

	var value string
	switch e.Operand {
	case OperandD8:
		value = fmt.Sprintf("$%02X", operands[0])
	case OperandA8:
		value = fmt.Sprintf("$FF%02X", operands[0])
	case OperandD16, OperandA16:
		value = fmt.Sprintf("$%04X", word(operands))
	case OperandR8:
		offset := int8(operands[0])
		if strings.HasPrefix(e.Name, "JR") {
			target := uint16(int32(e.PC) + int32(len(e.Bytes)) + int32(offset))
			value = fmt.Sprintf("$%04X", target)
		} else if strings.Contains(e.Name, "+r8") {
			// LD HL, SP+r8 reads better as SP-2 than SP+-2
			return strings.Replace(e.Name, "+r8", fmt.Sprintf("%+d", offset), 1)
		} else {
			value = fmt.Sprintf("%d", offset)
		}
	}
	return strings.Replace(e.Name, e.Operand.String(), value, 1)
}

func (e Entry) String() string {
	return fmt.Sprintf("%04X: % -9X %-18s %s", e.PC, e.Bytes, e.Mnemonic(), e.Registers)
}

// entry builds the trace Entry of the instruction that just executed.
func (c *CPU) entry(instruction *Instruction, operands []byte) Entry {
	raw := make([]byte, 0, 3)
	if instruction.prefixed {
		raw = append(raw, 0xCB)
	}
	raw = append(raw, instruction.opcode)
	raw = append(raw, operands...)
	cycles := instruction.cycles
	if c.branched {
		cycles += instruction.branch
	}
	return Entry{
		PC:        c.instructionPC,
		Bytes:     raw,
		Name:      instruction.name,
		Operand:   instruction.operand,
		Cycles:    cycles,
		Illegal:   instruction.illegal,
		Registers: c.Snapshot(),
	}
}

// Tracer receives an Entry for every instruction the CPU executes while
// Debug is enabled. Trace is called synchronously from the execution loop.
type Tracer interface {
	Trace(Entry)
}

// TraceFunc is an adapter to allow the use of ordinary functions as a
// Tracer.
type TraceFunc func(Entry)

// Trace calls f(e).
func (f TraceFunc) Trace(e Entry) {
	f(e)
}

// MultiTracer fans entries out to several tracers, in order.
type MultiTracer []Tracer

// Trace passes e to every tracer.
func (m MultiTracer) Trace(e Entry) {
	for _, t := range m {
		t.Trace(e)
	}
}

// NewLogTracer returns a Tracer that writes every entry to logger at debug
// level.
func NewLogTracer(logger log.Logger) Tracer {
	return TraceFunc(func(e Entry) {
		logger.Debugf("%s", e)
	})
}
