package cpu

import (
	"fmt"
)

// Operand describes the immediate data that follows an opcode.
type Operand uint8

const (
	OperandNone Operand = iota
	OperandD8           // 8-bit immediate data
	OperandD16          // 16-bit immediate data
	OperandA8           // 8-bit offset into the high page (0xFF00)
	OperandA16          // 16-bit address
	OperandR8           // 8-bit signed offset
)

// Size returns the number of bytes the operand occupies.
func (o Operand) Size() uint8 {
	switch o {
	case OperandD8, OperandA8, OperandR8:
		return 1
	case OperandD16, OperandA16:
		return 2
	}
	return 0
}

func (o Operand) String() string {
	switch o {
	case OperandD8:
		return "d8"
	case OperandD16:
		return "d16"
	case OperandA8:
		return "a8"
	case OperandA16:
		return "a16"
	case OperandR8:
		return "r8"
	}
	return ""
}

// Instruction describes a single opcode of the SM83 instruction set.
type Instruction struct {
	name     string
	opcode   uint8
	operand  Operand
	cycles   uint8
	branch   uint8
	prefixed bool
	prefix   bool
	illegal  bool
	fn       func(c *CPU, operands []byte)
}

// Name returns the mnemonic of the instruction, with its operand
// placeholder (d8, d16, a8, a16 or r8) left unresolved.
func (i Instruction) Name() string { return i.name }

// Opcode returns the opcode of the instruction within its table.
func (i Instruction) Opcode() uint8 { return i.opcode }

// Operand returns the kind of immediate data the instruction takes.
func (i Instruction) Operand() Operand { return i.operand }

// Length returns the length of the instruction in bytes, including any
// prefix and operands.
func (i Instruction) Length() uint8 {
	length := 1 + i.operand.Size()
	if i.prefixed {
		length++
	}
	return length
}

// Cycles returns the number of machine cycles the instruction takes. For
// conditional branches this is the cost when the branch is not taken.
func (i Instruction) Cycles() uint8 { return i.cycles }

// BranchCycles returns the extra machine cycles taken by a conditional
// branch when its condition holds.
func (i Instruction) BranchCycles() uint8 { return i.branch }

// Illegal reports whether the opcode has no defined behaviour.
func (i Instruction) Illegal() bool { return i.illegal }

// Execute runs the instruction against c with the given operands, without
// fetching anything or advancing PC.
func (i Instruction) Execute(c *CPU, operands []byte) {
	i.fn(c, operands)
}

// InstructionOpt configures an Instruction when it is defined.
type InstructionOpt func(*Instruction)

// Operands sets the immediate data the instruction takes.
func Operands(o Operand) InstructionOpt {
	return func(i *Instruction) {
		i.operand = o
	}
}

// Cycles sets the machine cycles taken by the instruction.
func Cycles(n uint8) InstructionOpt {
	return func(i *Instruction) {
		i.cycles = n
	}
}

// BranchCycles sets the extra machine cycles taken when a conditional
// branch is taken.
func BranchCycles(n uint8) InstructionOpt {
	return func(i *Instruction) {
		i.branch = n
	}
}

var (
	// InstructionSet holds the single byte instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode. Instructions default to a single machine cycle.
func DefineInstruction(opcode uint8, name string, fn func(c *CPU, operands []byte), opts ...InstructionOpt) {
	define(&InstructionSet[opcode], opcode, false, name, fn, opts)
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode. Instructions default to two machine cycles.
func DefineInstructionCB(opcode uint8, name string, fn func(c *CPU, operands []byte), opts ...InstructionOpt) {
	define(&InstructionSetCB[opcode], opcode, true, name, fn, append([]InstructionOpt{Cycles(2)}, opts...))
}

func define(dst *Instruction, opcode uint8, prefixed bool, name string, fn func(c *CPU, operands []byte), opts []InstructionOpt) {
	if dst.fn != nil {
		panic(fmt.Sprintf("cpu: opcode 0x%02X (%s) is already defined as %s", opcode, name, dst.name))
	}
	instruction := Instruction{
		name:     name,
		opcode:   opcode,
		cycles:   1,
		prefixed: prefixed,
		fn:       fn,
	}
	for _, opt := range opts {
		opt(&instruction)
	}
	*dst = instruction
}

// illegalOpcodes are the single byte opcodes with no defined behaviour.
var illegalOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

// defineIllegal defines opcode as illegal. Executing it faults the CPU.
func defineIllegal(opcode uint8) {
	DefineInstruction(opcode, fmt.Sprintf("ILLEGAL_%02X", opcode), func(c *CPU, _ []byte) {
		c.raise(&IllegalOpcodeError{PC: c.instructionPC, Opcode: opcode})
	}, Cycles(0))
	InstructionSet[opcode].illegal = true
}

func init() {
	generateControlInstructions()
	generateLoadInstructions()
	generateStackInstructions()
	generateArithmeticInstructions()
	generateLogicInstructions()
	generateRotateInstructions()
	generateBitInstructions()
	generateJumpInstructions()

	for _, opcode := range illegalOpcodes {
		defineIllegal(opcode)
	}

	// both tables must be dense, a gap is an instruction nobody wrote
	for i := range InstructionSet {
		if InstructionSet[i].fn == nil {
			panic(fmt.Sprintf("cpu: opcode 0x%02X is not defined", i))
		}
		if InstructionSetCB[i].fn == nil {
			panic(fmt.Sprintf("cpu: opcode 0xCB 0x%02X is not defined", i))
		}
	}
}
