package cpu

import "github.com/thelolagemann/kemu/internal/types"

type (
	Register     = types.Register
	RegisterPair = types.RegisterPair
	Registers    = types.Registers
)

// registerNames holds the operand names of the 3-bit register encoding
// used throughout the instruction set.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// indirectHL is the register index that addresses memory through HL.
const indirectHL = 6

// registerIndex returns a Register pointer for the given index. Index 6
// has no register, it addresses memory through HL, see read8 and write8.
func (c *CPU) registerIndex(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	return nil
}

// read8 reads the operand selected by a 3-bit register index.
func (c *CPU) read8(index uint8) uint8 {
	if index == indirectHL {
		return c.readByte(c.HL.Uint16())
	}
	return *c.registerIndex(index)
}

// write8 writes the operand selected by a 3-bit register index.
func (c *CPU) write8(index uint8, value uint8) {
	if index == indirectHL {
		c.writeByte(c.HL.Uint16(), value)
		return
	}
	*c.registerIndex(index) = value
}

// pairNames are the 16-bit operands selected by bits 4-5 of an opcode.
// Stack instructions use AF in place of SP.
var (
	pairNames      = [4]string{"BC", "DE", "HL", "SP"}
	stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
)

// pair returns the value of the 16-bit register selected by index.
func (c *CPU) pair(index uint8) uint16 {
	if index == 3 {
		return c.SP
	}
	return c.pairIndex(index).Uint16()
}

// setPair sets the 16-bit register selected by index.
func (c *CPU) setPair(index uint8, value uint16) {
	if index == 3 {
		c.SP = value
		return
	}
	c.pairIndex(index).SetUint16(value)
}

// pairIndex returns the RegisterPair for index, mapping 3 to AF.
func (c *CPU) pairIndex(index uint8) *RegisterPair {
	switch index {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	}
	return c.AF
}

// conditionNames are the branch conditions selected by bits 3-4 of an
// opcode.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition reports whether the branch condition selected by index holds.
func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	}
	return c.isFlagSet(FlagCarry)
}
