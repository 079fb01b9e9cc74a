package cpu

import (
	"encoding/binary"
	"fmt"

	"github.com/thelolagemann/kemu/internal/types"
)

// word decodes a little-endian 16-bit operand.
func word(operands []byte) uint16 {
	return binary.LittleEndian.Uint16(operands)
}

// highPage returns the high page address for the given offset. The
// result is always within 0xFF00-0xFFFF.
func highPage(offset uint8) uint16 {
	return types.HighPage | uint16(offset)
}

// loadIndirect stores A at the address held by pair, then adjusts the
// pair by delta.
//
//	LD (rr), A
//	LD (HL+), A
//	LD (HL-), A
func (c *CPU) loadIndirect(pair *RegisterPair, delta int) {
	address := pair.Uint16()
	c.writeByte(address, c.A)
	pair.SetUint16(uint16(int(address) + delta))
}

// loadFromIndirect loads A from the address held by pair, then adjusts
// the pair by delta.
//
//	LD A, (rr)
//	LD A, (HL+)
//	LD A, (HL-)
func (c *CPU) loadFromIndirect(pair *RegisterPair, delta int) {
	address := pair.Uint16()
	c.A = c.readByte(address)
	pair.SetUint16(uint16(int(address) + delta))
}

// generateLoadInstructions generates the 8-bit and 16-bit load
// instructions, excluding the stack instructions.
func generateLoadInstructions() {
	// 0x40 LD B, B ... 0x7F LD A, A, with 0x76 being HALT
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == indirectHL && src == indirectHL {
				continue
			}
			to, from := dst, src
			cycles := uint8(1)
			if to == indirectHL || from == indirectHL {
				cycles = 2
			}
			DefineInstruction(0x40|to<<3|from, fmt.Sprintf("LD %s, %s", registerNames[to], registerNames[from]), func(c *CPU, _ []byte) {
				c.write8(to, c.read8(from))
			}, Cycles(cycles))
		}
	}

	// 0x06 LD B, d8 ... 0x3E LD A, d8
	for r := uint8(0); r < 8; r++ {
		to := r
		cycles := uint8(2)
		if to == indirectHL {
			cycles = 3
		}
		DefineInstruction(0x06|to<<3, fmt.Sprintf("LD %s, d8", registerNames[to]), func(c *CPU, operands []byte) {
			c.write8(to, operands[0])
		}, Operands(OperandD8), Cycles(cycles))
	}

	// 0x01 LD BC, d16 ... 0x31 LD SP, d16
	for p := uint8(0); p < 4; p++ {
		to := p
		DefineInstruction(0x01|to<<4, fmt.Sprintf("LD %s, d16", pairNames[to]), func(c *CPU, operands []byte) {
			c.setPair(to, word(operands))
		}, Operands(OperandD16), Cycles(3))
	}

	// indirect loads through BC, DE and HL
	indirect := []struct {
		name  string
		pair  func(c *CPU) *RegisterPair
		delta int
	}{
		{"(BC)", func(c *CPU) *RegisterPair { return c.BC }, 0},
		{"(DE)", func(c *CPU) *RegisterPair { return c.DE }, 0},
		{"(HL+)", func(c *CPU) *RegisterPair { return c.HL }, 1},
		{"(HL-)", func(c *CPU) *RegisterPair { return c.HL }, -1},
	}
	for i, ind := range indirect {
		ind := ind
		DefineInstruction(0x02|uint8(i)<<4, fmt.Sprintf("LD %s, A", ind.name), func(c *CPU, _ []byte) {
			c.loadIndirect(ind.pair(c), ind.delta)
		}, Cycles(2))
		DefineInstruction(0x0A|uint8(i)<<4, fmt.Sprintf("LD A, %s", ind.name), func(c *CPU, _ []byte) {
			c.loadFromIndirect(ind.pair(c), ind.delta)
		}, Cycles(2))
	}

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU, operands []byte) {
		c.writeWord(word(operands), c.SP)
	}, Operands(OperandA16), Cycles(5))

	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU, operands []byte) {
		c.writeByte(highPage(operands[0]), c.A)
	}, Operands(OperandA8), Cycles(3))
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU, operands []byte) {
		c.A = c.readByte(highPage(operands[0]))
	}, Operands(OperandA8), Cycles(3))
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU, _ []byte) {
		c.writeByte(highPage(c.C), c.A)
	}, Cycles(2))
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU, _ []byte) {
		c.A = c.readByte(highPage(c.C))
	}, Cycles(2))

	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU, operands []byte) {
		c.writeByte(word(operands), c.A)
	}, Operands(OperandA16), Cycles(4))
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU, operands []byte) {
		c.A = c.readByte(word(operands))
	}, Operands(OperandA16), Cycles(4))

	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU, operands []byte) {
		var result uint16
		result, c.F = addSigned(c.SP, operands[0])
		c.HL.SetUint16(result)
	}, Operands(OperandR8), Cycles(3))
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU, _ []byte) {
		c.SP = c.HL.Uint16()
	}, Cycles(2))
}
