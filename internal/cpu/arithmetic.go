package cpu

import "fmt"

// add adds n to A.
func (c *CPU) add(n uint8) {
	c.A, c.F = add8(c.A, n, false)
}

// addCarry adds n plus the carry flag to A.
func (c *CPU) addCarry(n uint8) {
	c.A, c.F = add8(c.A, n, c.isFlagSet(FlagCarry))
}

// sub subtracts n from A.
func (c *CPU) sub(n uint8) {
	c.A, c.F = sub8(c.A, n, false)
}

// subCarry subtracts n plus the carry flag from A.
func (c *CPU) subCarry(n uint8) {
	c.A, c.F = sub8(c.A, n, c.isFlagSet(FlagCarry))
}

// compare subtracts n from A, keeping only the flags.
func (c *CPU) compare(n uint8) {
	_, c.F = sub8(c.A, n, false)
}

// aluOperations are the 8-bit operations on A selected by bits 3-5 of
// the opcodes 0x80-0xBF and 0xC6-0xFE.
var aluOperations = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD A,", (*CPU).add},
	{"ADC A,", (*CPU).addCarry},
	{"SUB", (*CPU).sub},
	{"SBC A,", (*CPU).subCarry},
	{"AND", (*CPU).and},
	{"XOR", (*CPU).xor},
	{"OR", (*CPU).or},
	{"CP", (*CPU).compare},
}

// generateArithmeticInstructions generates the 8-bit ALU instructions,
// increments, decrements and 16-bit additions.
func generateArithmeticInstructions() {
	// 0x80 ADD A, B ... 0xBF CP A
	for op := uint8(0); op < 8; op++ {
		operation := aluOperations[op]
		for r := uint8(0); r < 8; r++ {
			from := r
			cycles := uint8(1)
			if from == indirectHL {
				cycles = 2
			}
			DefineInstruction(0x80|op<<3|from, fmt.Sprintf("%s %s", operation.name, registerNames[from]), func(c *CPU, _ []byte) {
				operation.fn(c, c.read8(from))
			}, Cycles(cycles))
		}

		// 0xC6 ADD A, d8 ... 0xFE CP d8
		DefineInstruction(0xC6|op<<3, fmt.Sprintf("%s d8", operation.name), func(c *CPU, operands []byte) {
			operation.fn(c, operands[0])
		}, Operands(OperandD8), Cycles(2))
	}

	// 0x04 INC B ... 0x3D DEC A
	for r := uint8(0); r < 8; r++ {
		target := r
		cycles := uint8(1)
		if target == indirectHL {
			cycles = 3
		}
		DefineInstruction(0x04|target<<3, fmt.Sprintf("INC %s", registerNames[target]), func(c *CPU, _ []byte) {
			result, f := inc8(c.read8(target), c.F)
			c.write8(target, result)
			c.F = f
		}, Cycles(cycles))
		DefineInstruction(0x05|target<<3, fmt.Sprintf("DEC %s", registerNames[target]), func(c *CPU, _ []byte) {
			result, f := dec8(c.read8(target), c.F)
			c.write8(target, result)
			c.F = f
		}, Cycles(cycles))
	}

	// 16-bit INC, DEC and ADD HL, leaving Z untouched
	for p := uint8(0); p < 4; p++ {
		pair := p
		DefineInstruction(0x03|pair<<4, fmt.Sprintf("INC %s", pairNames[pair]), func(c *CPU, _ []byte) {
			c.setPair(pair, c.pair(pair)+1)
		}, Cycles(2))
		DefineInstruction(0x0B|pair<<4, fmt.Sprintf("DEC %s", pairNames[pair]), func(c *CPU, _ []byte) {
			c.setPair(pair, c.pair(pair)-1)
		}, Cycles(2))
		DefineInstruction(0x09|pair<<4, fmt.Sprintf("ADD HL, %s", pairNames[pair]), func(c *CPU, _ []byte) {
			result, f := add16(c.HL.Uint16(), c.pair(pair))
			c.HL.SetUint16(result)
			c.F = f&^FlagZero | c.F&FlagZero
		}, Cycles(2))
	}

	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU, operands []byte) {
		c.SP, c.F = addSigned(c.SP, operands[0])
	}, Operands(OperandR8), Cycles(4))

	DefineInstruction(0x27, "DAA", func(c *CPU, _ []byte) {
		c.A, c.F = daa(c.A, c.F)
	})
}
