package cpu

import "fmt"

// call pushes the address of the next instruction onto the stack and
// jumps to address.
func (c *CPU) call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

// ret pops the return address from the stack into PC.
func (c *CPU) ret() {
	c.PC = c.pop()
}

// jumpRelative adds the signed offset to PC, which already points past
// the instruction.
func (c *CPU) jumpRelative(offset uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(offset)))
}

// generateJumpInstructions generates JP, JR, CALL, RET, RETI and RST.
func generateJumpInstructions() {
	DefineInstruction(0xC3, "JP a16", func(c *CPU, operands []byte) {
		c.PC = word(operands)
	}, Operands(OperandA16), Cycles(4))
	DefineInstruction(0xE9, "JP HL", func(c *CPU, _ []byte) {
		c.PC = c.HL.Uint16()
	})
	DefineInstruction(0x18, "JR r8", func(c *CPU, operands []byte) {
		c.jumpRelative(operands[0])
	}, Operands(OperandR8), Cycles(3))
	DefineInstruction(0xCD, "CALL a16", func(c *CPU, operands []byte) {
		c.call(word(operands))
	}, Operands(OperandA16), Cycles(6))
	DefineInstruction(0xC9, "RET", func(c *CPU, _ []byte) {
		c.ret()
	}, Cycles(4))
	DefineInstruction(0xD9, "RETI", func(c *CPU, _ []byte) {
		c.ret()
		c.IME = true
	}, Cycles(4))

	// conditional jumps, calls and returns take extra cycles when taken
	for cc := uint8(0); cc < 4; cc++ {
		condition := cc
		name := conditionNames[condition]

		DefineInstruction(0xC2|condition<<3, fmt.Sprintf("JP %s, a16", name), func(c *CPU, operands []byte) {
			if c.condition(condition) {
				c.branch()
				c.PC = word(operands)
			}
		}, Operands(OperandA16), Cycles(3), BranchCycles(1))
		DefineInstruction(0x20|condition<<3, fmt.Sprintf("JR %s, r8", name), func(c *CPU, operands []byte) {
			if c.condition(condition) {
				c.branch()
				c.jumpRelative(operands[0])
			}
		}, Operands(OperandR8), Cycles(2), BranchCycles(1))
		DefineInstruction(0xC4|condition<<3, fmt.Sprintf("CALL %s, a16", name), func(c *CPU, operands []byte) {
			if c.condition(condition) {
				c.branch()
				c.call(word(operands))
			}
		}, Operands(OperandA16), Cycles(3), BranchCycles(3))
		DefineInstruction(0xC0|condition<<3, fmt.Sprintf("RET %s", name), func(c *CPU, _ []byte) {
			if c.condition(condition) {
				c.branch()
				c.ret()
			}
		}, Cycles(2), BranchCycles(3))
	}

	// 0xC7 RST 00H ... 0xFF RST 38H
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) << 3
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU, _ []byte) {
			c.call(vector)
		}, Cycles(4))
	}
}
