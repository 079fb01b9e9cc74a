package cpu

import "fmt"

// push decrements SP by 2 and then writes value to the stack, with the
// high byte at SP+1.
func (c *CPU) push(value uint16) {
	c.SP -= 2
	c.writeWord(c.SP, value)
}

// pop reads the word at SP and then increments SP by 2.
func (c *CPU) pop() uint16 {
	value := c.readWord(c.SP)
	c.SP += 2
	return value
}

// generateStackInstructions generates PUSH and POP for each register pair.
//
//	0xC1 POP BC	0xC5 PUSH BC
//	0xD1 POP DE	0xD5 PUSH DE
//	0xE1 POP HL	0xE5 PUSH HL
//	0xF1 POP AF	0xF5 PUSH AF
func generateStackInstructions() {
	for p := uint8(0); p < 4; p++ {
		pair := p
		DefineInstruction(0xC1|pair<<4, fmt.Sprintf("POP %s", stackPairNames[pair]), func(c *CPU, _ []byte) {
			// AF masks the lower nibble of F
			c.pairIndex(pair).SetUint16(c.pop())
		}, Cycles(3))
		DefineInstruction(0xC5|pair<<4, fmt.Sprintf("PUSH %s", stackPairNames[pair]), func(c *CPU, _ []byte) {
			c.push(c.pairIndex(pair).Uint16())
		}, Cycles(4))
	}
}
