package cpu

import "fmt"

// rotateOperations are the CB prefixed rotates, shifts and swap selected by
// bits 3-5 of the opcodes 0xCB 0x00-0x3F.
var rotateOperations = [8]struct {
	name string
	fn   func(n uint8, f Flag) (uint8, Flag)
}{
	{"RLC", func(n uint8, _ Flag) (uint8, Flag) { return rlc(n) }},
	{"RRC", func(n uint8, _ Flag) (uint8, Flag) { return rrc(n) }},
	{"RL", rl},
	{"RR", rr},
	{"SLA", func(n uint8, _ Flag) (uint8, Flag) { return sla(n) }},
	{"SRA", func(n uint8, _ Flag) (uint8, Flag) { return sra(n) }},
	{"SWAP", func(n uint8, _ Flag) (uint8, Flag) { return swap(n) }},
	{"SRL", func(n uint8, _ Flag) (uint8, Flag) { return srl(n) }},
}

// generateRotateInstructions generates the accumulator rotates and the
// CB prefixed rotate, shift and swap instructions.
func generateRotateInstructions() {
	DefineInstruction(0x07, "RLCA", func(c *CPU, _ []byte) {
		c.A, c.F = rlca(c.A)
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU, _ []byte) {
		c.A, c.F = rrca(c.A)
	})
	DefineInstruction(0x17, "RLA", func(c *CPU, _ []byte) {
		c.A, c.F = rla(c.A, c.F)
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU, _ []byte) {
		c.A, c.F = rra(c.A, c.F)
	})

	// 0xCB 0x00 RLC B ... 0xCB 0x3F SRL A
	for op := uint8(0); op < 8; op++ {
		operation := rotateOperations[op]
		for r := uint8(0); r < 8; r++ {
			target := r
			cycles := uint8(2)
			if target == indirectHL {
				cycles = 4
			}
			DefineInstructionCB(op<<3|target, fmt.Sprintf("%s %s", operation.name, registerNames[target]), func(c *CPU, _ []byte) {
				result, f := operation.fn(c.read8(target), c.F)
				c.write8(target, result)
				c.F = f
			}, Cycles(cycles))
		}
	}
}
