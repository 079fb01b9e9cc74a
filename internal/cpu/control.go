package cpu

// generateControlInstructions defines the instructions that change the
// mode of the CPU rather than its registers, along with the CB prefix.
func generateControlInstructions() {
	DefineInstruction(0x00, "NOP", func(c *CPU, _ []byte) {})

	// STOP is followed by a padding byte, which is skipped
	DefineInstruction(0x10, "STOP", func(c *CPU, _ []byte) {
		c.mode = ModeStop
	}, Operands(OperandD8))

	// without interrupts nothing can wake the CPU, so HALT is reported
	// to the caller rather than waited on
	DefineInstruction(0x76, "HALT", func(c *CPU, _ []byte) {
		c.mode = ModeHalt
	})

	DefineInstruction(0xF3, "DI", func(c *CPU, _ []byte) {
		c.IME = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU, _ []byte) {
		c.IME = true
	})

	// 0xCB is never executed itself, Step resolves it against InstructionSetCB
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU, _ []byte) {}, Cycles(0))
	InstructionSet[0xCB].prefix = true
}
