package cpu

// and performs a bitwise AND operation on n and the A Register.
func (c *CPU) and(n uint8) {
	c.A, c.F = and8(c.A, n)
}

// or performs a bitwise OR operation on n and the A Register.
func (c *CPU) or(n uint8) {
	c.A, c.F = or8(c.A, n)
}

// xor performs a bitwise XOR operation on n and the A Register.
func (c *CPU) xor(n uint8) {
	c.A, c.F = xor8(c.A, n)
}

// generateLogicInstructions generates the instructions operating on A and
// the carry flag directly.
func generateLogicInstructions() {
	// CPL complements A.
	//
	// Flags affected:
	//
	//	Z - Not affected.
	//	N - Set.
	//	H - Set.
	//	C - Not affected.
	DefineInstruction(0x2F, "CPL", func(c *CPU, _ []byte) {
		c.A = ^c.A
		c.setFlag(FlagSubtract | FlagHalfCarry)
	})

	// SCF sets the carry flag.
	//
	// Flags affected:
	//
	//	Z - Not affected.
	//	N - Reset.
	//	H - Reset.
	//	C - Set.
	DefineInstruction(0x37, "SCF", func(c *CPU, _ []byte) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})

	// CCF complements the carry flag.
	//
	// Flags affected:
	//
	//	Z - Not affected.
	//	N - Reset.
	//	H - Reset.
	//	C - Complemented.
	DefineInstruction(0x3F, "CCF", func(c *CPU, _ []byte) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})
}
