package cpu

import "github.com/thelolagemann/kemu/internal/types"

// Flag is a bit of the F register. Only the upper nibble of F is
// used, the lower nibble always reads as zero.
type Flag = uint8

const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero Flag = types.Bit7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flag = types.Bit6
	// FlagHalfCarry is set on a carry out of (or borrow into) the low nibble.
	FlagHalfCarry Flag = types.Bit5
	// FlagCarry is set on a carry out of (or borrow into) the result.
	FlagCarry Flag = types.Bit4
)

// flags builds an F register value from the four flag states.
func flags(zero, subtract, halfCarry, carry bool) Flag {
	var f Flag
	if zero {
		f |= FlagZero
	}
	if subtract {
		f |= FlagSubtract
	}
	if halfCarry {
		f |= FlagHalfCarry
	}
	if carry {
		f |= FlagCarry
	}
	return f
}

// setFlags replaces all four flags.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = flags(zero, subtract, halfCarry, carry)
}

// setF stores f into the F register, masking the unused lower nibble.
func (c *CPU) setF(f Flag) {
	c.F = f & types.HighNibble
}

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= flag
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F = (c.F | flag) & types.HighNibble
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&flag != 0
}
