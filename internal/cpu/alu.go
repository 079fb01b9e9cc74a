package cpu

import "github.com/thelolagemann/kemu/internal/types"

// The functions in this file are the flag/ALU engine. They are pure:
// each takes its operands (and the current flags where an operation
// needs the carry in or preserves a flag) and returns the result along
// with the new value of the F register. Handlers decide where results go.

// carryIn returns 1 if the carry flag is set in f.
func carryIn(f Flag) uint8 {
	if f&FlagCarry != 0 {
		return 1
	}
	return 0
}

// add8 adds b (and the carry in, if carry is true) to a.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func add8(a, b uint8, carry bool) (uint8, Flag) {
	var cin uint16
	if carry {
		cin = 1
	}
	sum := uint16(a) + uint16(b) + cin
	half := uint16(a&0xF) + uint16(b&0xF) + cin
	return uint8(sum), flags(uint8(sum) == 0, false, half > 0xF, sum > 0xFF)
}

// sub8 subtracts b (and the borrow in, if carry is true) from a. CP
// uses the flags of sub8 and discards the result.
//
//	SUB n
//	SBC A, n
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func sub8(a, b uint8, carry bool) (uint8, Flag) {
	var bin int16
	if carry {
		bin = 1
	}
	diff := int16(a) - int16(b) - bin
	half := int16(a&0xF) - int16(b&0xF) - bin
	return uint8(diff), flags(uint8(diff) == 0, true, half < 0, diff < 0)
}

// add16 adds b to a.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func add16(a, b uint16) (uint16, Flag) {
	sum := uint32(a) + uint32(b)
	return uint16(sum), flags(uint16(sum) == 0, false, (a&0xFFF)+(b&0xFFF) > 0xFFF, sum > 0xFFFF)
}

// addSigned adds the signed offset e to sp. The flags are computed from
// the unsigned low byte addition.
//
//	ADD SP, r8
//	LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func addSigned(sp uint16, e uint8) (uint16, Flag) {
	result := uint16(int32(sp) + int32(int8(e)))
	return result, flags(false, false, (sp&0xF)+uint16(e&0xF) > 0xF, (sp&0xFF)+uint16(e) > 0xFF)
}

// inc8 increments n by 1.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func inc8(n uint8, f Flag) (uint8, Flag) {
	result := n + 1
	return result, flags(result == 0, false, n&0xF == 0xF, f&FlagCarry != 0)
}

// dec8 decrements n by 1.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func dec8(n uint8, f Flag) (uint8, Flag) {
	result := n - 1
	return result, flags(result == 0, true, n&0xF == 0, f&FlagCarry != 0)
}

// and8 performs a bitwise AND of a and b.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func and8(a, b uint8) (uint8, Flag) {
	result := a & b
	return result, flags(result == 0, false, true, false)
}

// or8 performs a bitwise OR of a and b.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func or8(a, b uint8) (uint8, Flag) {
	result := a | b
	return result, flags(result == 0, false, false, false)
}

// xor8 performs a bitwise XOR of a and b.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func xor8(a, b uint8) (uint8, Flag) {
	result := a ^ b
	return result, flags(result == 0, false, false, false)
}

// rlc rotates n left. Bit 7 goes to both bit 0 and the carry flag.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func rlc(n uint8) (uint8, Flag) {
	result := n<<1 | n>>7
	return result, flags(result == 0, false, false, n&types.Bit7 != 0)
}

// rrc rotates n right. Bit 0 goes to both bit 7 and the carry flag.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func rrc(n uint8) (uint8, Flag) {
	result := n>>1 | n<<7
	return result, flags(result == 0, false, false, n&types.Bit0 != 0)
}

// rl rotates n left through the carry flag.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func rl(n uint8, f Flag) (uint8, Flag) {
	result := n<<1 | carryIn(f)
	return result, flags(result == 0, false, false, n&types.Bit7 != 0)
}

// rr rotates n right through the carry flag.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func rr(n uint8, f Flag) (uint8, Flag) {
	result := n>>1 | carryIn(f)<<7
	return result, flags(result == 0, false, false, n&types.Bit0 != 0)
}

// sla shifts n left into the carry flag. Bit 0 is reset.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func sla(n uint8) (uint8, Flag) {
	result := n << 1
	return result, flags(result == 0, false, false, n&types.Bit7 != 0)
}

// sra shifts n right into the carry flag. Bit 7 keeps its value.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func sra(n uint8) (uint8, Flag) {
	result := n>>1 | n&types.Bit7
	return result, flags(result == 0, false, false, n&types.Bit0 != 0)
}

// srl shifts n right into the carry flag. Bit 7 is reset.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func srl(n uint8) (uint8, Flag) {
	result := n >> 1
	return result, flags(result == 0, false, false, n&types.Bit0 != 0)
}

// swap exchanges the upper and lower nibbles of n.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func swap(n uint8) (uint8, Flag) {
	result := n<<4 | n>>4
	return result, flags(result == 0, false, false, false)
}

// accumulator converts the result of a CB rotate into the result of the
// matching single byte accumulator rotate, which always resets Z.
func accumulator(result uint8, f Flag) (uint8, Flag) {
	return result, f &^ FlagZero
}

// rlca, rrca, rla and rra are the accumulator forms of rlc, rrc, rl
// and rr. Unlike their CB counterparts the zero flag is always reset.
func rlca(a uint8) (uint8, Flag) { return accumulator(rlc(a)) }
func rrca(a uint8) (uint8, Flag) { return accumulator(rrc(a)) }
func rla(a uint8, f Flag) (uint8, Flag) { return accumulator(rl(a, f)) }
func rra(a uint8, f Flag) (uint8, Flag) { return accumulator(rr(a, f)) }

// bit tests bit b of n.
//
//	BIT b, r
//	b = 0 - 7
//	r = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func bit(n, b uint8, f Flag) Flag {
	return flags(n&(1<<b) == 0, false, true, f&FlagCarry != 0)
}

// daa adjusts a so that it contains a correct binary coded decimal
// after an addition or subtraction of two BCD values.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func daa(a uint8, f Flag) (uint8, Flag) {
	carry := f&FlagCarry != 0
	if f&FlagSubtract == 0 {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if f&FlagHalfCarry != 0 || a&0xF > 0x9 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if f&FlagHalfCarry != 0 {
			a -= 0x06
		}
	}
	return a, flags(a == 0, f&FlagSubtract != 0, false, carry)
}
