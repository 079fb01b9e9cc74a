package types

// Register represents an SM83 register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags, and its lower nibble always
// reads as zero.
type Register = uint8

// RegisterPair represents a pair of Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL. A pair does not
// hold any state of its own, it is a view over the two Registers it points
// to, so writing through the pair is immediately visible in both halves and
// vice versa.
type RegisterPair struct {
	High *Register
	Low  *Register

	// lowClear holds the bits of Low that always read and write as zero.
	lowClear uint8
}

// NewRegisterPair returns a RegisterPair viewing high and low.
func NewRegisterPair(high, low *Register) *RegisterPair {
	return &RegisterPair{High: high, Low: low}
}

// NewFlagPair returns the AF style RegisterPair, where the lower nibble of
// the low (flag) register is forced to zero.
func NewFlagPair(high, flags *Register) *RegisterPair {
	return &RegisterPair{High: high, Low: flags, lowClear: LowNibble}
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low&^r.lowClear)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) &^ r.lowClear
}

// Registers represents the SM83 CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// NewRegisters returns a zeroed register file with its pairs wired up.
func NewRegisters() *Registers {
	r := &Registers{}
	r.Bind()
	return r
}

// Bind (re)binds the register pairs to the registers of r. It must be
// called again whenever a Registers value is copied or embedded, as the
// pairs of the copy still point at the original.
func (r *Registers) Bind() {
	r.BC = NewRegisterPair(&r.B, &r.C)
	r.DE = NewRegisterPair(&r.D, &r.E)
	r.HL = NewRegisterPair(&r.H, &r.L)
	r.AF = NewFlagPair(&r.A, &r.F)
}
