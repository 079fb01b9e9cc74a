package cpu

import "testing"

func TestALU_Add8(t *testing.T) {
	for a := 0; a <= 0xFF; a++ {
		for b := 0; b <= 0xFF; b++ {
			result, f := add8(uint8(a), uint8(b), false)
			if result != uint8(a+b) {
				t.Fatalf("%02X+%02X: expected %02X, got %02X", a, b, uint8(a+b), result)
			}
			if got, want := f&FlagZero != 0, (a+b)&0xFF == 0; got != want {
				t.Fatalf("%02X+%02X: expected Z=%v", a, b, want)
			}
			if got, want := f&FlagCarry != 0, a+b > 0xFF; got != want {
				t.Fatalf("%02X+%02X: expected C=%v", a, b, want)
			}
			if got, want := f&FlagHalfCarry != 0, (a&0xF)+(b&0xF) > 0xF; got != want {
				t.Fatalf("%02X+%02X: expected H=%v", a, b, want)
			}
			if f&FlagSubtract != 0 {
				t.Fatalf("%02X+%02X: expected N to be reset", a, b)
			}
			if f&0x0F != 0 {
				t.Fatalf("%02X+%02X: lower nibble of F set: %02X", a, b, f)
			}
		}
	}
}

func TestALU_Add8Carry(t *testing.T) {
	tests := []struct {
		a, b    uint8
		result  uint8
		z, h, c bool
	}{
		{0x00, 0x00, 0x01, false, false, false},
		{0x0F, 0x00, 0x10, false, true, false},
		{0xFF, 0x00, 0x00, true, true, true},
		{0x80, 0x7F, 0x00, true, true, true},
		{0x12, 0x34, 0x47, false, false, false},
	}
	for _, tt := range tests {
		result, f := add8(tt.a, tt.b, true)
		if result != tt.result || f != flags(tt.z, false, tt.h, tt.c) {
			t.Errorf("ADC %02X+%02X+1: expected %02X/%02X, got %02X/%02X", tt.a, tt.b, tt.result, flags(tt.z, false, tt.h, tt.c), result, f)
		}
	}
}

func TestALU_Sub8(t *testing.T) {
	for a := 0; a <= 0xFF; a++ {
		for b := 0; b <= 0xFF; b++ {
			result, f := sub8(uint8(a), uint8(b), false)
			if result != uint8(a-b) {
				t.Fatalf("%02X-%02X: expected %02X, got %02X", a, b, uint8(a-b), result)
			}
			if got, want := f&FlagCarry != 0, a < b; got != want {
				t.Fatalf("%02X-%02X: expected C=%v", a, b, want)
			}
			if got, want := f&FlagZero != 0, a == b; got != want {
				t.Fatalf("%02X-%02X: expected Z=%v", a, b, want)
			}
			if got, want := f&FlagHalfCarry != 0, a&0xF < b&0xF; got != want {
				t.Fatalf("%02X-%02X: expected H=%v", a, b, want)
			}
			if f&FlagSubtract == 0 {
				t.Fatalf("%02X-%02X: expected N to be set", a, b)
			}
		}
	}
}

func TestALU_Sub8Carry(t *testing.T) {
	result, f := sub8(0x00, 0x00, true)
	if result != 0xFF || f != flags(false, true, true, true) {
		t.Errorf("SBC 00-00-1: got %02X/%02X", result, f)
	}
	result, f = sub8(0x10, 0x0F, true)
	if result != 0x00 || f != flags(true, true, true, false) {
		t.Errorf("SBC 10-0F-1: got %02X/%02X", result, f)
	}
}

func TestALU_IncDec(t *testing.T) {
	for _, carry := range []Flag{0, FlagCarry} {
		for n := 0; n <= 0xFF; n++ {
			result, f := inc8(uint8(n), carry|FlagSubtract)
			if result != uint8(n+1) {
				t.Fatalf("INC %02X: got %02X", n, result)
			}
			if f&FlagCarry != carry {
				t.Fatalf("INC %02X: carry changed from %02X", n, carry)
			}
			if f&FlagSubtract != 0 || (f&FlagZero != 0) != (uint8(n+1) == 0) || (f&FlagHalfCarry != 0) != (n&0xF == 0xF) {
				t.Fatalf("INC %02X: unexpected flags %02X", n, f)
			}

			result, f = dec8(uint8(n), carry)
			if result != uint8(n-1) {
				t.Fatalf("DEC %02X: got %02X", n, result)
			}
			if f&FlagCarry != carry {
				t.Fatalf("DEC %02X: carry changed from %02X", n, carry)
			}
			if f&FlagSubtract == 0 || (f&FlagZero != 0) != (uint8(n-1) == 0) || (f&FlagHalfCarry != 0) != (n&0xF == 0) {
				t.Fatalf("DEC %02X: unexpected flags %02X", n, f)
			}
		}
	}
}

func TestALU_Add16(t *testing.T) {
	tests := []struct {
		a, b   uint16
		result uint16
		f      Flag
	}{
		{0x0000, 0x0000, 0x0000, FlagZero},
		{0x0FFF, 0x0001, 0x1000, FlagHalfCarry},
		{0xFFFF, 0x0001, 0x0000, FlagZero | FlagHalfCarry | FlagCarry},
		{0x8000, 0x8000, 0x0000, FlagZero | FlagCarry},
		{0x1234, 0x1111, 0x2345, 0},
	}
	for _, tt := range tests {
		result, f := add16(tt.a, tt.b)
		if result != tt.result || f != tt.f {
			t.Errorf("%04X+%04X: expected %04X/%02X, got %04X/%02X", tt.a, tt.b, tt.result, tt.f, result, f)
		}
	}
}

func TestALU_AddSigned(t *testing.T) {
	tests := []struct {
		sp     uint16
		e      uint8
		result uint16
		f      Flag
	}{
		{0xFFF8, 0x02, 0xFFFA, 0},
		{0xFFF8, 0x08, 0x0000, FlagHalfCarry | FlagCarry},
		{0x0000, 0xFF, 0xFFFF, 0},
		{0x00FF, 0x01, 0x0100, FlagHalfCarry | FlagCarry},
		{0x0005, 0xFE, 0x0003, FlagHalfCarry | FlagCarry},
	}
	for _, tt := range tests {
		result, f := addSigned(tt.sp, tt.e)
		if result != tt.result || f != tt.f {
			t.Errorf("%04X%+d: expected %04X/%02X, got %04X/%02X", tt.sp, int8(tt.e), tt.result, tt.f, result, f)
		}
	}
}

func TestALU_Logic(t *testing.T) {
	for a := 0; a <= 0xFF; a += 0x11 {
		for b := 0; b <= 0xFF; b += 0x0F {
			if r, f := and8(uint8(a), uint8(b)); r != uint8(a&b) || f != flags(a&b == 0, false, true, false) {
				t.Fatalf("AND %02X,%02X: got %02X/%02X", a, b, r, f)
			}
			if r, f := or8(uint8(a), uint8(b)); r != uint8(a|b) || f != flags(a|b == 0, false, false, false) {
				t.Fatalf("OR %02X,%02X: got %02X/%02X", a, b, r, f)
			}
			if r, f := xor8(uint8(a), uint8(b)); r != uint8(a^b) || f != flags(a^b == 0, false, false, false) {
				t.Fatalf("XOR %02X,%02X: got %02X/%02X", a, b, r, f)
			}
		}
	}
}

func TestALU_Rotate(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(n uint8, f Flag) (uint8, Flag)
		n      uint8
		f      Flag
		result uint8
		flags  Flag
	}{
		{"RLC", func(n uint8, _ Flag) (uint8, Flag) { return rlc(n) }, 0x85, 0, 0x0B, FlagCarry},
		{"RLC zero", func(n uint8, _ Flag) (uint8, Flag) { return rlc(n) }, 0x00, 0, 0x00, FlagZero},
		{"RRC", func(n uint8, _ Flag) (uint8, Flag) { return rrc(n) }, 0x01, 0, 0x80, FlagCarry},
		{"RL", rl, 0x80, 0, 0x00, FlagZero | FlagCarry},
		{"RL carry in", rl, 0x11, FlagCarry, 0x23, 0},
		{"RR", rr, 0x01, 0, 0x00, FlagZero | FlagCarry},
		{"RR carry in", rr, 0x8A, FlagCarry, 0xC5, 0},
		{"SLA", func(n uint8, _ Flag) (uint8, Flag) { return sla(n) }, 0xFF, 0, 0xFE, FlagCarry},
		{"SRA", func(n uint8, _ Flag) (uint8, Flag) { return sra(n) }, 0x8A, 0, 0xC5, 0},
		{"SRA carry", func(n uint8, _ Flag) (uint8, Flag) { return sra(n) }, 0x01, 0, 0x00, FlagZero | FlagCarry},
		{"SRL", func(n uint8, _ Flag) (uint8, Flag) { return srl(n) }, 0xFF, 0, 0x7F, FlagCarry},
		{"SWAP", func(n uint8, _ Flag) (uint8, Flag) { return swap(n) }, 0xF0, 0, 0x0F, 0},
		{"SWAP zero", func(n uint8, _ Flag) (uint8, Flag) { return swap(n) }, 0x00, FlagCarry, 0x00, FlagZero},
		{"RLCA", func(n uint8, _ Flag) (uint8, Flag) { return rlca(n) }, 0x00, 0, 0x00, 0},
		{"RRCA", func(n uint8, _ Flag) (uint8, Flag) { return rrca(n) }, 0x01, 0, 0x80, FlagCarry},
		{"RLA", rla, 0x80, 0, 0x00, FlagCarry},
		{"RRA", rra, 0x01, 0, 0x00, FlagCarry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, f := tt.fn(tt.n, tt.f)
			if result != tt.result {
				t.Errorf("expected 0x%02X, got 0x%02X", tt.result, result)
			}
			if f != tt.flags {
				t.Errorf("expected flags %08b, got %08b", tt.flags, f)
			}
		})
	}
}

func TestALU_Bit(t *testing.T) {
	for b := uint8(0); b < 8; b++ {
		if f := bit(1<<b, b, FlagCarry); f != FlagHalfCarry|FlagCarry {
			t.Errorf("bit %d set: expected %08b, got %08b", b, FlagHalfCarry|FlagCarry, f)
		}
		if f := bit(^uint8(1<<b), b, 0); f != FlagZero|FlagHalfCarry {
			t.Errorf("bit %d reset: expected %08b, got %08b", b, FlagZero|FlagHalfCarry, f)
		}
	}
}

func TestALU_DAA(t *testing.T) {
	// adding and subtracting every pair of BCD numbers must give a BCD result
	bcd := func(n int) uint8 { return uint8(n/10<<4 | n%10) }
	for x := 0; x < 100; x++ {
		for y := 0; y < 100; y++ {
			sum, f := add8(bcd(x), bcd(y), false)
			sum, f = daa(sum, f)
			if sum != bcd((x+y)%100) || (f&FlagCarry != 0) != (x+y >= 100) {
				t.Fatalf("%d+%d: expected %02X carry %v, got %02X/%02X", x, y, bcd((x+y)%100), x+y >= 100, sum, f)
			}

			diff, f := sub8(bcd(x), bcd(y), false)
			diff, f = daa(diff, f)
			if diff != bcd((x-y+100)%100) || (f&FlagCarry != 0) != (x < y) {
				t.Fatalf("%d-%d: expected %02X borrow %v, got %02X/%02X", x, y, bcd((x-y+100)%100), x < y, diff, f)
			}
			if f&FlagSubtract == 0 {
				t.Fatalf("%d-%d: expected N to be kept", x, y)
			}
		}
	}
}
