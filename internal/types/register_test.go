package types

import "testing"

func TestRegisterPair(t *testing.T) {
	r := NewRegisters()
	pairs := []struct {
		name      string
		pair      *RegisterPair
		high, low *Register
	}{
		{"BC", r.BC, &r.B, &r.C},
		{"DE", r.DE, &r.D, &r.E},
		{"HL", r.HL, &r.H, &r.L},
	}

	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			for v := 0; v <= 0xFFFF; v++ {
				p.pair.SetUint16(uint16(v))
				if *p.high != uint8(v>>8) || *p.low != uint8(v) {
					t.Fatalf("set %04X: expected %02X/%02X, got %02X/%02X", v, v>>8, v&0xFF, *p.high, *p.low)
				}
			}
			for h := 0; h <= 0xFF; h++ {
				*p.high = uint8(h)
				*p.low = uint8(0xFF - h)
				if got, want := p.pair.Uint16(), uint16(h)<<8|uint16(0xFF-h); got != want {
					t.Fatalf("expected %04X, got %04X", want, got)
				}
			}
		})
	}

	t.Run("AF", func(t *testing.T) {
		for v := 0; v <= 0xFFFF; v++ {
			r.AF.SetUint16(uint16(v))
			if r.A != uint8(v>>8) {
				t.Fatalf("set %04X: expected A=%02X, got %02X", v, v>>8, r.A)
			}
			if r.F != uint8(v)&HighNibble {
				t.Fatalf("set %04X: expected F=%02X, got %02X", v, uint8(v)&HighNibble, r.F)
			}
			if r.AF.Uint16() != uint16(v)&0xFFF0 {
				t.Fatalf("set %04X: read back %04X", v, r.AF.Uint16())
			}
		}
		r.F = 0xFF
		if r.AF.Uint16()&LowNibble != 0 {
			t.Errorf("expected low nibble of AF to read as zero, got %04X", r.AF.Uint16())
		}
	})
}

func TestRegisters_Bind(t *testing.T) {
	r := NewRegisters()
	c := *r
	c.Bind()
	c.HL.SetUint16(0x1234)
	if r.H != 0 || r.L != 0 {
		t.Errorf("expected original registers to be untouched, got H=%02X L=%02X", r.H, r.L)
	}
	if c.H != 0x12 || c.L != 0x34 {
		t.Errorf("expected copy to be 0x1234, got %02X%02X", c.H, c.L)
	}
}
