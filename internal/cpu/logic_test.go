package cpu

import "testing"

func TestInstruction_Logic(t *testing.T) {
	// 0x2F - CPL
	testInstruction(t, "CPL", 0x2F, func(t *testing.T, instruction Instruction) {
		cpu.A = 0x35
		cpu.F = FlagZero | FlagCarry
		instruction.Execute(cpu, nil)
		if cpu.A != 0xCA {
			t.Errorf("expected A to be 0xCA, got 0x%02X", cpu.A)
		}
		if cpu.F != FlagZero|FlagSubtract|FlagHalfCarry|FlagCarry {
			t.Errorf("expected all flags set, got %08b", cpu.F)
		}
	})
	// 0x37 - SCF
	testInstruction(t, "SCF", 0x37, func(t *testing.T, instruction Instruction) {
		cpu.F = FlagZero | FlagSubtract | FlagHalfCarry
		instruction.Execute(cpu, nil)
		if cpu.F != FlagZero|FlagCarry {
			t.Errorf("expected Z C, got %08b", cpu.F)
		}
	})
	// 0x3F - CCF
	testInstruction(t, "CCF", 0x3F, func(t *testing.T, instruction Instruction) {
		cpu.F = FlagSubtract | FlagHalfCarry | FlagCarry
		instruction.Execute(cpu, nil)
		if cpu.F != 0 {
			t.Errorf("expected carry to be complemented, got %08b", cpu.F)
		}
		instruction.Execute(cpu, nil)
		if cpu.F != FlagCarry {
			t.Errorf("expected carry to be complemented, got %08b", cpu.F)
		}
	})
}

func TestInstruction_Control(t *testing.T) {
	// 0x00 - NOP
	testInstruction(t, "NOP", 0x00, func(t *testing.T, instruction Instruction) {
		before := cpu.Snapshot()
		instruction.Execute(cpu, nil)
		if cpu.Snapshot() != before {
			t.Errorf("expected NOP not to change anything")
		}
	})
	// 0x10 - STOP
	testInstruction(t, "STOP", 0x10, func(t *testing.T, instruction Instruction) {
		instruction.Execute(cpu, []byte{0x00})
		if cpu.Mode() != ModeStop {
			t.Errorf("expected CPU to be stopped, got mode %d", cpu.Mode())
		}
	})
	// 0x76 - HALT
	testInstruction(t, "HALT", 0x76, func(t *testing.T, instruction Instruction) {
		instruction.Execute(cpu, nil)
		if cpu.Mode() != ModeHalt {
			t.Errorf("expected CPU to be halted, got mode %d", cpu.Mode())
		}
	})
	// 0xF3 - DI, 0xFB - EI
	testInstruction(t, "DI/EI", 0xF3, func(t *testing.T, di Instruction) {
		InstructionSet[0xFB].Execute(cpu, nil)
		if !cpu.IME {
			t.Errorf("expected EI to set IME")
		}
		di.Execute(cpu, nil)
		if cpu.IME {
			t.Errorf("expected DI to reset IME")
		}
	})
}

// isFlagsSet returns true if all the given flags are set.
func (c *CPU) isFlagsSet(flags ...Flag) bool {
	for _, flag := range flags {
		if !c.isFlagSet(flag) {
			return false
		}
	}
	return true
}

// isFlagsNotSet returns true if none of the given flags are set.
func (c *CPU) isFlagsNotSet(flags ...Flag) bool {
	for _, flag := range flags {
		if c.isFlagSet(flag) {
			return false
		}
	}
	return true
}

func TestFlag(t *testing.T) {
	reset()
	cpu.setFlag(FlagZero | FlagCarry)
	if !cpu.isFlagsSet(FlagZero, FlagCarry) || !cpu.isFlagsNotSet(FlagSubtract, FlagHalfCarry) {
		t.Errorf("unexpected flags %08b", cpu.F)
	}
	cpu.clearFlag(FlagZero)
	if cpu.isFlagSet(FlagZero) || !cpu.isFlagSet(FlagCarry) {
		t.Errorf("unexpected flags %08b", cpu.F)
	}
	cpu.setF(0xFF)
	if cpu.F != 0xF0 {
		t.Errorf("expected the lower nibble of F to be masked, got %02X", cpu.F)
	}
	cpu.setFlags(true, false, true, false)
	if cpu.F != FlagZero|FlagHalfCarry {
		t.Errorf("expected Z H, got %08b", cpu.F)
	}
}
