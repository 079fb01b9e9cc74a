package cpu

import "fmt"

// Decode decodes the instruction at pc without executing it. The
// returned Entry carries no registers.
func Decode(r Reader, pc uint16) (Entry, error) {
	opcode, err := r.Read(pc)
	if err != nil {
		return Entry{}, fmt.Errorf("decoding 0x%04X: %w", pc, err)
	}
	raw := []byte{opcode}
	instruction := &InstructionSet[opcode]
	if instruction.prefix {
		next, err := r.Read(pc + 1)
		if err != nil {
			return Entry{}, fmt.Errorf("decoding 0x%04X: %w", pc, err)
		}
		raw = append(raw, next)
		instruction = &InstructionSetCB[next]
	}
	for i := uint8(0); i < instruction.operand.Size(); i++ {
		b, err := r.Read(pc + uint16(len(raw)))
		if err != nil {
			return Entry{}, fmt.Errorf("decoding 0x%04X: %w", pc, err)
		}
		raw = append(raw, b)
	}
	return Entry{
		PC:      pc,
		Bytes:   raw,
		Name:    instruction.name,
		Operand: instruction.operand,
		Cycles:  instruction.cycles,
		Illegal: instruction.illegal,
	}, nil
}

// Disassemble decodes count instructions starting at pc. Decoding stops
// early at the first bus error or when the address space wraps, returning
// the entries decoded so far.
func Disassemble(r Reader, pc uint16, count int) ([]Entry, error) {
	if count < 0 {
		return nil, fmt.Errorf("cpu: negative instruction count %d", count)
	}
	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		entry, err := Decode(r, pc)
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
		next := pc + uint16(len(entry.Bytes))
		if next < pc {
			break
		}
		pc = next
	}
	return entries, nil
}

// Listing formats an entry as a line of disassembly.
func (e Entry) Listing() string {
	return fmt.Sprintf("%04X: % -9X %s", e.PC, e.Bytes, e.Mnemonic())
}
