package cpu

import (
	"errors"
	"fmt"
)

// ErrStepLimit is returned by Run when the CPU has executed MaxSteps
// instructions without halting or faulting.
var ErrStepLimit = errors.New("cpu: step limit reached")

// IllegalOpcodeError is returned when the CPU executes an opcode that has
// no defined behaviour.
type IllegalOpcodeError struct {
	PC     uint16 // address of the opcode
	Opcode uint8
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// BusError is returned when the bus reports a fault while the CPU is
// fetching or executing an instruction.
type BusError struct {
	PC          uint16 // address of the first opcode byte
	Instruction string // mnemonic, empty if the fault happened while fetching the opcode
	Err         error
}

func (e *BusError) Error() string {
	if e.Instruction == "" {
		return fmt.Sprintf("cpu: bus fault fetching opcode at 0x%04X: %v", e.PC, e.Err)
	}
	return fmt.Sprintf("cpu: bus fault executing %s at 0x%04X: %v", e.Instruction, e.PC, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
