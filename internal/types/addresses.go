package types

// HardwareAddress represents a fixed address of the emulated memory map
// that the core or its collaborators depend on.
type HardwareAddress = uint16

const (
	// BootAddress is where the boot program is placed, and where
	// execution begins when one is present.
	BootAddress HardwareAddress = 0x0000
	// EntryPoint is where the cartridge image is placed, and where
	// execution begins when no boot program is present.
	EntryPoint HardwareAddress = 0x0100
	// HighPage is the base of the 0xFF00 - 0xFFFF page used by the
	// LDH and LD (C) instructions for fast I/O access.
	HighPage HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the byte to transfer over the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. Writing 0x81
	// starts a transfer of SB using the internal clock.
	SC HardwareAddress = 0xFF02
	// StackTop is the initial value of the stack pointer.
	StackTop HardwareAddress = 0xFFFE
)

// AddressSpace is the number of addressable bytes of the SM83 bus.
const AddressSpace = 0x10000
