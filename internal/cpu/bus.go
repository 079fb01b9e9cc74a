package cpu

// Bus is the memory the CPU executes against. Words are little-endian,
// with the low byte at the lower address. Accesses outside of the
// addressable range return an error rather than wrapping.
type Bus interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, value uint8) error
	Read16(addr uint16) (uint16, error)
	Write16(addr uint16, value uint16) error
}

// Reader is the subset of Bus needed to decode instructions.
type Reader interface {
	Read(addr uint16) (uint8, error)
}
