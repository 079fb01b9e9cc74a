package mmu

import "fmt"

// Access is the kind of bus access that faulted.
type Access uint8

const (
	AccessRead Access = iota
	AccessWrite
)

func (a Access) String() string {
	if a == AccessWrite {
		return "write"
	}
	return "read"
}

// Fault is returned for any access outside of the addressable range of the
// MMU. Accesses never wrap around into the start of the address space.
type Fault struct {
	Address uint32 // first address that could not be accessed
	Access  Access
	Size    uint32 // size of the address space
}

func (f *Fault) Error() string {
	return fmt.Sprintf("mmu: %s fault at 0x%04X (address space is 0x%X bytes)", f.Access, f.Address, f.Size)
}
