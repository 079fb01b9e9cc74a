package cpu

import "fmt"

// generateBitInstructions generates BIT, RES and SET for every bit of
// every register, as well as (HL).
//
//	0xCB 0x40 BIT 0, B ... 0xCB 0x7F BIT 7, A
//	0xCB 0x80 RES 0, B ... 0xCB 0xBF RES 7, A
//	0xCB 0xC0 SET 0, B ... 0xCB 0xFF SET 7, A
func generateBitInstructions() {
	for b := uint8(0); b < 8; b++ {
		for r := uint8(0); r < 8; r++ {
			index, target := b, r
			testCycles, writeCycles := uint8(2), uint8(2)
			if target == indirectHL {
				testCycles, writeCycles = 3, 4
			}

			DefineInstructionCB(0x40|index<<3|target, fmt.Sprintf("BIT %d, %s", index, registerNames[target]), func(c *CPU, _ []byte) {
				c.F = bit(c.read8(target), index, c.F)
			}, Cycles(testCycles))

			// RES and SET leave the flags untouched
			DefineInstructionCB(0x80|index<<3|target, fmt.Sprintf("RES %d, %s", index, registerNames[target]), func(c *CPU, _ []byte) {
				c.write8(target, c.read8(target)&^(1<<index))
			}, Cycles(writeCycles))
			DefineInstructionCB(0xC0|index<<3|target, fmt.Sprintf("SET %d, %s", index, registerNames[target]), func(c *CPU, _ []byte) {
				c.write8(target, c.read8(target)|1<<index)
			}, Cycles(writeCycles))
		}
	}
}
