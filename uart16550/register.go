// Package uart16550 provides typed access to the registers of a
// 16550-compatible UART independent of how the register file is reached.
package uart16550

// Register is the value held by one register cell. Controllers expose
// 8, 16 or 32 bit cells; the 16550 only defines the low byte of each.
type Register interface {
	~uint8 | ~uint16 | ~uint32
}

// IO is a block of addressable register storage. Offsets are in bytes.
//
// Implementations have no way to report failure through this interface.
// A backend that can fault (bus error, unmapped address) panics.
type IO[R Register] interface {
	ReadAt(offset uint32) R
	WriteAt(offset uint32, v R)
}

// Width returns the size of an R cell in bytes.
func Width[R Register]() int {
	n := 0
	for v := ^R(0); v != 0; v >>= 8 {
		n++
	}
	return n
}
