package sim

import (
	"fmt"

	"ns16550/uart16550"
)

// Trap is the panic value raised by a Window access that hits an
// unmapped bus address.
type Trap struct {
	Op   string
	Addr uint32
}

func (t *Trap) Error() string {
	return fmt.Sprintf("sim: %s trap at 0x%08x", t.Op, t.Addr)
}

// Window exposes the bus region starting at Base as a register file.
type Window[R uart16550.Register] struct {
	Bus  *Bus
	Base uint32
}

func NewWindow[R uart16550.Register](bus *Bus, base uint32) Window[R] {
	return Window[R]{Bus: bus, Base: base}
}

func (w Window[R]) ReadAt(offset uint32) R {
	v, ok := w.Bus.Read(w.Base+offset, uart16550.Width[R]())
	if !ok {
		panic(&Trap{Op: "load", Addr: w.Base + offset})
	}
	return R(v)
}

func (w Window[R]) WriteAt(offset uint32, v R) {
	if !w.Bus.Write(w.Base+offset, uart16550.Width[R](), uint32(v)) {
		panic(&Trap{Op: "store", Addr: w.Base + offset})
	}
}
