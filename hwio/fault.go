// Package hwio reaches a UART register file on real hardware, either
// memory mapped through /dev/mem or in the x86 port space through
// /dev/port.
package hwio

import "fmt"

// Fault is the panic value raised when a register access cannot be
// carried out.
type Fault struct {
	Op     string
	Offset uint32
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("hwio: %s at offset 0x%x: %v", f.Op, f.Offset, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }
