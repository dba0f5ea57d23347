package uart16550

import (
	"fmt"
	"strings"
)

// IER is the Interrupt Enable Register bound to its offset in a register
// file. With LCR.DLAB set the same offset addresses the divisor latch
// high byte, see WriteDivisor.
type IER[R Register] struct {
	offset uint32
}

// NewIER binds an IER view to a byte offset.
func NewIER[R Register](offset uint32) IER[R] {
	return IER[R]{offset: offset}
}

// Offset is the byte offset the view is bound to.
func (r IER[R]) Offset() uint32 { return r.offset }

// Write stores the interrupt enable settings.
func (r IER[R]) Write(io IO[R], v InterruptTypes) {
	io.WriteAt(r.offset, R(v))
}

// Read loads the interrupt enable settings. Bits above MS are returned
// as the hardware reports them.
func (r IER[R]) Read(io IO[R]) InterruptTypes {
	return InterruptTypes(uint8(io.ReadAt(r.offset)))
}

// WriteDivisor writes the divisor latch high byte. The caller must have
// set LCR.DLAB beforehand and clear it afterwards; otherwise the value
// lands in IER.
func (r IER[R]) WriteDivisor(io IO[R], v R) {
	io.WriteAt(r.offset, v)
}

// InterruptTypes is the set of interrupt sources enabled in IER.
// Values are immutable; the Enable and Disable methods return a copy.
type InterruptTypes uint8

// NoInterrupts disables every source. It is the zero value.
const NoInterrupts InterruptTypes = 0

const (
	rda  InterruptTypes = 1 << 0
	thre InterruptTypes = 1 << 1
	rls  InterruptTypes = 1 << 2
	ms   InterruptTypes = 1 << 3
)

// EnableRDA enables the received data available interrupt.
func (t InterruptTypes) EnableRDA() InterruptTypes { return t | rda }

// DisableRDA disables the received data available interrupt.
func (t InterruptTypes) DisableRDA() InterruptTypes { return t &^ rda }

// RDAEnabled reports whether the received data available interrupt is enabled.
func (t InterruptTypes) RDAEnabled() bool { return t&rda == rda }

// EnableTHRE enables the transmit holding register empty interrupt.
func (t InterruptTypes) EnableTHRE() InterruptTypes { return t | thre }

// DisableTHRE disables the transmit holding register empty interrupt.
func (t InterruptTypes) DisableTHRE() InterruptTypes { return t &^ thre }

// THREEnabled reports whether the transmit holding register empty interrupt is enabled.
func (t InterruptTypes) THREEnabled() bool { return t&thre == thre }

// EnableRLS enables the receiver line status interrupt.
func (t InterruptTypes) EnableRLS() InterruptTypes { return t | rls }

// DisableRLS disables the receiver line status interrupt.
func (t InterruptTypes) DisableRLS() InterruptTypes { return t &^ rls }

// RLSEnabled reports whether the receiver line status interrupt is enabled.
func (t InterruptTypes) RLSEnabled() bool { return t&rls == rls }

// EnableMS enables the modem status interrupt.
func (t InterruptTypes) EnableMS() InterruptTypes { return t | ms }

// DisableMS disables the modem status interrupt.
func (t InterruptTypes) DisableMS() InterruptTypes { return t &^ ms }

// MSEnabled reports whether the modem status interrupt is enabled.
func (t InterruptTypes) MSEnabled() bool { return t&ms == ms }

func (t InterruptTypes) String() string {
	var names []string
	if t.RDAEnabled() {
		names = append(names, "RDA")
	}
	if t.THREEnabled() {
		names = append(names, "THRE")
	}
	if t.RLSEnabled() {
		names = append(names, "RLS")
	}
	if t.MSEnabled() {
		names = append(names, "MS")
	}
	return fmt.Sprintf("0x%02x[%s]", uint8(t), strings.Join(names, "|"))
}
