package sim

import (
	"io"

	"ns16550/uart16550"
)

const (
	lsrDataReady = 1 << 0
	lsrTHREmpty  = 1 << 5
	lsrTxEmpty   = 1 << 6

	iirNoPending = 0x01
	iirTHRE      = 0x02
	iirRDA       = 0x04
	iirFIFOs     = 0xc0

	fcrEnable   = 1 << 0
	fcrClearRx  = 1 << 1
	mcrLoopback = 1 << 4

	dlab = uart16550.LCRDivisorLatchAccess
)

// UART emulates a 16550 register file. Transmitted bytes are written to
// Out; received bytes are queued with Receive. The transmitter is always
// ready, so THR never holds a byte.
type UART struct {
	Out io.Writer

	shift uint
	rx    []byte

	ier, lcr, mcr, fcr, scr uint8
	dll, dlh                uint8
	thrEmptied              bool // THRE interrupt latched until IIR is read
}

// NewUART returns a UART whose registers are spaced 1<<shift bytes apart.
func NewUART(out io.Writer, shift uint) *UART {
	return &UART{Out: out, shift: shift}
}

// Size is the length of the bus window the UART decodes.
func (u *UART) Size() uint32 { return uart16550.NumRegisters << u.shift }

// Tx sends one byte to the console, or back to the receiver in loopback.
func (u *UART) Tx(b uint8) {
	if u.mcr&mcrLoopback != 0 {
		u.rx = append(u.rx, b)
		return
	}
	if u.Out != nil {
		// Console output is best effort, like a line with nothing attached.
		u.Out.Write([]byte{b})
	}
}

// Receive queues bytes as if they arrived on the line.
func (u *UART) Receive(b ...byte) { u.rx = append(u.rx, b...) }

// Divisor returns the baud rate divisor held in DLL/DLH.
func (u *UART) Divisor() uint16 { return uint16(u.dlh)<<8 | uint16(u.dll) }

func (u *UART) interrupts() uart16550.InterruptTypes {
	return uart16550.InterruptTypes(u.ier)
}

// Pending reports whether the interrupt line is asserted.
func (u *UART) Pending() bool { return u.iir()&iirNoPending == 0 }

func (u *UART) iir() uint8 {
	var v uint8 = iirNoPending
	switch {
	case u.interrupts().RDAEnabled() && len(u.rx) > 0:
		v = iirRDA
	case u.thrEmptied:
		v = iirTHRE
	}
	if u.fcr&fcrEnable != 0 {
		v |= iirFIFOs
	}
	return v
}

func (u *UART) decode(offs uint32) (uint32, bool) {
	if offs&(1<<u.shift-1) != 0 {
		return 0, false
	}
	return offs >> u.shift, true
}

func (u *UART) Read(offs uint32, size int) (uint32, bool) {
	idx, ok := u.decode(offs)
	if !ok {
		return 0, true
	}
	switch idx {
	case 0:
		if u.lcr&dlab != 0 {
			return uint32(u.dll), true
		}
		if len(u.rx) == 0 {
			return 0, true
		}
		b := u.rx[0]
		u.rx = u.rx[1:]
		return uint32(b), true
	case 1:
		if u.lcr&dlab != 0 {
			return uint32(u.dlh), true
		}
		return uint32(u.ier), true
	case 2:
		v := u.iir()
		if v&0x0f == iirTHRE {
			u.thrEmptied = false
		}
		return uint32(v), true
	case 3:
		return uint32(u.lcr), true
	case 4:
		return uint32(u.mcr), true
	case 5:
		var v uint8 = lsrTHREmpty | lsrTxEmpty
		if len(u.rx) > 0 {
			v |= lsrDataReady
		}
		return uint32(v), true
	case 6:
		return 0, true
	case 7:
		return uint32(u.scr), true
	}
	return 0, true
}

func (u *UART) Write(offs uint32, size int, v uint32) bool {
	idx, ok := u.decode(offs)
	if !ok {
		return true
	}
	b := uint8(v)
	switch idx {
	case 0:
		if u.lcr&dlab != 0 {
			u.dll = b
			return true
		}
		u.Tx(b)
		if u.interrupts().THREEnabled() {
			u.thrEmptied = true
		}
	case 1:
		if u.lcr&dlab != 0 {
			u.dlh = b
			return true
		}
		was := u.interrupts().THREEnabled()
		u.ier = b
		if !u.interrupts().THREEnabled() {
			u.thrEmptied = false
		} else if !was {
			u.thrEmptied = true
		}
	case 2:
		if b&fcrClearRx != 0 {
			u.rx = u.rx[:0]
		}
		u.fcr = b
	case 3:
		u.lcr = b
	case 4:
		u.mcr = b
	case 7:
		u.scr = b
	}
	return true
}
