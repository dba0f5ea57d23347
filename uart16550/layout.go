package uart16550

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Register indices of the 16550 register file. Aliased indices are
// selected by access direction or by LCR.DLAB.
const (
	idxRBR = 0 // read, DLAB=0; THR on write; DLL with DLAB=1
	idxIER = 1 // DLH with DLAB=1
	idxIIR = 2 // read; FCR on write
	idxLCR = 3
	idxMCR = 4
	idxLSR = 5
	idxMSR = 6
	idxSCR = 7

	// NumRegisters is the number of register slots in the file.
	NumRegisters = 8
)

// LCRDivisorLatchAccess is the LCR bit that overlays DLL/DLH on the
// RBR/THR and IER offsets.
const LCRDivisorLatchAccess = 1 << 7

// Layout is the register map of one controller. Registers are spaced
// 1<<Shift bytes apart, matching the device tree reg-shift property.
type Layout[R Register] struct {
	Shift uint

	IER IER[R]
}

func NewLayout[R Register](shift uint) Layout[R] {
	l := Layout[R]{Shift: shift}
	l.IER = NewIER[R](l.offset(idxIER))
	return l
}

func (l Layout[R]) offset(idx uint32) uint32 { return idx << l.Shift }

// Size is the byte length of the register file.
func (l Layout[R]) Size() uint32 { return l.offset(NumRegisters) }

func (l Layout[R]) RBR() uint32 { return l.offset(idxRBR) }
func (l Layout[R]) THR() uint32 { return l.offset(idxRBR) }
func (l Layout[R]) DLL() uint32 { return l.offset(idxRBR) }
func (l Layout[R]) IIR() uint32 { return l.offset(idxIIR) }
func (l Layout[R]) FCR() uint32 { return l.offset(idxIIR) }
func (l Layout[R]) LCR() uint32 { return l.offset(idxLCR) }
func (l Layout[R]) MCR() uint32 { return l.offset(idxMCR) }
func (l Layout[R]) LSR() uint32 { return l.offset(idxLSR) }
func (l Layout[R]) MSR() uint32 { return l.offset(idxMSR) }
func (l Layout[R]) SCR() uint32 { return l.offset(idxSCR) }

var registerIndex = map[string]uint32{
	"RBR": idxRBR, "THR": idxRBR, "DLL": idxRBR,
	"IER": idxIER, "DLH": idxIER,
	"IIR": idxIIR, "FCR": idxIIR,
	"LCR": idxLCR,
	"MCR": idxMCR,
	"LSR": idxLSR,
	"MSR": idxMSR,
	"SCR": idxSCR,
}

// Names returns the register names ordered by offset, then by name.
func (l Layout[R]) Names() []string {
	byIndex := make([][]string, NumRegisters)
	for _, name := range maps.Keys(registerIndex) {
		idx := registerIndex[name]
		byIndex[idx] = append(byIndex[idx], name)
	}
	names := make([]string, 0, len(registerIndex))
	for _, group := range byIndex {
		slices.Sort(group)
		names = append(names, group...)
	}
	return names
}

// Offset returns the byte offset of the named register.
func (l Layout[R]) Offset(name string) (uint32, bool) {
	idx, ok := registerIndex[name]
	if !ok {
		return 0, false
	}
	return l.offset(idx), true
}
