package uart16550

import (
	"reflect"
	"testing"
)

func TestLayoutOffsets(t *testing.T) {
	l := NewLayout[uint32](2)

	if l.IER.Offset() != 4 {
		t.Fatalf("IER offset = %d, want 4", l.IER.Offset())
	}
	if l.LCR() != 12 || l.SCR() != 28 || l.Size() != 32 {
		t.Fatalf("LCR=%d SCR=%d size=%d", l.LCR(), l.SCR(), l.Size())
	}
	if off, ok := l.Offset("DLH"); !ok || off != l.IER.Offset() {
		t.Fatalf("DLH offset = %d, %v", off, ok)
	}
	if _, ok := l.Offset("XYZ"); ok {
		t.Fatalf("unknown register resolved")
	}
}

func TestLayoutNames(t *testing.T) {
	want := []string{
		"DLL", "RBR", "THR",
		"DLH", "IER",
		"FCR", "IIR",
		"LCR", "MCR", "LSR", "MSR", "SCR",
	}
	if got := NewLayout[uint8](0).Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
