package uart16550

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// cells is an in-memory register file.
type cells[R Register] map[uint32]R

func (c cells[R]) ReadAt(offset uint32) R     { return c[offset] }
func (c cells[R]) WriteAt(offset uint32, v R) { c[offset] = v }

type source struct {
	name    string
	bit     uint
	enable  func(InterruptTypes) InterruptTypes
	disable func(InterruptTypes) InterruptTypes
	enabled func(InterruptTypes) bool
}

var sources = []source{
	{"RDA", 0, InterruptTypes.EnableRDA, InterruptTypes.DisableRDA, InterruptTypes.RDAEnabled},
	{"THRE", 1, InterruptTypes.EnableTHRE, InterruptTypes.DisableTHRE, InterruptTypes.THREEnabled},
	{"RLS", 2, InterruptTypes.EnableRLS, InterruptTypes.DisableRLS, InterruptTypes.RLSEnabled},
	{"MS", 3, InterruptTypes.EnableMS, InterruptTypes.DisableMS, InterruptTypes.MSEnabled},
}

func allValues() []InterruptTypes {
	vs := make([]InterruptTypes, 256)
	for i := range vs {
		vs[i] = InterruptTypes(i)
	}
	return vs
}

func TestEnabledMatchesBit(t *testing.T) {
	for _, v := range allValues() {
		for _, s := range sources {
			want := uint8(v)&(1<<s.bit) != 0
			if got := s.enabled(v); got != want {
				t.Fatalf("%s enabled on 0x%02x: got %v, want %v", s.name, uint8(v), got, want)
			}
		}
	}
}

func TestEnableDisable(t *testing.T) {
	for _, v := range allValues() {
		for _, s := range sources {
			if !s.enabled(s.enable(v)) {
				t.Fatalf("%s not enabled after enable on 0x%02x", s.name, uint8(v))
			}
			if s.enabled(s.disable(v)) {
				t.Fatalf("%s still enabled after disable on 0x%02x", s.name, uint8(v))
			}
			if s.enable(s.enable(v)) != s.enable(v) {
				t.Fatalf("enable %s not idempotent on 0x%02x", s.name, uint8(v))
			}
			if s.disable(s.disable(v)) != s.disable(v) {
				t.Fatalf("disable %s not idempotent on 0x%02x", s.name, uint8(v))
			}
		}
	}
}

func TestSourcesIndependent(t *testing.T) {
	for _, v := range allValues() {
		for _, changed := range sources {
			for _, other := range sources {
				if other.name == changed.name {
					continue
				}
				if other.enabled(changed.enable(v)) != other.enabled(v) ||
					other.enabled(changed.disable(v)) != other.enabled(v) {
					t.Fatalf("changing %s altered %s on 0x%02x", changed.name, other.name, uint8(v))
				}
			}
		}
	}
}

func TestUndefinedBitsPreserved(t *testing.T) {
	v := InterruptTypes(0xf0)
	for _, s := range sources {
		if got := s.disable(s.enable(v)); got != v {
			t.Fatalf("%s round trip: got 0x%02x, want 0x%02x", s.name, uint8(got), uint8(v))
		}
	}
}

func TestNoInterrupts(t *testing.T) {
	var zero InterruptTypes
	if NoInterrupts != zero {
		t.Fatalf("NoInterrupts is not the zero value")
	}
	for _, s := range sources {
		if s.enabled(NoInterrupts) {
			t.Errorf("%s enabled in NoInterrupts", s.name)
		}
	}
}

func TestEnableSequence(t *testing.T) {
	got := NoInterrupts.EnableRDA().EnableTHRE().DisableRDA()
	if uint8(got) != 0b0000_0010 {
		t.Fatalf("got 0b%08b, want 0b00000010", uint8(got))
	}
}

func TestString(t *testing.T) {
	if got, want := NoInterrupts.EnableRDA().EnableMS().String(), "0x09[RDA|MS]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := InterruptTypes(0x20).String(), "0x20[]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIERRoundTrip(t *testing.T) {
	regs := cells[uint8]{}
	ier := NewIER[uint8](5)

	ier.Write(regs, NoInterrupts.EnableRDA().EnableMS())
	got := ier.Read(regs)
	if !got.RDAEnabled() || !got.MSEnabled() || got.THREEnabled() || got.RLSEnabled() {
		t.Fatalf("unexpected flags after round trip:\n%s", spew.Sdump(got, regs))
	}
	if regs[5] != 0x09 {
		t.Fatalf("cell 5 = 0x%02x, want 0x09", regs[5])
	}
}

func TestIERReadPassesHighBits(t *testing.T) {
	regs := cells[uint8]{1: 0xa5}
	if got := NewIER[uint8](1).Read(regs); uint8(got) != 0xa5 {
		t.Fatalf("got 0x%02x, want 0xa5", uint8(got))
	}
}

func TestIERWideCell(t *testing.T) {
	regs := cells[uint32]{}
	ier := NewIER[uint32](4)

	ier.Write(regs, NoInterrupts.EnableTHRE())
	if regs[4] != 0x02 {
		t.Fatalf("cell 4 = 0x%08x, want 0x02", regs[4])
	}

	// Bits beyond the low byte are not part of this register.
	regs[4] = 0xdead_be04
	if got := ier.Read(regs); got != NoInterrupts.EnableRLS() {
		t.Fatalf("got %v, want RLS only", got)
	}
}

func TestWriteDivisor(t *testing.T) {
	regs := cells[uint16]{}
	ier := NewIER[uint16](2)

	ier.WriteDivisor(regs, 0x1ff)
	if got := regs.ReadAt(2); got != 0x1ff {
		t.Fatalf("raw read = 0x%x, want 0x1ff", got)
	}
}

func TestWidth(t *testing.T) {
	if Width[uint8]() != 1 || Width[uint16]() != 2 || Width[uint32]() != 4 {
		t.Fatalf("widths: %d %d %d", Width[uint8](), Width[uint16](), Width[uint32]())
	}
}
