package sim

import (
	"errors"

	"golang.org/x/exp/slices"
)

// Device is a peripheral mapped into a bus window. Offsets are relative
// to the start of the window; size is the access width in bytes.
type Device interface {
	Read(offs uint32, size int) (uint32, bool)
	Write(offs uint32, size int, v uint32) bool
}

var ErrOverlap = errors.New("sim: window overlaps an existing mapping")

type mapping struct {
	start, length uint32
	dev           Device
}

func (m mapping) contains(addr uint32) bool {
	return addr >= m.start && addr-m.start < m.length
}

// Bus routes sized accesses to the device mapped at the address.
// Unmapped addresses report ok=false.
type Bus struct {
	maps []mapping // sorted by start
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Map(start, length uint32, dev Device) error {
	i := 0
	for ; i < len(b.maps); i++ {
		m := b.maps[i]
		if start < m.start+m.length && m.start < start+length {
			return ErrOverlap
		}
		if start < m.start {
			break
		}
	}
	b.maps = slices.Insert(b.maps, i, mapping{start: start, length: length, dev: dev})
	return nil
}

func (b *Bus) find(addr uint32) (mapping, bool) {
	for _, m := range b.maps {
		if m.contains(addr) {
			return m, true
		}
	}
	return mapping{}, false
}

func (b *Bus) Read(addr uint32, size int) (uint32, bool) {
	m, ok := b.find(addr)
	if !ok || !m.contains(addr+uint32(size)-1) {
		return 0, false
	}
	return m.dev.Read(addr-m.start, size)
}

func (b *Bus) Write(addr uint32, size int, v uint32) bool {
	m, ok := b.find(addr)
	if !ok || !m.contains(addr+uint32(size)-1) {
		return false
	}
	return m.dev.Write(addr-m.start, size, v)
}

func (b *Bus) Read8(addr uint32) (uint8, bool) {
	v, ok := b.Read(addr, 1)
	return uint8(v), ok
}

func (b *Bus) Read16(addr uint32) (uint16, bool) {
	v, ok := b.Read(addr, 2)
	return uint16(v), ok
}

func (b *Bus) Read32(addr uint32) (uint32, bool) { return b.Read(addr, 4) }

func (b *Bus) Write8(addr uint32, v uint8) bool   { return b.Write(addr, 1, uint32(v)) }
func (b *Bus) Write16(addr uint32, v uint16) bool { return b.Write(addr, 2, uint32(v)) }
func (b *Bus) Write32(addr uint32, v uint32) bool { return b.Write(addr, 4, v) }
