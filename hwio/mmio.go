//go:build unix

package hwio

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"ns16550/uart16550"
)

var ErrBadOffset = errors.New("offset outside mapped window or misaligned")

// MMIO is a memory mapped register window.
type MMIO[R uart16550.Register] struct {
	f     *os.File
	page  []byte // whole mapping, page aligned
	mem   []byte // the requested window inside page
	width int
}

// Map maps size bytes of path starting at the physical address base.
// base need not be page aligned.
func Map[R uart16550.Register](path string, base int64, size int) (*MMIO[R], error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	pageOff := base % int64(unix.Getpagesize())
	page, err := unix.Mmap(int(f.Fd()), base-pageOff, int(pageOff)+size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s at 0x%x: %w", path, base, err)
	}
	return &MMIO[R]{
		f:     f,
		page:  page,
		mem:   page[pageOff:],
		width: uart16550.Width[R](),
	}, nil
}

func (m *MMIO[R]) ptr(op string, offset uint32) unsafe.Pointer {
	if int(offset)+m.width > len(m.mem) || offset%uint32(m.width) != 0 {
		panic(&Fault{Op: op, Offset: offset, Err: ErrBadOffset})
	}
	return unsafe.Pointer(&m.mem[offset])
}

// ReadAt performs a single load of the cell width.
func (m *MMIO[R]) ReadAt(offset uint32) R {
	p := m.ptr("read", offset)
	switch m.width {
	case 1:
		return R(*(*uint8)(p))
	case 2:
		return R(*(*uint16)(p))
	}
	return R(atomic.LoadUint32((*uint32)(p)))
}

// WriteAt performs a single store of the cell width.
func (m *MMIO[R]) WriteAt(offset uint32, v R) {
	p := m.ptr("write", offset)
	switch m.width {
	case 1:
		*(*uint8)(p) = uint8(v)
	case 2:
		*(*uint16)(p) = uint16(v)
	default:
		atomic.StoreUint32((*uint32)(p), uint32(v))
	}
}

func (m *MMIO[R]) Close() error {
	err := unix.Munmap(m.page)
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
