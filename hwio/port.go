//go:build unix

package hwio

import (
	"io"
	"os"

	"golang.org/x/sys/unix"

	"ns16550/uart16550"
)

// Port is a register file in the I/O port space, reached through the
// /dev/port character device. Cells wider than a byte are little endian.
type Port[R uart16550.Register] struct {
	f    *os.File
	base int64
}

func OpenPort[R uart16550.Register](path string, base int64) (*Port[R], error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &Port[R]{f: f, base: base}, nil
}

func (p *Port[R]) ReadAt(offset uint32) R {
	b := make([]byte, uart16550.Width[R]())
	n, err := unix.Pread(int(p.f.Fd()), b, p.base+int64(offset))
	if err == nil && n < len(b) {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		panic(&Fault{Op: "read", Offset: offset, Err: err})
	}
	return decode[R](b)
}

func (p *Port[R]) WriteAt(offset uint32, v R) {
	b := make([]byte, uart16550.Width[R]())
	encode(b, v)
	n, err := unix.Pwrite(int(p.f.Fd()), b, p.base+int64(offset))
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		panic(&Fault{Op: "write", Offset: offset, Err: err})
	}
}

func (p *Port[R]) Close() error { return p.f.Close() }

func decode[R uart16550.Register](b []byte) R {
	var v R
	for i := range b {
		v |= R(b[i]) << (8 * uint(i))
	}
	return v
}

func encode[R uart16550.Register](b []byte, v R) {
	for i := range b {
		b[i] = byte(v >> (8 * uint(i)))
	}
}
