//go:build unix

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"ns16550/config"
	"ns16550/hwio"
	"ns16550/sim"
	"ns16550/uart16550"
)

// cells32 presents an R wide register file as 32-bit cells. Accesses
// still go to the backend at width R.
type cells32[R uart16550.Register] struct {
	regs uart16550.IO[R]
}

func (c cells32[R]) ReadAt(offset uint32) uint32     { return uint32(c.regs.ReadAt(offset)) }
func (c cells32[R]) WriteAt(offset uint32, v uint32) { c.regs.WriteAt(offset, R(v)) }

// session is an open register file plus its layout.
type session struct {
	regs   uart16550.IO[uint32]
	layout uart16550.Layout[uint32]
	uart   *sim.UART // emulated backend only
	width  int       // backend access width in bytes
	close  func() error
}

// checkValue rejects values that do not fit the backend access width.
func (s *session) checkValue(v uint32) error {
	if s.width < 4 && v >= 1<<(8*s.width) {
		return fmt.Errorf("value 0x%x does not fit a %d byte register", v, s.width)
	}
	return nil
}

func (s *session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func openSession(c config.Config) (*session, error) {
	switch c.RegWidth {
	case 1:
		return openWidth[uint8](c)
	case 2:
		return openWidth[uint16](c)
	case 4:
		return openWidth[uint32](c)
	}
	return nil, fmt.Errorf("%w, got %d", config.ErrWidth, c.RegWidth)
}

func openWidth[R uart16550.Register](c config.Config) (*session, error) {
	s := &session{
		layout: uart16550.NewLayout[uint32](c.RegShift),
		width:  uart16550.Width[R](),
	}
	switch c.Backend {
	case config.BackendSim:
		s.uart = sim.NewUART(os.Stdout, c.RegShift)
		bus := sim.NewBus()
		if err := bus.Map(uint32(c.Base), s.uart.Size(), s.uart); err != nil {
			return nil, err
		}
		s.regs = cells32[R]{sim.NewWindow[R](bus, uint32(c.Base))}
	case config.BackendMMIO:
		m, err := hwio.Map[R](c.Device, int64(c.Base), int(s.layout.Size()))
		if err != nil {
			return nil, err
		}
		s.regs, s.close = cells32[R]{m}, m.Close
	case config.BackendPort:
		p, err := hwio.OpenPort[R](c.Device, int64(c.Base))
		if err != nil {
			return nil, err
		}
		s.regs, s.close = cells32[R]{p}, p.Close
	default:
		return nil, fmt.Errorf("%w %q", config.ErrBackend, c.Backend)
	}
	return s, nil
}

// guard turns a backend fault raised during f into an error.
func guard(f func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch r := r.(type) {
		case *hwio.Fault:
			err = r
		case *sim.Trap:
			err = r
		default:
			panic(r)
		}
	}()
	return f()
}

// withSession resolves the config, opens the register file and runs f
// against it.
func withSession(fs *pflag.FlagSet, f func(*session) error) error {
	c, err := resolveConfig(fs)
	if err != nil {
		return err
	}
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()
	return guard(func() error { return f(s) })
}
