//go:build unix

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/exp/constraints"

	"ns16550/uart16550"
)

var divisorCmd = &cobra.Command{
	Use:   "divisor N",
	Short: "Program the baud rate divisor latch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseUint[uint16](args[0])
		if err != nil {
			return fmt.Errorf("divisor: %w", err)
		}
		return withSession(cmd.Flags(), func(s *session) error {
			setDivisor(s.regs, s.layout, d)
			if s.uart != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "divisor latch = %d\n", s.uart.Divisor())
			}
			return nil
		})
	},
}

// setDivisor opens the divisor latch through LCR.DLAB, writes both
// halves and restores LCR.
func setDivisor[R uart16550.Register](regs uart16550.IO[R], l uart16550.Layout[R], d uint16) {
	lcr := regs.ReadAt(l.LCR())
	regs.WriteAt(l.LCR(), lcr|uart16550.LCRDivisorLatchAccess)
	regs.WriteAt(l.DLL(), R(d&0xff))
	l.IER.WriteDivisor(regs, R(d>>8))
	regs.WriteAt(l.LCR(), lcr)
}

func bitSize[T constraints.Unsigned]() int {
	n := 0
	for v := ^T(0); v != 0; v >>= 1 {
		n++
	}
	return n
}

// parseUint accepts decimal, 0x hex, 0o octal and 0b binary.
func parseUint[T constraints.Unsigned](s string) (T, error) {
	v, err := strconv.ParseUint(s, 0, bitSize[T]())
	return T(v), err
}
