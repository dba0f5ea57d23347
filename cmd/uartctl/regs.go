//go:build unix

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ns16550/uart16550"
)

var (
	regsCmd = &cobra.Command{
		Use:   "regs",
		Short: "List the register map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}
			l := uart16550.NewLayout[uint32](c.RegShift)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range l.Names() {
				off, _ := l.Offset(name)
				fmt.Fprintf(w, "%s\t0x%x\t0x%x\n", name, off, c.Base+uint64(off))
			}
			return w.Flush()
		},
	}

	regCmd = &cobra.Command{
		Use:   "reg NAME [VALUE]",
		Short: "Read or write a register by name",
		Long: "Read or write a register by name. Reads of RBR, IIR and LSR have side\n" +
			"effects on real hardware. DLL and DLH are only reachable with LCR.DLAB set.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToUpper(args[0])
			var v uint32
			if len(args) == 2 {
				var err error
				if v, err = parseUint[uint32](args[1]); err != nil {
					return fmt.Errorf("value: %w", err)
				}
			}
			return withSession(cmd.Flags(), func(s *session) error {
				off, ok := s.layout.Offset(name)
				if !ok {
					return fmt.Errorf("unknown register %q", args[0])
				}
				if len(args) == 2 {
					if err := s.checkValue(v); err != nil {
						return err
					}
					s.regs.WriteAt(off, v)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = 0x%02x\n", name, s.regs.ReadAt(off))
				return nil
			})
		},
	}
)
