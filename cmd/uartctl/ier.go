//go:build unix

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ns16550/uart16550"
)

type flagOp func(uart16550.InterruptTypes) uart16550.InterruptTypes

var (
	enableOps = map[string]flagOp{
		"rda":  uart16550.InterruptTypes.EnableRDA,
		"thre": uart16550.InterruptTypes.EnableTHRE,
		"rls":  uart16550.InterruptTypes.EnableRLS,
		"ms":   uart16550.InterruptTypes.EnableMS,
	}
	disableOps = map[string]flagOp{
		"rda":  uart16550.InterruptTypes.DisableRDA,
		"thre": uart16550.InterruptTypes.DisableTHRE,
		"rls":  uart16550.InterruptTypes.DisableRLS,
		"ms":   uart16550.InterruptTypes.DisableMS,
	}
)

var (
	ierCmd = &cobra.Command{
		Use:   "ier",
		Short: "Interrupt Enable Register",
	}

	ierGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Print the enabled interrupt sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Flags(), func(s *session) error {
				fmt.Fprintln(cmd.OutOrStdout(), s.layout.IER.Read(s.regs))
				return nil
			})
		},
	}

	ierEnableCmd = &cobra.Command{
		Use:       "enable rda|thre|rls|ms...",
		Short:     "Enable interrupt sources",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"rda", "thre", "rls", "ms"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Flags(), func(s *session) error {
				return updateIER(s, enableOps, args, cmd.OutOrStdout())
			})
		},
	}

	ierDisableCmd = &cobra.Command{
		Use:       "disable rda|thre|rls|ms...",
		Short:     "Disable interrupt sources",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"rda", "thre", "rls", "ms"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Flags(), func(s *session) error {
				return updateIER(s, disableOps, args, cmd.OutOrStdout())
			})
		},
	}
)

func init() {
	ierCmd.AddCommand(ierGetCmd, ierEnableCmd, ierDisableCmd)
}

// updateIER applies the named operations to the current IER value,
// writes the result and prints what the register reads back.
func updateIER(s *session, ops map[string]flagOp, names []string, out io.Writer) error {
	v := s.layout.IER.Read(s.regs)
	for _, name := range names {
		op, ok := ops[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown interrupt source %q", name)
		}
		v = op(v)
	}
	s.layout.IER.Write(s.regs, v)
	fmt.Fprintln(out, s.layout.IER.Read(s.regs))
	return nil
}
