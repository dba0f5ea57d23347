//go:build unix

package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ns16550/config"
)

var (
	configPath string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:           "uartctl",
		Short:         "Inspect and program a 16550 UART register file",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

func init() {
	fs := rootCmd.PersistentFlags()
	fs.StringVarP(&configPath, "config", "c", "", "YAML config file")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log the resolved configuration")
	bindBackendFlags(fs)

	rootCmd.AddCommand(ierCmd, divisorCmd, regsCmd, regCmd)
}

func bindBackendFlags(fs *pflag.FlagSet) {
	d := config.Default()
	fs.String("backend", d.Backend, "Register backend: sim, mmio or port")
	fs.String("device", d.Device, "Device file for mmio (/dev/mem) or port (/dev/port)")
	fs.Uint64("base", d.Base, "Physical address or port of the register file")
	fs.Uint("shift", d.RegShift, "log2 of the register stride")
	fs.Int("width", d.RegWidth, "Register access width in bytes")
}

// resolveConfig loads the config file, if any, and applies flags the
// user set explicitly on top of it.
func resolveConfig(fs *pflag.FlagSet) (config.Config, error) {
	c := config.Default()
	if configPath != "" {
		var err error
		if c, err = config.Load(configPath); err != nil {
			return c, err
		}
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "backend":
			c.Backend, err = fs.GetString(f.Name)
		case "device":
			c.Device, err = fs.GetString(f.Name)
		case "base":
			c.Base, err = fs.GetUint64(f.Name)
		case "shift":
			c.RegShift, err = fs.GetUint(f.Name)
		case "width":
			c.RegWidth, err = fs.GetInt(f.Name)
		}
	})
	if err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	if verbose {
		log.Printf("backend=%s device=%q base=0x%x shift=%d width=%d",
			c.Backend, c.Device, c.Base, c.RegShift, c.RegWidth)
	}
	return c, nil
}
