// Package config loads the description of how to reach a UART.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	BackendSim  = "sim"
	BackendMMIO = "mmio"
	BackendPort = "port"
)

var (
	ErrBackend  = errors.New("unknown backend")
	ErrWidth    = errors.New("register width must be 1, 2 or 4")
	ErrShift    = errors.New("register shift out of range")
	ErrDevice   = errors.New("device path required")
	ErrGeometry = errors.New("register width exceeds register stride")
)

// Config selects a backend and the register file geometry.
type Config struct {
	Backend string `yaml:"backend"`
	Device  string `yaml:"device"`
	Base    uint64 `yaml:"base"`

	// RegShift is log2 of the register stride in bytes.
	RegShift uint `yaml:"regShift"`
	// RegWidth is the access width in bytes.
	RegWidth int `yaml:"regWidth"`
}

// Default describes the emulated UART at the virt machine UART base.
func Default() Config {
	return Config{
		Backend:  BackendSim,
		Base:     0x10000000,
		RegShift: 0,
		RegWidth: 1,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSim:
	case BackendMMIO, BackendPort:
		if c.Device == "" {
			return fmt.Errorf("%w for backend %q", ErrDevice, c.Backend)
		}
	default:
		return fmt.Errorf("%w %q", ErrBackend, c.Backend)
	}
	switch c.RegWidth {
	case 1, 2, 4:
	default:
		return fmt.Errorf("%w, got %d", ErrWidth, c.RegWidth)
	}
	if c.RegShift > 4 {
		return fmt.Errorf("%w: %d", ErrShift, c.RegShift)
	}
	if c.RegWidth > 1<<c.RegShift {
		return fmt.Errorf("%w: width %d, stride %d", ErrGeometry, c.RegWidth, 1<<c.RegShift)
	}
	if c.Backend == BackendSim && c.Base > 0xffffffff {
		return fmt.Errorf("sim base 0x%x exceeds the 32-bit bus", c.Base)
	}
	return nil
}
