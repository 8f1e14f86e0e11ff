// Package boilerconfig loads the immutable boiler-characteristics Config
// consumed by every other package, from a YAML profile the same way device
// profiles are loaded elsewhere in this codebase.
package boilerconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes the physical characteristics of one boiler. It is
// immutable for the controller's lifetime.
type Config struct {
	PumpCapacity []float64     `yaml:"pump_capacity"`
	Capacity     float64       `yaml:"capacity"`
	MinNormal    float64       `yaml:"min_normal"`
	MaxNormal    float64       `yaml:"max_normal"`
	MinSafe      float64       `yaml:"min_safe"`
	MaxSafe      float64       `yaml:"max_safe"`
	MaxSteam     float64       `yaml:"max_steam"`
	CyclePeriod  time.Duration `yaml:"cycle_period"`
}

// PumpCount returns N, the number of feed pumps.
func (c Config) PumpCount() int { return len(c.PumpCapacity) }

// Throughput returns pump i's throughput in volume units per second.
func (c Config) Throughput(i int) float64 { return c.PumpCapacity[i] }

// TotalThroughput returns the sum of every pump's throughput.
func (c Config) TotalThroughput() float64 {
	total := 0.0
	for _, c := range c.PumpCapacity {
		total += c
	}
	return total
}

// Period returns T, the cycle period, defaulting to 5 seconds if unset.
func (c Config) Period() time.Duration {
	if c.CyclePeriod <= 0 {
		return 5 * time.Second
	}
	return c.CyclePeriod
}

// Validate checks the invariants the rest of the system assumes hold:
// a non-empty pump set and a properly nested safety/normal band.
func (c Config) Validate() error {
	if len(c.PumpCapacity) == 0 {
		return fmt.Errorf("boilerconfig: at least one pump is required")
	}
	for i, cap := range c.PumpCapacity {
		if cap <= 0 {
			return fmt.Errorf("boilerconfig: pump %d capacity must be positive, got %v", i, cap)
		}
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("boilerconfig: capacity must be positive, got %v", c.Capacity)
	}
	if !(c.MinSafe < c.MinNormal && c.MinNormal < c.MaxNormal && c.MaxNormal < c.MaxSafe) {
		return fmt.Errorf("boilerconfig: bands must satisfy min_safe < min_normal < max_normal < max_safe, got %v < %v < %v < %v",
			c.MinSafe, c.MinNormal, c.MaxNormal, c.MaxSafe)
	}
	if c.MaxSafe > c.Capacity {
		return fmt.Errorf("boilerconfig: max_safe (%v) must not exceed capacity (%v)", c.MaxSafe, c.Capacity)
	}
	if c.MaxSteam <= 0 {
		return fmt.Errorf("boilerconfig: max_steam must be positive, got %v", c.MaxSteam)
	}
	return nil
}

// Load reads and parses a YAML Config file, validating it before returning.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &c, nil
}
