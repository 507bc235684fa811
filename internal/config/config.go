package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendlab/internal/physics"
)

const (
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultGravity   = 9.78
	DefaultThetaA    = 1.8
	DefaultThetaB    = 1.0
	DefaultTrailSize = 1024
)

type Config struct {
	Integrator string     `yaml:"integrator"`
	Dt         float64    `yaml:"dt"`
	Duration   float64    `yaml:"duration"`
	Gravity    float64    `yaml:"g"`
	TrailSize  int        `yaml:"trail_capacity"`
	LinkA      LinkConfig `yaml:"link_a"`
	LinkB      LinkConfig `yaml:"link_b"`
}

type LinkConfig struct {
	Length float64 `yaml:"length"`
	Mass   float64 `yaml:"mass"`
	Theta  float64 `yaml:"theta"`
	Omega  float64 `yaml:"omega"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Gravity:    DefaultGravity,
		TrailSize:  DefaultTrailSize,
		LinkA:      LinkConfig{Length: 1.0, Mass: 1.0, Theta: DefaultThetaA},
		LinkB:      LinkConfig{Length: 1.0, Mass: 1.0, Theta: DefaultThetaB},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate enforces the construction-time contract: the physics core
// assumes positive lengths, masses and dt, and never re-checks them.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.TrailSize <= 0 {
		return fmt.Errorf("trail_capacity must be positive, got %d", c.TrailSize)
	}
	for name, l := range map[string]LinkConfig{"link_a": c.LinkA, "link_b": c.LinkB} {
		if l.Length <= 0 {
			return fmt.Errorf("%s: length must be positive, got %g", name, l.Length)
		}
		if l.Mass <= 0 {
			return fmt.Errorf("%s: mass must be positive, got %g", name, l.Mass)
		}
	}
	return nil
}

// Build constructs the pendulum described by the config.
func (c *Config) Build() *physics.DoublePendulum {
	return &physics.DoublePendulum{
		A: physics.Link{Length: c.LinkA.Length, Mass: c.LinkA.Mass, Theta: c.LinkA.Theta, Omega: c.LinkA.Omega},
		B: physics.Link{Length: c.LinkB.Length, Mass: c.LinkB.Mass, Theta: c.LinkB.Theta, Omega: c.LinkB.Omega},
		G: c.Gravity,
	}
}

// InitState returns the initial (θA, θB, ωA, ωB) vector.
func (c *Config) InitState() []float64 {
	return []float64{c.LinkA.Theta, c.LinkB.Theta, c.LinkA.Omega, c.LinkB.Omega}
}
