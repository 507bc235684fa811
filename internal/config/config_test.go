package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", cfg.Integrator)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("expected dt %g, got %g", DefaultDt, cfg.Dt)
	}
	if cfg.LinkA.Theta != DefaultThetaA || cfg.LinkB.Theta != DefaultThetaB {
		t.Errorf("unexpected initial angles: %g, %g", cfg.LinkA.Theta, cfg.LinkB.Theta)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"zero trail capacity", func(c *Config) { c.TrailSize = 0 }},
		{"zero length", func(c *Config) { c.LinkA.Length = 0 }},
		{"negative mass", func(c *Config) { c.LinkB.Mass = -2 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Gravity = 1.625
	cfg.LinkB.Mass = 4.0
	cfg.TrailSize = 512

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Gravity != 1.625 {
		t.Errorf("expected gravity 1.625, got %g", loaded.Gravity)
	}
	if loaded.LinkB.Mass != 4.0 {
		t.Errorf("expected link_b mass 4.0, got %g", loaded.LinkB.Mass)
	}
	if loaded.TrailSize != 512 {
		t.Errorf("expected trail capacity 512, got %d", loaded.TrailSize)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("g: 3.73\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Gravity != 3.73 {
		t.Errorf("expected gravity 3.73, got %g", cfg.Gravity)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("unset fields must keep defaults, dt=%g", cfg.Dt)
	}
	if cfg.TrailSize != DefaultTrailSize {
		t.Errorf("unset fields must keep defaults, trail=%d", cfg.TrailSize)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.LinkA.Theta != 1.8 {
		t.Errorf("expected theta 1.8, got %f", cfg.LinkA.Theta)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAllValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %q does not validate: %v", name, err)
		}
	}
}

func TestGravityLookup(t *testing.T) {
	if g := Gravity("moon"); g != 1.625 {
		t.Errorf("expected moon gravity 1.625, got %g", g)
	}
	if g := Gravity("krypton"); g != 9.78 {
		t.Errorf("unknown body should fall back to earth, got %g", g)
	}
}

func TestBuildAndInitState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LinkA.Omega = 0.5

	dp := cfg.Build()
	if dp.G != DefaultGravity {
		t.Errorf("expected gravity %g, got %g", DefaultGravity, dp.G)
	}
	if dp.A.Omega != 0.5 {
		t.Errorf("expected omega 0.5, got %g", dp.A.Omega)
	}

	x0 := cfg.InitState()
	want := []float64{DefaultThetaA, DefaultThetaB, 0.5, 0}
	for i := range want {
		if x0[i] != want[i] {
			t.Errorf("init state [%d] = %g, want %g", i, x0[i], want[i])
		}
	}
}
