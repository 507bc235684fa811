package config

// Surface gravities in m/s^2, from the NSSDC planetary fact sheets.
var gravities = map[string]float64{
	"earth":   9.78,
	"moon":    1.625,
	"mars":    3.73,
	"jupiter": 23.12,
	"sun":     274.0,
}

var Presets = map[string]*Config{
	"classic": {
		Integrator: "rk4", Dt: 0.01, Duration: 30.0, Gravity: 9.78, TrailSize: 1024,
		LinkA: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 1.8},
		LinkB: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 1.0},
	},
	"chaos": {
		Integrator: "rk4", Dt: 0.005, Duration: 60.0, Gravity: 9.78, TrailSize: 1024,
		LinkA: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 3.0},
		LinkB: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 3.0},
	},
	"gentle": {
		Integrator: "rk4", Dt: 0.01, Duration: 30.0, Gravity: 9.78, TrailSize: 1024,
		LinkA: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 0.3},
		LinkB: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 0.3},
	},
	"heavy-bob": {
		Integrator: "rk4", Dt: 0.005, Duration: 30.0, Gravity: 9.78, TrailSize: 1024,
		LinkA: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 1.5},
		LinkB: LinkConfig{Length: 0.6, Mass: 4.0, Theta: 1.5},
	},
	"moon": {
		Integrator: "rk4", Dt: 0.01, Duration: 60.0, Gravity: gravities["moon"], TrailSize: 1024,
		LinkA: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 1.8},
		LinkB: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 1.0},
	},
	"jupiter": {
		Integrator: "rk4", Dt: 0.005, Duration: 30.0, Gravity: gravities["jupiter"], TrailSize: 1024,
		LinkA: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 1.8},
		LinkB: LinkConfig{Length: 1.0, Mass: 1.0, Theta: 1.0},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

// Gravity looks up a named surface gravity; falls back to Earth.
func Gravity(body string) float64 {
	if g, ok := gravities[body]; ok {
		return g
	}
	return gravities["earth"]
}
