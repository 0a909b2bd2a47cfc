package config

import (
	"sort"

	"github.com/san-kum/plife/internal/spawn"
)

var Presets = map[string]*Config{
	"emergence": DefaultConfig(),
	"real": func() *Config {
		cfg := DefaultConfig()
		cfg.Mode = "real"
		cfg.Particles = map[string]int{}
		cfg.Bodies = []BodyConfig{
			{Color: "blue", X: 500, Y: 500},
			{Color: "red", X: 500, Y: 400, VX: 3, VY: 1},
		}
		cfg.Forces = []ForceConfig{
			{From: "red", To: "blue", Value: 10},
			{From: "blue", To: "red", Value: -0.1},
		}
		return cfg
	}(),
	"chaos": func() *Config {
		cfg := DefaultConfig()
		cfg.Particles = map[string]int{"red": 500, "green": 500, "blue": 500, "yellow": 500}
		cfg.Forces = nil
		cfg.RandomForces = &RangeConfig{Min: -0.3, Max: 1.0}
		return cfg
	}(),
	"clusters": func() *Config {
		cfg := DefaultConfig()
		cfg.Layout = spawn.LayoutPerlin
		cfg.Particles = map[string]int{"red": 800, "green": 800, "blue": 800, "yellow": 800}
		return cfg
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
