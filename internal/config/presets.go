package config

import (
	"sort"
	"time"
)

var Presets = map[string]*Config{
	"classic": {
		FrameInterval: 100 * time.Millisecond, Color: true, Palette: "classic", Theme: "classic",
		Probabilities: Probabilities{Start: 80, Break: 10, Change: 2, LenIncrease: 10, FallDrop: 2},
	},
	"storm": {
		FrameInterval: 50 * time.Millisecond, Color: true, Palette: "classic", Theme: "retro",
		Probabilities: Probabilities{Start: 20, Break: 25, Change: 2, LenIncrease: 3, FallDrop: 1, Spawn: 4},
	},
	"drizzle": {
		FrameInterval: 120 * time.Millisecond, Color: true, Palette: "latin", Theme: "ocean",
		Probabilities: Probabilities{Start: 200, Break: 4, Change: 4, LenIncrease: 6, FallDrop: 3},
	},
	"glitch": {
		FrameInterval: 80 * time.Millisecond, Color: true, Palette: "binary", Theme: "sunset",
		Probabilities: Probabilities{Start: 40, Break: 8, Change: 1, LenIncrease: 8, FallDrop: 2},
	},
}

// GetPreset returns a copy of the named preset, nil when unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
