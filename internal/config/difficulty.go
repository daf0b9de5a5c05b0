package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficulty resolves a preset name. The empty string means normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// StartLevelForPreset returns the starting level a preset imposes, or 0 when
// the configured start level is kept.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 10
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables level progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// WithPreset returns cfg adjusted for a preset. Normal and fixed keep the
// configured start level; easy and hard also relax or tighten lock delay.
func WithPreset(cfg TetrisConfig, preset DifficultyPreset) TetrisConfig {
	cfg.Difficulty.Preset = preset
	if lvl := StartLevelForPreset(preset); lvl > 0 {
		cfg.Gameplay.StartLevel = lvl
	}

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.LockDelay = cfg.Gameplay.LockDelay * 3 / 2
	case DifficultyHard:
		cfg.Gameplay.LockDelay = cfg.Gameplay.LockDelay * 3 / 5
	}
	return cfg
}
