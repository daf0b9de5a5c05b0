// Package config provides YAML-based game configuration loading,
// environment overrides and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// TetrisConfig contains all tunable settings.
type TetrisConfig struct {
	Gameplay   GameplayConfig   `yaml:"gameplay" envPrefix:"GAMEPLAY_"`
	Handling   HandlingConfig   `yaml:"handling" envPrefix:"HANDLING_"`
	Display    DisplayConfig    `yaml:"display" envPrefix:"DISPLAY_"`
	Difficulty DifficultyConfig `yaml:"difficulty" envPrefix:"DIFFICULTY_"`
}

// GameplayConfig defines the rules of a session.
type GameplayConfig struct {
	StartLevel  int           `yaml:"start_level" env:"START_LEVEL"`
	LockDelay   time.Duration `yaml:"lock_delay" env:"LOCK_DELAY"`
	LockMoves   int           `yaml:"lock_moves" env:"LOCK_MOVES"`   // moves that refresh lock delay
	SprintLines int           `yaml:"sprint_lines" env:"SPRINT_LINES"`
	Preview     int           `yaml:"preview" env:"PREVIEW"` // upcoming pieces shown
}

// HandlingConfig defines key repeat behavior.
type HandlingConfig struct {
	RepeatDelay      time.Duration `yaml:"repeat_delay" env:"REPEAT_DELAY"`       // DAS
	RepeatInterval   time.Duration `yaml:"repeat_interval" env:"REPEAT_INTERVAL"` // ARR
	SoftDropInterval time.Duration `yaml:"soft_drop_interval" env:"SOFT_DROP_INTERVAL"`
	InstantDAS       bool          `yaml:"instant_das" env:"INSTANT_DAS"`
	InstantSoftDrop  bool          `yaml:"instant_soft_drop" env:"INSTANT_SOFT_DROP"`
	// Terminals report no key-up events; a held key that stops repeating
	// for this long is treated as released.
	HoldGrace time.Duration `yaml:"hold_grace" env:"HOLD_GRACE"`
}

// DisplayConfig defines terminal presentation.
type DisplayConfig struct {
	FPS int `yaml:"fps" env:"FPS"`
}

// DifficultyConfig selects a preset applied on top of gameplay values.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset" env:"PRESET"`
}

// DefaultTetrisConfig returns the built-in configuration. It matches the
// embedded defaults/tetris.yaml.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Gameplay: GameplayConfig{
			StartLevel:  1,
			LockDelay:   engine.DefaultLockDelay,
			LockMoves:   engine.DefaultLockMoves,
			SprintLines: engine.DefaultSprintLines,
			Preview:     engine.DefaultPreviewSize,
		},
		Handling: HandlingConfig{
			RepeatDelay:      engine.DefaultRepeatDelay,
			RepeatInterval:   engine.DefaultRepeatInterval,
			SoftDropInterval: engine.DefaultSoftDropInterval,
			HoldGrace:        80 * time.Millisecond,
		},
		Display: DisplayConfig{
			FPS: 60,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

const (
	maxStartLevel = 20
	maxPreview    = 6
	maxFPS        = 240
)

// Validate reports every out-of-range value.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Gameplay.StartLevel < 1 || c.Gameplay.StartLevel > maxStartLevel {
		errs = append(errs, fmt.Errorf("gameplay.start_level must be 1..%d, got %d", maxStartLevel, c.Gameplay.StartLevel))
	}
	if c.Gameplay.LockDelay < 0 {
		errs = append(errs, fmt.Errorf("gameplay.lock_delay must not be negative, got %v", c.Gameplay.LockDelay))
	}
	if c.Gameplay.LockMoves < 0 {
		errs = append(errs, fmt.Errorf("gameplay.lock_moves must not be negative, got %d", c.Gameplay.LockMoves))
	}
	if c.Gameplay.SprintLines < 1 {
		errs = append(errs, fmt.Errorf("gameplay.sprint_lines must be positive, got %d", c.Gameplay.SprintLines))
	}
	if c.Gameplay.Preview < 0 || c.Gameplay.Preview > maxPreview {
		errs = append(errs, fmt.Errorf("gameplay.preview must be 0..%d, got %d", maxPreview, c.Gameplay.Preview))
	}
	if c.Handling.RepeatDelay < 0 {
		errs = append(errs, fmt.Errorf("handling.repeat_delay must not be negative, got %v", c.Handling.RepeatDelay))
	}
	if c.Handling.RepeatInterval < 0 {
		errs = append(errs, fmt.Errorf("handling.repeat_interval must not be negative, got %v", c.Handling.RepeatInterval))
	}
	if c.Handling.SoftDropInterval <= 0 {
		errs = append(errs, fmt.Errorf("handling.soft_drop_interval must be positive, got %v", c.Handling.SoftDropInterval))
	}
	if c.Handling.HoldGrace <= 0 {
		errs = append(errs, fmt.Errorf("handling.hold_grace must be positive, got %v", c.Handling.HoldGrace))
	}
	if c.Display.FPS < 1 || c.Display.FPS > maxFPS {
		errs = append(errs, fmt.Errorf("display.fps must be 1..%d, got %d", maxFPS, c.Display.FPS))
	}
	if _, err := ParseDifficulty(string(c.Difficulty.Preset)); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Settings converts the configuration into engine settings, with the
// difficulty preset applied.
func (c TetrisConfig) Settings() engine.Settings {
	c = WithPreset(c, c.Difficulty.Preset)
	return engine.Settings{
		InitialLevel:     c.Gameplay.StartLevel,
		FixedLevel:       IsFixedPreset(c.Difficulty.Preset),
		LockDelay:        c.Gameplay.LockDelay,
		LockMoves:        c.Gameplay.LockMoves,
		SoftDropInterval: c.Handling.SoftDropInterval,
		RepeatDelay:      c.Handling.RepeatDelay,
		RepeatInterval:   c.Handling.RepeatInterval,
		InstantDAS:       c.Handling.InstantDAS,
		InstantSoftDrop:  c.Handling.InstantSoftDrop,
		PreviewSize:      c.Gameplay.Preview,
		SprintLines:      c.Gameplay.SprintLines,
	}
}
