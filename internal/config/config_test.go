package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	var cfg TetrisConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("embedded = %+v, expected %+v", cfg, DefaultTetrisConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("gameplay:\n  start_level: 7\n  lock_delay: 300ms\nhandling:\n  instant_das: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gameplay.StartLevel != 7 {
		t.Errorf("StartLevel = %d, expected 7", cfg.Gameplay.StartLevel)
	}
	if cfg.Gameplay.LockDelay != 300*time.Millisecond {
		t.Errorf("LockDelay = %v, expected 300ms", cfg.Gameplay.LockDelay)
	}
	if !cfg.Handling.InstantDAS {
		t.Error("InstantDAS = false, expected true")
	}
	if cfg.Gameplay.SprintLines != 40 {
		t.Errorf("SprintLines = %d, expected default 40 for missing key", cfg.Gameplay.SprintLines)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("gameplay: [1, 2"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name     string
		path     string
		prefix   string
		notExist bool
	}{
		{"missing file", filepath.Join(dir, "missing.yaml"), "config: read ", true},
		{"invalid yaml", bad, "config: parse ", false},
	}

	for _, tt := range tests {
		_, err := Load(tt.path)
		if err == nil {
			t.Errorf("%s: Load() error = nil, expected failure", tt.name)
			continue
		}
		if !strings.HasPrefix(err.Error(), tt.prefix) {
			t.Errorf("%s: Load() error = %q, expected prefix %q", tt.name, err, tt.prefix)
		}
		if got := errors.Is(err, os.ErrNotExist); got != tt.notExist {
			t.Errorf("%s: errors.Is(err, os.ErrNotExist) = %v, expected %v", tt.name, got, tt.notExist)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TETRIS_GAMEPLAY_START_LEVEL", "4")
	t.Setenv("TETRIS_HANDLING_REPEAT_DELAY", "150ms")
	t.Setenv("TETRIS_HANDLING_INSTANT_SOFT_DROP", "true")
	t.Setenv("TETRIS_DIFFICULTY_PRESET", "fixed")

	cfg := DefaultTetrisConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Gameplay.StartLevel != 4 {
		t.Errorf("StartLevel = %d, expected 4", cfg.Gameplay.StartLevel)
	}
	if cfg.Handling.RepeatDelay != 150*time.Millisecond {
		t.Errorf("RepeatDelay = %v, expected 150ms", cfg.Handling.RepeatDelay)
	}
	if !cfg.Handling.InstantSoftDrop {
		t.Error("InstantSoftDrop = false, expected true")
	}
	if cfg.Difficulty.Preset != DifficultyFixed {
		t.Errorf("Preset = %q, expected fixed", cfg.Difficulty.Preset)
	}
	if cfg.Gameplay.LockMoves != 15 {
		t.Errorf("LockMoves = %d, expected untouched 15", cfg.Gameplay.LockMoves)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("TETRIS_GAMEPLAY_LOCK_MOVES", "lots")

	cfg := DefaultTetrisConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv() with bad int should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TetrisConfig)
		field  string
	}{
		{"start level low", func(c *TetrisConfig) { c.Gameplay.StartLevel = 0 }, "start_level"},
		{"start level high", func(c *TetrisConfig) { c.Gameplay.StartLevel = 21 }, "start_level"},
		{"negative lock delay", func(c *TetrisConfig) { c.Gameplay.LockDelay = -time.Millisecond }, "lock_delay"},
		{"zero sprint", func(c *TetrisConfig) { c.Gameplay.SprintLines = 0 }, "sprint_lines"},
		{"big preview", func(c *TetrisConfig) { c.Gameplay.Preview = 7 }, "preview"},
		{"zero soft drop", func(c *TetrisConfig) { c.Handling.SoftDropInterval = 0 }, "soft_drop_interval"},
		{"zero grace", func(c *TetrisConfig) { c.Handling.HoldGrace = 0 }, "hold_grace"},
		{"zero fps", func(c *TetrisConfig) { c.Display.FPS = 0 }, "fps"},
		{"bad preset", func(c *TetrisConfig) { c.Difficulty.Preset = "insane" }, "unknown difficulty"},
	}
	for _, tt := range tests {
		cfg := DefaultTetrisConfig()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.field) {
			t.Errorf("%s: Validate() = %v, expected error mentioning %q", tt.name, err, tt.field)
		}
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Gameplay.StartLevel = 0
	cfg.Display.FPS = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, expected errors")
	}
	if !strings.Contains(err.Error(), "start_level") || !strings.Contains(err.Error(), "fps") {
		t.Errorf("Validate() = %v, expected both problems", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"normal", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"HARD", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestSettingsAppliesPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		level     int
		fixed     bool
		lockDelay time.Duration
	}{
		{DifficultyEasy, 1, false, 750 * time.Millisecond},
		{DifficultyNormal, 3, false, 500 * time.Millisecond},
		{DifficultyHard, 10, false, 300 * time.Millisecond},
		{DifficultyFixed, 3, true, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		cfg := DefaultTetrisConfig()
		cfg.Gameplay.StartLevel = 3
		cfg.Difficulty.Preset = tt.preset

		s := cfg.Settings()
		if s.InitialLevel != tt.level {
			t.Errorf("%s: InitialLevel = %d, expected %d", tt.preset, s.InitialLevel, tt.level)
		}
		if s.FixedLevel != tt.fixed {
			t.Errorf("%s: FixedLevel = %v, expected %v", tt.preset, s.FixedLevel, tt.fixed)
		}
		if s.LockDelay != tt.lockDelay {
			t.Errorf("%s: LockDelay = %v, expected %v", tt.preset, s.LockDelay, tt.lockDelay)
		}
	}
}

func TestSettingsCarriesHandling(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Handling.InstantDAS = true
	cfg.Gameplay.Preview = 3
	cfg.Gameplay.SprintLines = 20

	s := cfg.Settings()
	if !s.InstantDAS || s.PreviewSize != 3 || s.SprintLines != 20 {
		t.Errorf("Settings() = %+v, expected handling and gameplay carried over", s)
	}
	if s.RepeatDelay != cfg.Handling.RepeatDelay || s.RepeatInterval != cfg.Handling.RepeatInterval {
		t.Errorf("Settings() repeat = %v/%v", s.RepeatDelay, s.RepeatInterval)
	}
}
