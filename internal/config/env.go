package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TETRIS_"

// ApplyEnv overrides cfg with any TETRIS_* variables that are set, e.g.
// TETRIS_GAMEPLAY_LOCK_DELAY=300ms or TETRIS_DIFFICULTY_PRESET=hard.
func ApplyEnv(cfg *TetrisConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}
