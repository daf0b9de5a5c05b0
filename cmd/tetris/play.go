package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Left/Right, H/L   - Shift
  Down, J           - Soft drop
  Space             - Hard drop
  Up, X, K          - Rotate clockwise
  Z                 - Rotate counter-clockwise
  A                 - Rotate 180
  C                 - Hold
  P/Esc             - Pause
  R                 - Restart (after the game ends)
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a screenshot

Difficulty options:
  easy   - Start at level 1 with a longer lock delay
  normal - Start at the configured level
  hard   - Start at level 10 with a shorter lock delay
  fixed  - No level progression

Examples:
  tetris play classic
  tetris play sprint --difficulty easy
  tetris play classic --seed 42
  tetris play classic --config ./my-tetris.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	modeID := args[0]
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q, run 'tetris list' to see available modes", modeID)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.applyPreset(a.cfg.Difficulty.Preset)

	game, err := registry.Create(modeID)
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}

	if err := tui.Run(game, a.runtimeConfig(), a.options()); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
