package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/results"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// app bundles what every command needs: configuration, logging and the
// result stores.
type app struct {
	cfg     config.TetrisConfig
	logger  *log.Logger
	store   *storage.Store // nil if the database could not be opened
	files   *results.CSVStore
	logFile io.Closer
}

// newApp loads configuration and opens the result stores. A missing
// database only costs the SQLite leaderboard; CSV files keep working.
func newApp() (*app, error) {
	a := &app{}

	logger, closer, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return nil, err
	}
	a.logger, a.logFile = logger, closer

	cfg, err := config.Load(flagConfig)
	if err != nil {
		a.Close()
		return nil, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			a.Close()
			return nil, err
		}
		cfg.Difficulty.Preset = preset
	}
	if flagFPS > 0 {
		cfg.Display.FPS = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		a.Close()
		return nil, err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "preset", cfg.Difficulty.Preset, "level", cfg.Gameplay.StartLevel, "fps", cfg.Display.FPS)

	a.files, err = results.NewCSVStore(flagScoresDir)
	if err != nil {
		a.Close()
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		a.logger.Warn("could not open results database", "path", flagDBPath, "error", err)
	} else {
		a.store = store
	}

	return a, nil
}

// newLogger builds the logger. Bubble Tea owns the terminal, so logs go
// to a file or nowhere.
func newLogger(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = io.Discard
	var closer io.Closer
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           lvl,
	})
	return logger, closer, nil
}

// applyPreset pushes the config, with preset applied, to the game factory.
func (a *app) applyPreset(preset config.DifficultyPreset) {
	cfg := a.cfg
	cfg.Difficulty.Preset = preset
	tetris.SetSettings(cfg.Settings())
}

// recorder fans finished sessions out to every open store.
func (a *app) recorder() results.Recorder {
	if a.store == nil {
		return results.NewFanout(a.logger, a.files)
	}
	return results.NewFanout(a.logger, a.store, a.files)
}

// scoreSource prefers the database and falls back to the CSV files.
func (a *app) scoreSource() tui.ScoreSource {
	if a.store != nil {
		return tui.StoreSource{Store: a.store}
	}
	return tui.FileSource{Files: a.files}
}

// options returns the platform options for a game run.
func (a *app) options() tui.Options {
	return tui.Options{
		Recorder:  a.recorder(),
		Logger:    a.logger,
		HoldGrace: a.cfg.Handling.HoldGrace,
	}
}

// runtimeConfig sizes the screen from the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.Display.FPS,
		Seed:     flagSeed,
	}
}

// Close releases the stores and the log file.
func (a *app) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}
