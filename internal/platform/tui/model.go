package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/results"
)

// Options configures a game run.
type Options struct {
	Recorder      results.Recorder // where finished sessions go; may be nil
	Logger        *log.Logger      // may be nil
	HoldGrace     time.Duration
	ScreenshotDir string // empty means ~/.tetris/screenshots
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	opts        Options
	config      core.RuntimeConfig
	keys        *KeyMapper
	inputFrame  core.InputFrame
	gameState   core.GameState
	quitting    bool
	resultSaved bool // whether the current session's result has been handled
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(opts.HoldGrace),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.Logger.Info("session started", "mode", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		quit := core.NewInputFrame()
		quit.Set(core.ActionQuit)
		m.game.Step(quit)
		m.opts.Logger.Info("session quit", "mode", m.game.ID())
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionPause {
		m.keys.ReleaseAll(&m.inputFrame)
	}
	m.keys.Press(action, time.Now(), &m.inputFrame)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.keys.Expire(now, &m.inputFrame)

	result := m.game.Step(m.inputFrame)
	if m.gameState.GameOver && !result.State.GameOver {
		m.opts.Logger.Info("session restarted", "mode", m.game.ID())
		m.resultSaved = false
	}
	m.gameState = result.State

	if result.Cleared > 0 {
		m.opts.Logger.Debug("lines cleared", "mode", m.game.ID(), "rows", result.Cleared, "score", result.State.Score)
	}

	if m.gameState.GameOver && !m.resultSaved {
		m.saveResult()
		m.resultSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult hands the finished session to the recorder, best-effort.
func (m Model) saveResult() {
	reporter, ok := m.game.(results.Reporter)
	if !ok {
		return
	}
	rec, ok := reporter.Result()
	if !ok {
		m.opts.Logger.Info("session ended without result", "mode", m.game.ID())
		return
	}
	m.opts.Logger.Info("session finished", "mode", rec.Mode, "value", rec.Value(), "lines", rec.Lines, "failed", rec.Failed)
	if m.opts.Recorder == nil {
		return
	}
	if err := m.opts.Recorder.Save(rec); err != nil {
		m.opts.Logger.Warn("failed to save result", "mode", rec.Mode, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("screenshot skipped", "error", err)
			return
		}
		dir = filepath.Join(home, ".tetris", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
