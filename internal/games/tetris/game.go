// Package tetris adapts the falling-block engine to the platform's game
// interface: it owns the session lifecycle, pause and restart, and draws
// the playfield into a character screen.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/results"
)

// Game runs one mode of Tetris.
type Game struct {
	mode     engine.Mode
	settings engine.Settings

	base    engine.Clock
	clock   *engine.PausableClock
	session *engine.Session
	rng     *rand.Rand
	tick    uint64

	screenW int
	screenH int

	paused   bool
	tooSmall bool

	now        func() time.Time // wall clock stamped on results
	finishedAt time.Time
}

// Package-level settings applied to games built by New, set from config
// before the platform creates a game.
var settings = engine.DefaultSettings()

// SetSettings replaces the settings used by subsequently created games.
func SetSettings(s engine.Settings) {
	settings = s
}

// CurrentSettings returns the settings New will use.
func CurrentSettings() engine.Settings {
	return settings
}

// New creates a game of the given mode on the system clock.
func New(mode engine.Mode) *Game {
	return NewGame(mode, settings, engine.SystemClock{})
}

// NewGame creates a game with explicit settings and time source.
func NewGame(mode engine.Mode, s engine.Settings, clock engine.Clock) *Game {
	return &Game{
		mode:     mode,
		settings: s,
		base:     clock,
		now:      time.Now,
	}
}

func init() {
	registry.Register(engine.ModeClassic.ID(), func() registry.Game {
		return New(engine.ModeClassic)
	})
	registry.Register(engine.ModeSprint.ID(), func() registry.Game {
		return New(engine.ModeSprint)
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case engine.ModeSprint:
		return "Sprint (40 Lines)"
	default:
		return "Classic"
	}
}

// Timed reports whether results rank by elapsed time.
func (g *Game) Timed() bool {
	return g.mode.Timed()
}

// ResultFile names the mode's result file.
func (g *Game) ResultFile() string {
	return g.mode.FileStem()
}

// Mode returns the rules this game plays.
func (g *Game) Mode() engine.Mode {
	return g.mode
}

// Reset starts a fresh session seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.clock = engine.NewPausableClock(g.base)
	g.session = engine.NewSession(g.mode, g.settings, g.rng, g.clock)
	g.tick = 0
	g.paused = false
	g.finishedAt = time.Time{}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts to new screen dimensions without restarting. While the
// screen is too small the session clock is held.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
	g.syncClock()
}

func (g *Game) syncClock() {
	if g.clock == nil {
		return
	}
	if g.paused || g.tooSmall {
		g.clock.Pause()
		g.session.ReleaseAll()
	} else {
		g.clock.Resume()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && !g.session.Running() {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionQuit) {
		g.session.Quit()
		g.markFinished()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.session.Running() {
		g.paused = !g.paused
		g.syncClock()
	}

	if g.paused || g.tooSmall || !g.session.Running() {
		return core.StepResult{State: g.State()}
	}

	cleared := g.session.Tick(in.Events)
	g.markFinished()
	return core.StepResult{State: g.State(), Cleared: cleared}
}

func (g *Game) markFinished() {
	if !g.session.Running() && g.finishedAt.IsZero() {
		g.finishedAt = g.now()
	}
}

// State returns the platform-level status.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: !g.session.Running(),
		Paused:   g.paused,
	}
}

// Result returns the record of the finished session. Quits have none.
func (g *Game) Result() (results.Record, bool) {
	if g.session == nil {
		return results.Record{}, false
	}
	res, ok := g.session.Result()
	if !ok {
		return results.Record{}, false
	}
	return results.Record{
		At:       g.finishedAt,
		Mode:     res.Mode.ID(),
		ModeName: res.Mode.Name(),
		File:     res.Mode.FileStem(),
		Timed:    res.Mode.Timed(),
		Failed:   res.Failed(),
		Score:    res.Score,
		Elapsed:  res.Elapsed,
		Lines:    res.Lines,
		Level:    res.Level,
		Pieces:   res.Pieces,
	}, true
}

// Session exposes the running engine session, mostly for tests and tools.
func (g *Game) Session() *engine.Session {
	return g.session
}
