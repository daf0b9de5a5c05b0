package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateToppedOut   GameStateType = "topped_out"
	StateCompleted   GameStateType = "completed"
	StateQuit        GameStateType = "quit"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Mode     string
	Score    int
	Lines    int
	Level    int
	Pieces   int
	Elapsed  time.Duration
	Active   engine.Kind
	ActiveX  int
	ActiveY  int
	Rotation int
	Hold     engine.Kind
	HasHold  bool
	Preview  []engine.Kind
	Phase    engine.Phase
	State    GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session.Snapshot()

	state := StatePlaying
	switch {
	case s.Outcome == engine.OutcomeToppedOut:
		state = StateToppedOut
	case s.Outcome == engine.OutcomeCompleted:
		state = StateCompleted
	case s.Outcome == engine.OutcomeQuit:
		state = StateQuit
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:     g.tick,
		Mode:     g.mode.ID(),
		Score:    s.Score,
		Lines:    s.Lines,
		Level:    s.Level,
		Pieces:   s.Pieces,
		Elapsed:  s.Elapsed,
		Active:   s.Active.Kind,
		ActiveX:  s.Active.Pos.X,
		ActiveY:  s.Active.Pos.Y,
		Rotation: s.Active.Rotation,
		Hold:     s.Hold,
		HasHold:  s.HasHold,
		Preview:  s.Preview,
		Phase:    s.Phase,
		State:    state,
	}
}
