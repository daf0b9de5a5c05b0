package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestSession(mode Mode, settings Settings) (*Session, *ManualClock) {
	clock := NewManualClock(t0)
	return NewSession(mode, settings, rand.New(rand.NewSource(1)), clock), clock
}

// tap is a press immediately followed by its release.
func tap(a core.Action) []core.InputEvent {
	return []core.InputEvent{{Action: a}, {Action: a, Released: true}}
}

func press(a core.Action) []core.InputEvent {
	return []core.InputEvent{{Action: a}}
}

func TestNewSessionSpawnsFirstPiece(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	snap := s.Snapshot()

	assert.True(t, snap.Running())
	assert.Equal(t, NewPiece(snap.Active.Kind), snap.Active)
	assert.Len(t, snap.Preview, DefaultPreviewSize)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, PhaseFalling, snap.Phase)
	assert.False(t, snap.HasHold)
	assert.Zero(t, snap.Goal)
}

func TestHardDropLocksGrounded(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	target := DropPosition(s.active, s.board)
	require.True(t, Grounded(target, s.board))
	next := s.bag.Preview(1)[0]

	s.Tick(tap(core.ActionHardDrop))

	for _, c := range target.Blocks() {
		assert.True(t, s.board.Occupied(c.X, c.Y), "cell %v should be settled", c)
	}
	assert.Equal(t, 1, s.pieces)
	assert.Equal(t, NewPiece(next), s.active)
}

func TestClassicSingleLineScoresHundred(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	fillRow(s.board, BoardHeight-1, 3, 4, 5, 6)
	s.active = NewPiece(KindI)

	cleared := s.Tick(tap(core.ActionHardDrop))

	assert.Equal(t, 1, cleared)
	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 1, s.lines)
	assert.Equal(t, 1, s.level)
	assert.Equal(t, 0, s.board.Height())
}

// verticalI returns an I piece standing upright in column x.
func verticalI(t *testing.T, b *Board, x int) Piece {
	t.Helper()
	p := NewPiece(KindI)
	require.True(t, SRSRotate(&p, true, b))
	p.Pos.X = x - p.Cells[0].X
	require.True(t, Fits(p, b))
	return p
}

func TestClassicFourLinesScoresEightHundred(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	for y := 16; y < BoardHeight; y++ {
		fillRow(s.board, y, 9)
	}
	s.active = verticalI(t, s.board, 9)

	assert.Equal(t, 4, s.Tick(tap(core.ActionHardDrop)))
	assert.Equal(t, 800, s.Score())
	assert.Equal(t, 4, s.lines)
	assert.Equal(t, 1, s.level)
	assert.Equal(t, 0, s.board.Height())
}

func TestClassicLevelUpAfterTenLines(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	s.lines = 9
	fillRow(s.board, BoardHeight-1, 3, 4, 5, 6)
	s.active = NewPiece(KindI)

	s.Tick(tap(core.ActionHardDrop))

	assert.Equal(t, 100, s.Score(), "scored at the level before the clear")
	assert.Equal(t, 2, s.level)
}

func TestFixedLevelNeverAdvances(t *testing.T) {
	settings := DefaultSettings()
	settings.InitialLevel = 3
	settings.FixedLevel = true
	s, _ := newTestSession(ModeClassic, settings)
	s.lines = 39
	fillRow(s.board, BoardHeight-1, 3, 4, 5, 6)
	s.active = NewPiece(KindI)

	s.Tick(tap(core.ActionHardDrop))

	assert.Equal(t, 300, s.Score())
	assert.Equal(t, 3, s.level)
}

func TestSprintStopsAtGoal(t *testing.T) {
	s, clock := newTestSession(ModeSprint, DefaultSettings())
	s.lines = 36
	for y := 16; y < BoardHeight; y++ {
		fillRow(s.board, y, 9)
	}
	s.active = verticalI(t, s.board, 9)
	clock.Advance(75 * time.Second)

	s.Tick(tap(core.ActionHardDrop))

	assert.Equal(t, OutcomeCompleted, s.Outcome())
	assert.False(t, s.Running())
	assert.Equal(t, 40, s.lines)
	assert.Equal(t, 0, s.Score(), "sprint does not score")
	assert.Equal(t, KindI, s.active.Kind, "no piece spawns after the goal")

	clock.Advance(time.Minute)
	s.Tick(tap(core.ActionHardDrop))
	assert.Equal(t, 1, s.pieces, "finished sessions ignore input")

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, ModeSprint, res.Mode)
	assert.False(t, res.Failed())
	assert.Equal(t, 75*time.Second, res.Elapsed)
	assert.Equal(t, 40, res.Lines)
}

func TestSprintBelowGoalKeepsRunning(t *testing.T) {
	s, _ := newTestSession(ModeSprint, DefaultSettings())
	s.lines = 38
	fillRow(s.board, BoardHeight-1, 3, 4, 5, 6)
	s.active = NewPiece(KindI)

	s.Tick(tap(core.ActionHardDrop))

	assert.True(t, s.Running())
	assert.Equal(t, 39, s.lines)
	assert.Equal(t, 1, s.level, "sprint level is fixed")
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestGravityDropsOneRowPerInterval(t *testing.T) {
	s, clock := newTestSession(ModeClassic, DefaultSettings())
	y := s.active.Pos.Y

	clock.Advance(999 * time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, y, s.active.Pos.Y)

	clock.Advance(time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, y+1, s.active.Pos.Y)
}

func TestLockAfterDelayOnGround(t *testing.T) {
	s, clock := newTestSession(ModeClassic, DefaultSettings())
	s.active = DropPosition(s.active, s.board)

	s.Tick(nil)
	assert.Equal(t, PhaseLockDelay, s.lock.Phase())

	clock.Advance(499 * time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 0, s.pieces)

	clock.Advance(time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 1, s.pieces)
	assert.Equal(t, PhaseFalling, s.lock.Phase(), "new piece starts falling")
}

func TestFifteenMovesThenLock(t *testing.T) {
	s, clock := newTestSession(ModeClassic, DefaultSettings())
	s.active = DropPosition(NewPiece(KindO), s.board)
	s.Tick(nil)
	require.Equal(t, PhaseLockDelay, s.lock.Phase())

	dirs := []core.Action{core.ActionMoveLeft, core.ActionMoveRight}
	for i := 0; i < DefaultLockMoves; i++ {
		clock.Advance(400 * time.Millisecond)
		s.Tick(tap(dirs[i%2]))
		require.Equal(t, 0, s.pieces, "move %d locked early", i+1)
	}
	assert.Equal(t, DefaultLockMoves, s.lock.Moves())

	// The 16th move is legal but no longer refreshes the timer.
	clock.Advance(400 * time.Millisecond)
	x := s.active.Pos.X
	s.Tick(tap(core.ActionMoveLeft))
	assert.Equal(t, x-1, s.active.Pos.X)
	assert.Equal(t, 0, s.pieces)

	clock.Advance(100 * time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 1, s.pieces)
}

func TestRotationThroughSession(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	s.active = midBoard(KindT)

	s.Tick(tap(core.ActionRotateCW))
	assert.Equal(t, RotationRight, s.active.Rotation)

	s.Tick(tap(core.ActionRotate180))
	assert.Equal(t, RotationLeft, s.active.Rotation)

	s.Tick(tap(core.ActionRotateCCW))
	assert.Equal(t, RotationTwo, s.active.Rotation)
}

func TestHoldSwapsOncePerPiece(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	first := s.active.Kind
	second := s.bag.Preview(1)[0]

	s.Tick(tap(core.ActionHold))
	snap := s.Snapshot()
	assert.True(t, snap.HasHold)
	assert.True(t, snap.HoldUsed)
	assert.Equal(t, first, snap.Hold)
	assert.Equal(t, NewPiece(second), s.active)

	s.Tick(tap(core.ActionHold))
	assert.Equal(t, second, s.active.Kind, "second hold on the same piece is ignored")

	s.Tick(tap(core.ActionHardDrop))
	assert.False(t, s.holdUsed)

	third := s.active.Kind
	s.Tick(tap(core.ActionHold))
	assert.Equal(t, NewPiece(first), s.active, "held piece returns at spawn")
	assert.Equal(t, third, s.hold)
}

func TestAutoRepeatShift(t *testing.T) {
	s, clock := newTestSession(ModeClassic, DefaultSettings())
	s.active = NewPiece(KindT)

	s.Tick(press(core.ActionMoveLeft))
	assert.Equal(t, 2, s.active.Pos.X, "press moves immediately")

	clock.Advance(99 * time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 2, s.active.Pos.X)

	clock.Advance(time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 1, s.active.Pos.X)

	clock.Advance(20 * time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 0, s.active.Pos.X)

	clock.Advance(20 * time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 0, s.active.Pos.X, "stopped by the wall")

	s.Tick([]core.InputEvent{{Action: core.ActionMoveLeft, Released: true}, {Action: core.ActionMoveRight}})
	assert.Equal(t, 1, s.active.Pos.X)
}

func TestOpposingDirectionsCancelRepeat(t *testing.T) {
	s, clock := newTestSession(ModeClassic, DefaultSettings())
	s.active = NewPiece(KindT)

	s.Tick([]core.InputEvent{{Action: core.ActionMoveLeft}, {Action: core.ActionMoveRight}})
	assert.Equal(t, 3, s.active.Pos.X)

	clock.Advance(300 * time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 3, s.active.Pos.X)
}

func TestReleasingOneDirectionResumesAtRepeatRate(t *testing.T) {
	s, clock := newTestSession(ModeClassic, DefaultSettings())
	s.active = NewPiece(KindT)

	s.Tick([]core.InputEvent{{Action: core.ActionMoveLeft}, {Action: core.ActionMoveRight}})
	for range 19 {
		clock.Advance(16 * time.Millisecond)
		s.Tick(nil)
	}
	require.Equal(t, 3, s.active.Pos.X)

	clock.Advance(16 * time.Millisecond)
	s.Tick([]core.InputEvent{{Action: core.ActionMoveRight, Released: true}})
	assert.Equal(t, 3, s.active.Pos.X, "no backlog from the suppressed hold")

	clock.Advance(16 * time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 2, s.active.Pos.X, "one cell per repeat interval")

	clock.Advance(16 * time.Millisecond)
	s.Tick(nil)
	assert.Equal(t, 1, s.active.Pos.X)
}

func TestInstantDAS(t *testing.T) {
	settings := DefaultSettings()
	settings.InstantDAS = true
	s, clock := newTestSession(ModeClassic, settings)
	s.active = NewPiece(KindT)

	s.Tick(press(core.ActionMoveRight))
	assert.Equal(t, 4, s.active.Pos.X)

	clock.Advance(DefaultRepeatDelay)
	s.Tick(nil)
	assert.Equal(t, BoardWidth-3, s.active.Pos.X)
}

func TestSoftDropHold(t *testing.T) {
	s, clock := newTestSession(ModeClassic, DefaultSettings())
	s.active = NewPiece(KindT)
	y := s.active.Pos.Y

	s.Tick(press(core.ActionSoftDrop))
	assert.Equal(t, y+1, s.active.Pos.Y, "press drops one row")

	clock.Advance(DefaultRepeatDelay)
	s.Tick(nil)
	assert.Equal(t, y+2, s.active.Pos.Y, "charged soft drop uses the fast interval")

	clock.Advance(DefaultSoftDropInterval)
	s.Tick(nil)
	assert.Equal(t, y+3, s.active.Pos.Y)

	s.Tick([]core.InputEvent{{Action: core.ActionSoftDrop, Released: true}})
	clock.Advance(DefaultSoftDropInterval)
	s.Tick(nil)
	assert.Equal(t, y+3, s.active.Pos.Y, "release restores level gravity")
}

func TestInstantSoftDropSnapsWithoutLocking(t *testing.T) {
	settings := DefaultSettings()
	settings.InstantSoftDrop = true
	s, clock := newTestSession(ModeClassic, settings)
	s.active = NewPiece(KindT)

	target := DropPosition(s.active, s.board)

	s.Tick(tap(core.ActionSoftDrop))

	assert.Equal(t, target, s.active, "the press itself snaps to the floor")
	assert.True(t, Grounded(s.active, s.board))
	assert.Equal(t, 0, s.pieces)
	assert.Equal(t, PhaseLockDelay, s.lock.Phase())

	clock.Advance(DefaultRepeatDelay)
	s.Tick(nil)
	assert.Equal(t, 0, s.pieces, "still waiting on lock delay")
}

func TestInstantSoftDropCountsAsMoveOnlyWhenItMoves(t *testing.T) {
	s, clock := newTestSession(ModeClassic, DefaultSettings())
	s.board.Fill(3, 10, core.ColorGray)
	s.board.Fill(4, 10, core.ColorGray)
	s.active = NewPiece(KindT)
	s.active.Pos = core.Pt(3, 8)

	s.Tick(nil)
	require.Equal(t, PhaseLockDelay, s.lock.Phase())

	s.Tick(tap(core.ActionMoveRight))
	s.Tick(tap(core.ActionMoveRight))
	require.False(t, Grounded(s.active, s.board), "slid off the ledge")
	require.Equal(t, 2, s.lock.Moves())

	s.sonicDrop(clock.Now())
	assert.Equal(t, 18, s.active.Pos.Y)
	assert.Equal(t, 3, s.lock.Moves(), "a drop that moves refreshes")

	s.sonicDrop(clock.Now())
	assert.Equal(t, 3, s.lock.Moves(), "a drop that cannot move does not")

	s.Tick(nil)
	assert.Equal(t, PhaseLockDelay, s.lock.Phase())
	assert.Equal(t, 0, s.lock.Moves(), "falling past the escape distance resets the counter")
}

func TestTopOutOnPlacementAboveCeiling(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	s.score = 1200
	s.board.Fill(3, 0, core.ColorGray)
	s.board.Fill(4, 0, core.ColorGray)
	s.board.Fill(5, 0, core.ColorGray)
	s.active = NewPiece(KindT)
	before := s.board.Grid()

	s.Tick(tap(core.ActionHardDrop))

	assert.Equal(t, OutcomeToppedOut, s.Outcome())
	assert.Equal(t, before, s.board.Grid(), "failed placement writes nothing")

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, ModeClassic, res.Mode)
	assert.Equal(t, 1200, res.Score)
	assert.False(t, res.Failed())
}

func TestSprintTopOutReportsFailedTime(t *testing.T) {
	s, clock := newTestSession(ModeSprint, DefaultSettings())
	s.lines = 12
	s.board.Fill(3, 0, core.ColorGray)
	s.board.Fill(4, 0, core.ColorGray)
	s.board.Fill(5, 0, core.ColorGray)
	s.active = NewPiece(KindT)
	clock.Advance(42 * time.Second)

	s.Tick(tap(core.ActionHardDrop))

	require.Equal(t, OutcomeToppedOut, s.Outcome())
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, OutcomeToppedOut, res.Outcome)
	assert.True(t, res.Failed())
	assert.Equal(t, 42*time.Second, res.Elapsed)
	assert.Equal(t, 12, res.Lines)
}

func TestTopOutWhenSpawnIsBlocked(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	for x := 3; x <= 6; x++ {
		s.board.Fill(x, 0, core.ColorGray)
	}
	s.active = NewPiece(KindO)
	s.active.Pos = core.Pt(0, 5)

	s.Tick(tap(core.ActionHardDrop))

	assert.Equal(t, 1, s.pieces)
	assert.Equal(t, OutcomeToppedOut, s.Outcome())
}

func TestQuitEndsWithoutResult(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	s.Tick(tap(core.ActionQuit))

	assert.Equal(t, OutcomeQuit, s.Outcome())
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestSession(ModeClassic, DefaultSettings())
	snap := s.Snapshot()
	snap.Board[19][0] = Cell{Occupied: true}
	snap.Preview[0] = KindO

	assert.False(t, s.board.Occupied(0, 19))
	assert.Equal(t, DropPosition(s.active, s.board), snap.Ghost)
}

func TestSessionDeterminism(t *testing.T) {
	inputs := [][]core.InputEvent{
		tap(core.ActionMoveLeft), nil, tap(core.ActionRotateCW), tap(core.ActionHardDrop),
		tap(core.ActionHold), tap(core.ActionMoveRight), tap(core.ActionHardDrop),
	}

	run := func() Snapshot {
		s, clock := newTestSession(ModeClassic, DefaultSettings())
		for i := 0; i < 200; i++ {
			clock.Advance(time.Second / 60)
			s.Tick(inputs[i%len(inputs)])
		}
		return s.Snapshot()
	}

	assert.Equal(t, run(), run())
}
