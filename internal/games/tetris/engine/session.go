package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Outcome describes how a session ended.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeToppedOut
	OutcomeCompleted
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeToppedOut:
		return "topped-out"
	case OutcomeCompleted:
		return "completed"
	case OutcomeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Result summarizes a finished session worth recording.
type Result struct {
	Mode    Mode
	Outcome Outcome
	Score   int
	Lines   int
	Level   int
	Pieces  int
	Elapsed time.Duration
}

// Session is one game from first spawn to top-out, goal or quit.
// It is driven by Tick from a single goroutine.
type Session struct {
	mode     Mode
	settings Settings
	clock    Clock

	board  *Board
	bag    *Bag
	active Piece

	hold     Kind
	hasHold  bool
	holdUsed bool

	score  int
	lines  int
	level  int
	pieces int

	lock      LockDelay
	lastFall  time.Time
	startedAt time.Time
	endedAt   time.Time
	outcome   Outcome

	left  Repeater
	right Repeater
	down  Repeater

	clearedThisTick int
}

// NewSession builds a session and spawns its first piece.
func NewSession(mode Mode, settings Settings, rng *rand.Rand, clock Clock) *Session {
	settings = settings.normalized()
	now := clock.Now()

	s := &Session{
		mode:      mode,
		settings:  settings,
		clock:     clock,
		board:     NewBoard(),
		bag:       NewBag(rng),
		level:     settings.InitialLevel,
		lock:      NewLockDelay(settings.LockDelay, settings.LockMoves),
		startedAt: now,
		left:      Repeater{Delay: settings.RepeatDelay, Interval: settings.RepeatInterval},
		right:     Repeater{Delay: settings.RepeatDelay, Interval: settings.RepeatInterval},
		down:      Repeater{Delay: settings.RepeatDelay, Interval: settings.RepeatInterval},
	}
	s.spawn(s.bag.Next(), now)
	return s
}

// Running reports whether the session still accepts input.
func (s *Session) Running() bool {
	return s.outcome == OutcomePlaying
}

// Outcome returns how the session ended, or OutcomePlaying.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Mode returns the session rules.
func (s *Session) Mode() Mode {
	return s.mode
}

// Score returns the accumulated Classic score.
func (s *Session) Score() int {
	return s.score
}

// Elapsed returns play time so far, frozen once the session ends.
func (s *Session) Elapsed() time.Duration {
	if !s.Running() {
		return s.endedAt.Sub(s.startedAt)
	}
	return s.clock.Now().Sub(s.startedAt)
}

// Tick applies this tick's input events in order, then auto-repeat,
// gravity and lock delay. It returns the number of rows cleared.
func (s *Session) Tick(events []core.InputEvent) int {
	s.clearedThisTick = 0
	if !s.Running() {
		return 0
	}
	now := s.clock.Now()

	for _, ev := range events {
		if ev.Released {
			s.release(ev.Action)
		} else {
			s.press(ev.Action, now)
		}
		if !s.Running() {
			return s.clearedThisTick
		}
	}

	s.autoRepeat(now)
	s.applyGravity(now)

	if s.Running() && s.lock.Update(now, s.active.Pos.Y, Grounded(s.active, s.board)) {
		s.lockPiece(now)
	}
	return s.clearedThisTick
}

// Quit ends the session without a result.
func (s *Session) Quit() {
	if s.Running() {
		s.end(OutcomeQuit, s.clock.Now())
	}
}

func (s *Session) press(a core.Action, now time.Time) {
	switch a {
	case core.ActionMoveLeft:
		s.left.Press(now)
		s.shift(-1, now)
	case core.ActionMoveRight:
		s.right.Press(now)
		s.shift(1, now)
	case core.ActionSoftDrop:
		s.down.Press(now)
		if s.settings.InstantSoftDrop {
			s.sonicDrop(now)
		} else {
			s.stepDown(now)
		}
	case core.ActionHardDrop:
		s.active = DropPosition(s.active, s.board)
		s.lockPiece(now)
	case core.ActionRotateCW:
		s.rotate(now, func(p *Piece) bool { return SRSRotate(p, true, s.board) })
	case core.ActionRotateCCW:
		s.rotate(now, func(p *Piece) bool { return SRSRotate(p, false, s.board) })
	case core.ActionRotate180:
		s.rotate(now, func(p *Piece) bool { return Rotate180(p, s.board) })
	case core.ActionHold:
		s.holdPiece(now)
	case core.ActionQuit:
		s.end(OutcomeQuit, now)
	}
}

func (s *Session) release(a core.Action) {
	switch a {
	case core.ActionMoveLeft:
		s.left.Release()
	case core.ActionMoveRight:
		s.right.Release()
	case core.ActionSoftDrop:
		s.down.Release()
	}
}

// accepted refreshes lock delay after a successful move; a refresh also
// restarts the gravity timer.
func (s *Session) accepted(now time.Time) {
	if s.lock.Refresh(now) {
		s.lastFall = now
	}
}

func (s *Session) shift(dx int, now time.Time) bool {
	next := s.active.Moved(dx, 0)
	if !Fits(next, s.board) {
		return false
	}
	s.active = next
	s.accepted(now)
	return true
}

func (s *Session) slide(dx int, now time.Time) {
	target := ShiftLimit(s.active, dx, s.board)
	if target.Pos == s.active.Pos {
		return
	}
	s.active = target
	s.accepted(now)
}

func (s *Session) stepDown(now time.Time) {
	next := s.active.Moved(0, 1)
	if !Fits(next, s.board) {
		return
	}
	s.active = next
	s.lastFall = now
	s.accepted(now)
}

// sonicDrop moves the piece to the floor without locking. It counts as an
// accepted move only when the piece actually moved.
func (s *Session) sonicDrop(now time.Time) {
	target := DropPosition(s.active, s.board)
	if target.Pos == s.active.Pos {
		return
	}
	s.active = target
	s.lastFall = now
	s.accepted(now)
}

func (s *Session) rotate(now time.Time, turn func(*Piece) bool) {
	if turn(&s.active) {
		s.accepted(now)
	}
}

func (s *Session) holdPiece(now time.Time) {
	if s.holdUsed {
		return
	}
	current := s.active.Kind
	var next Piece
	if s.hasHold {
		next = NewPiece(s.hold)
	} else {
		next = s.bag.Next()
	}
	s.hold, s.hasHold, s.holdUsed = current, true, true
	s.spawn(next, now)
}

func (s *Session) autoRepeat(now time.Time) {
	leftHeld, rightHeld := s.left.Held(), s.right.Held()
	if leftHeld && rightHeld {
		// Neither repeats; releasing one resumes from here, not from its press.
		s.left.Rebase(now)
		s.right.Rebase(now)
	}
	if leftHeld != rightHeld {
		r, dx := &s.left, -1
		if rightHeld {
			r, dx = &s.right, 1
		}
		if n := r.Fire(now); n > 0 {
			if s.settings.InstantDAS {
				s.slide(dx, now)
			} else {
				for range n {
					if !s.shift(dx, now) {
						break
					}
				}
			}
		}
	}

	if s.settings.InstantSoftDrop && s.down.Fire(now) > 0 {
		s.sonicDrop(now)
	}
}

// fallInterval is the current gravity period, shortened while a charged
// soft drop is held.
func (s *Session) fallInterval(now time.Time) time.Duration {
	interval := FallInterval(s.level)
	if !s.settings.InstantSoftDrop && s.down.Charged(now) {
		interval = min(interval, s.settings.SoftDropInterval)
	}
	return interval
}

func (s *Session) applyGravity(now time.Time) {
	if now.Sub(s.lastFall) < s.fallInterval(now) {
		return
	}
	s.lastFall = now
	if !Grounded(s.active, s.board) {
		s.active = s.active.Moved(0, 1)
	}
}

func (s *Session) lockPiece(now time.Time) {
	if s.board.Place(s.active) == PlacementAboveCeiling {
		s.end(OutcomeToppedOut, now)
		return
	}
	s.pieces++

	if n := s.board.ClearFullLines(); n > 0 {
		s.award(n, now)
		if !s.Running() {
			return
		}
	}

	s.holdUsed = false
	s.spawn(s.bag.Next(), now)
}

func (s *Session) award(rows int, now time.Time) {
	s.clearedThisTick += rows
	s.lines += rows

	switch s.mode {
	case ModeSprint:
		if s.lines >= s.settings.SprintLines {
			s.end(OutcomeCompleted, now)
		}
	default:
		s.score += LinePoints(rows, s.level)
		if !s.settings.FixedLevel {
			s.level = LevelFor(s.lines, s.settings.InitialLevel)
		}
	}
}

// spawn makes p the active piece. A piece that collides where it enters
// ends the session.
func (s *Session) spawn(p Piece, now time.Time) {
	s.active = p
	s.lock.Reset()
	s.lastFall = now
	if !Fits(p, s.board) {
		s.end(OutcomeToppedOut, now)
	}
}

// ReleaseAll drops every held key, e.g. when the game is paused.
func (s *Session) ReleaseAll() {
	s.left.Release()
	s.right.Release()
	s.down.Release()
}

func (s *Session) end(o Outcome, now time.Time) {
	s.outcome = o
	s.endedAt = now
	s.ReleaseAll()
}

// Failed reports whether the session ended short of its goal. A Classic
// top-out is the normal end of that mode, not a failure.
func (r Result) Failed() bool {
	return r.Mode == ModeSprint && r.Outcome != OutcomeCompleted
}

// Result returns the record of a session that topped out or reached its
// goal. Quits produce none.
func (s *Session) Result() (Result, bool) {
	if s.outcome != OutcomeToppedOut && s.outcome != OutcomeCompleted {
		return Result{}, false
	}
	return Result{
		Mode:    s.mode,
		Outcome: s.outcome,
		Score:   s.score,
		Lines:   s.lines,
		Level:   s.level,
		Pieces:  s.pieces,
		Elapsed: s.Elapsed(),
	}, true
}

// Snapshot is a read-only view of the session for renderers.
type Snapshot struct {
	Mode     Mode
	Board    Grid
	Active   Piece
	Ghost    Piece
	Hold     Kind
	HasHold  bool
	HoldUsed bool
	Preview  []Kind
	Score    int
	Lines    int
	Level    int
	Goal     int // Sprint line target; zero in Classic
	Pieces   int
	Elapsed  time.Duration
	Phase    Phase
	Outcome  Outcome
}

// Running reports whether the snapshot was taken mid-game.
func (s Snapshot) Running() bool {
	return s.Outcome == OutcomePlaying
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:     s.mode,
		Board:    s.board.Grid(),
		Active:   s.active,
		Ghost:    DropPosition(s.active, s.board),
		Hold:     s.hold,
		HasHold:  s.hasHold,
		HoldUsed: s.holdUsed,
		Preview:  s.bag.Preview(s.settings.PreviewSize),
		Score:    s.score,
		Lines:    s.lines,
		Level:    s.level,
		Pieces:   s.pieces,
		Elapsed:  s.Elapsed(),
		Phase:    s.lock.Phase(),
		Outcome:  s.outcome,
	}
	if s.mode == ModeSprint {
		snap.Goal = s.settings.SprintLines
	}
	return snap
}
