package engine

import "time"

// Lock-delay defaults.
const (
	DefaultLockDelay = 500 * time.Millisecond
	DefaultLockMoves = 15
	// lockFallEscape is how many rows a piece may fall below the row where
	// its delay started before the delay is abandoned.
	lockFallEscape = 3
)

// Phase is the lock-delay state of the active piece.
type Phase int

const (
	PhaseFalling Phase = iota
	PhaseLockDelay
	PhaseLocked
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseLockDelay:
		return "lock-delay"
	case PhaseLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// LockDelay decides when a grounded piece locks.
//
//	Falling   -> LockDelay  piece becomes grounded; timer starts
//	LockDelay -> Falling    piece has fallen more than 3 rows since the delay began
//	LockDelay -> Locked     timer expired while grounded
//
// Accepted moves and rotations refresh the timer, at most maxMoves times
// per piece.
type LockDelay struct {
	duration time.Duration
	maxMoves int

	phase    Phase
	started  time.Time
	startRow int
	moves    int
}

// NewLockDelay creates a lock-delay machine in the Falling phase.
func NewLockDelay(duration time.Duration, maxMoves int) LockDelay {
	return LockDelay{duration: duration, maxMoves: maxMoves}
}

// Phase returns the current phase.
func (l *LockDelay) Phase() Phase {
	return l.phase
}

// Moves returns how many refreshes the current piece has used.
func (l *LockDelay) Moves() int {
	return l.moves
}

// Reset returns to Falling with all counters cleared. Called for every new piece.
func (l *LockDelay) Reset() {
	l.phase = PhaseFalling
	l.started = time.Time{}
	l.startRow = 0
	l.moves = 0
}

// Refresh records an accepted move or rotation. While delayed and under the
// move cap it restarts the timer and reports true.
func (l *LockDelay) Refresh(now time.Time) bool {
	if l.phase != PhaseLockDelay || l.moves >= l.maxMoves {
		return false
	}
	l.moves++
	l.started = now
	return true
}

// Remaining returns the time left before lock, or the full duration when not delayed.
func (l *LockDelay) Remaining(now time.Time) time.Duration {
	if l.phase != PhaseLockDelay {
		return l.duration
	}
	return max(l.duration-now.Sub(l.started), 0)
}

// Update advances the machine for the piece at row and reports whether it
// locked.
func (l *LockDelay) Update(now time.Time, row int, grounded bool) bool {
	switch l.phase {
	case PhaseLocked:
		return true
	case PhaseLockDelay:
		if row-l.startRow > lockFallEscape {
			l.phase = PhaseFalling
			l.moves = 0
		}
	}

	if l.phase == PhaseFalling {
		if !grounded {
			return false
		}
		l.phase = PhaseLockDelay
		l.started = now
		l.startRow = row
	}

	if grounded && now.Sub(l.started) >= l.duration {
		l.phase = PhaseLocked
		return true
	}
	return false
}
