package engine

import "time"

// Input auto-repeat defaults.
const (
	DefaultRepeatDelay    = 100 * time.Millisecond
	DefaultRepeatInterval = 20 * time.Millisecond
)

// maxRepeatsPerTick bounds catch-up after a stall so a long frame cannot
// replay an unbounded burst of moves.
const maxRepeatsPerTick = BoardWidth

// Repeater turns a held action into repeated firings: nothing until Delay
// has passed since the press, then one firing every Interval.
type Repeater struct {
	Delay    time.Duration
	Interval time.Duration

	held      bool
	pressedAt time.Time
	repeating bool
	next      time.Time
}

// Press starts a hold at now. Pressing an already held action restarts it.
func (r *Repeater) Press(now time.Time) {
	r.held = true
	r.pressedAt = now
	r.repeating = false
}

// Release ends the hold.
func (r *Repeater) Release() {
	r.held = false
	r.repeating = false
}

// Held reports whether the action is down.
func (r *Repeater) Held() bool {
	return r.held
}

// Charged reports whether the action has been held for at least Delay.
func (r *Repeater) Charged(now time.Time) bool {
	return r.held && now.Sub(r.pressedAt) >= r.Delay
}

// Rebase discards repeats due up to now, so a charged hold next fires one
// Interval later. Used while the repeat is suppressed.
func (r *Repeater) Rebase(now time.Time) {
	if !r.Charged(now) {
		return
	}
	r.repeating = true
	r.next = now.Add(r.Interval)
}

// Fire returns how many repeats are due at now and consumes them.
func (r *Repeater) Fire(now time.Time) int {
	if !r.Charged(now) {
		return 0
	}
	if !r.repeating {
		r.repeating = true
		r.next = r.pressedAt.Add(r.Delay)
	}
	if r.Interval <= 0 {
		r.next = now
		return maxRepeatsPerTick
	}

	n := 0
	for !now.Before(r.next) && n < maxRepeatsPerTick {
		n++
		r.next = r.next.Add(r.Interval)
	}
	if !now.Before(r.next) {
		r.next = now.Add(r.Interval)
	}
	return n
}
