package engine

import "time"

// DefaultSoftDropInterval is the gravity period while soft drop is held.
const DefaultSoftDropInterval = 20 * time.Millisecond

// DefaultPreviewSize is how many upcoming pieces the snapshot exposes.
const DefaultPreviewSize = 5

// Settings are the tunables consumed when a session is built.
type Settings struct {
	InitialLevel     int
	FixedLevel       bool // keep InitialLevel regardless of lines cleared
	LockDelay        time.Duration
	LockMoves        int
	SoftDropInterval time.Duration
	RepeatDelay      time.Duration
	RepeatInterval   time.Duration
	InstantDAS       bool // a charged shift slides to the wall
	InstantSoftDrop  bool // a charged soft drop snaps to the floor
	PreviewSize      int
	SprintLines      int
}

// DefaultSettings returns the standard tuning.
func DefaultSettings() Settings {
	return Settings{
		InitialLevel:     1,
		LockDelay:        DefaultLockDelay,
		LockMoves:        DefaultLockMoves,
		SoftDropInterval: DefaultSoftDropInterval,
		RepeatDelay:      DefaultRepeatDelay,
		RepeatInterval:   DefaultRepeatInterval,
		PreviewSize:      DefaultPreviewSize,
		SprintLines:      DefaultSprintLines,
	}
}

// normalized replaces out-of-range values with defaults.
func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.InitialLevel < 1 {
		s.InitialLevel = d.InitialLevel
	}
	if s.LockDelay < 0 {
		s.LockDelay = d.LockDelay
	}
	if s.LockMoves < 0 {
		s.LockMoves = d.LockMoves
	}
	if s.SoftDropInterval <= 0 {
		s.SoftDropInterval = d.SoftDropInterval
	}
	if s.RepeatDelay < 0 {
		s.RepeatDelay = d.RepeatDelay
	}
	if s.RepeatInterval < 0 {
		s.RepeatInterval = d.RepeatInterval
	}
	if s.PreviewSize < 0 {
		s.PreviewSize = 0
	}
	if s.SprintLines <= 0 {
		s.SprintLines = d.SprintLines
	}
	return s
}
