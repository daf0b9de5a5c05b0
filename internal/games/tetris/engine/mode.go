package engine

// Mode selects the session rules.
type Mode int

const (
	// ModeClassic scores line clears and speeds up every ten lines until top-out.
	ModeClassic Mode = iota
	// ModeSprint is a race to clear a fixed number of lines; the result is the time.
	ModeSprint
)

// DefaultSprintLines is the sprint goal.
const DefaultSprintLines = 40

// ID returns the stable identifier used for registry and storage keys.
func (m Mode) ID() string {
	switch m {
	case ModeSprint:
		return "sprint"
	default:
		return "classic"
	}
}

// Name returns the display name written into result records.
func (m Mode) Name() string {
	switch m {
	case ModeSprint:
		return "Lines 40"
	default:
		return "Classic"
	}
}

// FileStem names the per-mode result file, without extension.
func (m Mode) FileStem() string {
	switch m {
	case ModeSprint:
		return "lines40"
	default:
		return "classic"
	}
}

// Timed reports whether results rank by elapsed time instead of score.
func (m Mode) Timed() bool {
	return m == ModeSprint
}

func (m Mode) String() string {
	return m.ID()
}

// ParseMode resolves a mode identifier.
func ParseMode(id string) (Mode, bool) {
	switch id {
	case "classic":
		return ModeClassic, true
	case "sprint":
		return ModeSprint, true
	default:
		return ModeClassic, false
	}
}
