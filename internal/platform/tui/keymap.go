package tui

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// DefaultHoldGrace is how long a held key may go without a repeat event
// before it is considered released.
const DefaultHoldGrace = 80 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
//
// Terminals only report key presses, repeated by the OS while a key is
// down. Shift and soft-drop keys are tracked as held from their first event
// until no event has arrived for the grace period; the mapper then emits a
// release so the engine's own auto-repeat stops.
type KeyMapper struct {
	grace time.Duration
	held  *intmap.Map[core.Action, time.Time] // last event time per held action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper(grace time.Duration) *KeyMapper {
	if grace <= 0 {
		grace = DefaultHoldGrace
	}
	return &KeyMapper{
		grace: grace,
		held:  intmap.New[core.Action, time.Time](4),
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "h":
		return core.ActionMoveLeft, false
	case "right", "l":
		return core.ActionMoveRight, false
	case "down", "j":
		return core.ActionSoftDrop, false
	case " ":
		return core.ActionHardDrop, false
	case "up", "x", "k":
		return core.ActionRotateCW, false
	case "z", "ctrl+z":
		return core.ActionRotateCCW, false
	case "a":
		return core.ActionRotate180, false
	case "c", "C":
		return core.ActionHold, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// holdable reports whether an action is auto-repeated by the engine.
func holdable(a core.Action) bool {
	switch a {
	case core.ActionMoveLeft, core.ActionMoveRight, core.ActionSoftDrop:
		return true
	default:
		return false
	}
}

// Press records a key event for a. Repeats of an already-held action only
// extend the hold; everything else becomes a press event in the frame.
func (km *KeyMapper) Press(a core.Action, now time.Time, frame *core.InputFrame) {
	if a == core.ActionNone {
		return
	}
	if !holdable(a) {
		frame.Set(a)
		return
	}
	if _, ok := km.held.Get(a); ok {
		km.held.Put(a, now)
		return
	}
	km.held.Put(a, now)
	frame.Set(a)
}

// Expire emits releases for held actions whose events stopped arriving.
func (km *KeyMapper) Expire(now time.Time, frame *core.InputFrame) {
	var expired []core.Action
	km.held.ForEach(func(a core.Action, last time.Time) bool {
		if now.Sub(last) > km.grace {
			expired = append(expired, a)
		}
		return true
	})
	slices.Sort(expired) // map order is random; keep release events deterministic
	for _, a := range expired {
		km.held.Del(a)
		frame.Release(a)
	}
}

// ReleaseAll releases every held action.
func (km *KeyMapper) ReleaseAll(frame *core.InputFrame) {
	var all []core.Action
	km.held.ForEach(func(a core.Action, _ time.Time) bool {
		all = append(all, a)
		return true
	})
	slices.Sort(all)
	for _, a := range all {
		frame.Release(a)
	}
	km.held.Clear()
}

// Held reports whether a is currently held.
func (km *KeyMapper) Held(a core.Action) bool {
	_, ok := km.held.Get(a)
	return ok
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
