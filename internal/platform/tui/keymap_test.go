package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(0)

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft, false},
		{"vim right", runeKey('l'), core.ActionMoveRight, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop, false},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW, false},
		{"z", runeKey('z'), core.ActionRotateCCW, false},
		{"a", runeKey('a'), core.ActionRotate180, false},
		{"c", runeKey('c'), core.ActionHold, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('y'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestPressHoldableOnce(t *testing.T) {
	km := NewKeyMapper(80 * time.Millisecond)
	now := time.Unix(0, 0)
	frame := core.NewInputFrame()

	km.Press(core.ActionMoveLeft, now, &frame)
	km.Press(core.ActionMoveLeft, now.Add(30*time.Millisecond), &frame)
	km.Press(core.ActionMoveLeft, now.Add(60*time.Millisecond), &frame)

	if len(frame.Events) != 1 {
		t.Fatalf("len(Events) = %d, expected 1", len(frame.Events))
	}
	if !km.Held(core.ActionMoveLeft) {
		t.Errorf("Held(MoveLeft) = false, expected true")
	}
}

func TestPressNonHoldable(t *testing.T) {
	km := NewKeyMapper(0)
	now := time.Unix(0, 0)
	frame := core.NewInputFrame()

	km.Press(core.ActionRotateCW, now, &frame)
	km.Press(core.ActionRotateCW, now, &frame)
	km.Press(core.ActionNone, now, &frame)

	if len(frame.Events) != 2 {
		t.Errorf("len(Events) = %d, expected 2", len(frame.Events))
	}
	if km.Held(core.ActionRotateCW) {
		t.Errorf("Held(RotateCW) = true, expected false")
	}
}

func TestExpireReleasesStaleKeys(t *testing.T) {
	km := NewKeyMapper(80 * time.Millisecond)
	now := time.Unix(0, 0)
	frame := core.NewInputFrame()

	km.Press(core.ActionMoveLeft, now, &frame)
	km.Press(core.ActionSoftDrop, now.Add(50*time.Millisecond), &frame)
	frame.Clear()

	km.Expire(now.Add(80*time.Millisecond), &frame)
	if len(frame.Events) != 0 {
		t.Fatalf("Expire() at grace boundary released %v", frame.Events)
	}

	km.Expire(now.Add(100*time.Millisecond), &frame)
	if len(frame.Events) != 1 {
		t.Fatalf("len(Events) = %d, expected 1", len(frame.Events))
	}
	ev := frame.Events[0]
	if ev.Action != core.ActionMoveLeft || !ev.Released {
		t.Errorf("Events[0] = %+v, expected release of MoveLeft", ev)
	}
	if km.Held(core.ActionMoveLeft) {
		t.Errorf("Held(MoveLeft) = true after expiry")
	}
	if !km.Held(core.ActionSoftDrop) {
		t.Errorf("Held(SoftDrop) = false, expected still held")
	}
}

func TestReleaseAll(t *testing.T) {
	km := NewKeyMapper(0)
	now := time.Unix(0, 0)
	frame := core.NewInputFrame()

	km.Press(core.ActionSoftDrop, now, &frame)
	km.Press(core.ActionMoveRight, now, &frame)
	km.Press(core.ActionMoveLeft, now, &frame)
	frame.Clear()

	km.ReleaseAll(&frame)

	expected := []core.Action{core.ActionMoveLeft, core.ActionMoveRight, core.ActionSoftDrop}
	if len(frame.Events) != len(expected) {
		t.Fatalf("len(Events) = %d, expected %d", len(frame.Events), len(expected))
	}
	for i, a := range expected {
		if frame.Events[i].Action != a || !frame.Events[i].Released {
			t.Errorf("Events[%d] = %+v, expected release of %v", i, frame.Events[i], a)
		}
		if km.Held(a) {
			t.Errorf("Held(%v) = true after ReleaseAll", a)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper(0)

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey('d'), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('y'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
