package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/results"
)

type fakeSource struct {
	records map[string][]results.Record
	err     error
	asked   []registry.GameInfo
}

func (f *fakeSource) Scores(mode registry.GameInfo, limit int) ([]results.Record, error) {
	f.asked = append(f.asked, mode)
	return f.records[mode.ID], f.err
}

var playedAt = time.Date(2024, 6, 2, 18, 45, 0, 0, time.Local)

func TestScoreboardShowsRecords(t *testing.T) {
	src := &fakeSource{records: map[string][]results.Record{
		"classic": {{At: playedAt, Score: 4200, Lines: 31}},
		"sprint":  {{At: playedAt, Timed: true, Elapsed: 83*time.Second + 250*time.Millisecond, Lines: 40}},
	}}

	m := NewScoreboardModel(src, 100, 30)
	view := m.View()
	if !strings.Contains(view, "HIGH SCORES - Classic") {
		t.Errorf("View() missing classic title")
	}
	if !strings.Contains(view, "4200") {
		t.Errorf("View() missing classic score")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	view = m.View()
	if !strings.Contains(view, "01:23.250") {
		t.Errorf("View() missing sprint time")
	}
	if !strings.Contains(view, "Time") {
		t.Errorf("View() missing Time column")
	}

	if len(src.asked) != 2 || src.asked[1].ID != "sprint" || !src.asked[1].Timed {
		t.Errorf("source asked for %+v, expected classic then timed sprint", src.asked)
	}
}

func TestScoreboardPrevModeWraps(t *testing.T) {
	m := NewScoreboardModel(&fakeSource{}, 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	if !strings.Contains(m.View(), "HIGH SCORES - Sprint (40 Lines)") {
		t.Errorf("View() after left did not wrap to sprint")
	}
}

func TestScoreboardEmptyAndError(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 24)
	if !strings.Contains(m.View(), "No results recorded yet.") {
		t.Errorf("View() with nil source missing empty message")
	}

	m = NewScoreboardModel(&fakeSource{err: errors.New("disk on fire")}, 60, 24)
	if !strings.Contains(m.View(), "disk on fire") {
		t.Errorf("View() missing load error")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(&fakeSource{}, 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Errorf("IsGoingBack() = false after esc")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Errorf("IsQuitting() = false after q")
	}
}

func TestFileSourceRanks(t *testing.T) {
	files, err := results.NewCSVStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewCSVStore() error = %v", err)
	}
	for _, secs := range []int{95, 70, 88} {
		rec := results.Record{
			At:       playedAt,
			Mode:     "sprint",
			ModeName: "Lines 40",
			File:     "lines40",
			Timed:    true,
			Elapsed:  time.Duration(secs) * time.Second,
		}
		if err := files.Save(rec); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	sprint, ok := registry.Info("sprint")
	if !ok {
		t.Fatal("sprint mode not registered")
	}
	got, err := FileSource{Files: files}.Scores(sprint, 2)
	if err != nil {
		t.Fatalf("Scores() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(Scores()) = %d, expected 2", len(got))
	}
	if got[0].Elapsed != 70*time.Second || got[1].Elapsed != 88*time.Second {
		t.Errorf("Scores() = %v, %v, expected 70s, 88s", got[0].Elapsed, got[1].Elapsed)
	}
}
