package registry

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type stubGame struct{ id string }

func (s *stubGame) ID() string { return s.id }
func (s *stubGame) Title() string { return "Stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig) {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen) {}
func (s *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("Exists() = false, expected true")
	}
	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q, expected %q", g.ID(), "zz_stub")
	}

	var found bool
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = info.Title == "Stub zz_stub"
		}
	}
	if !found {
		t.Error("List() missing registered game or title")
	}
}

type rankedStub struct {
	stubGame
	timed bool
}

func (r *rankedStub) Timed() bool { return r.timed }
func (r *rankedStub) ResultFile() string { return r.id + "_results" }

func TestInfoCapturesRankedMetadata(t *testing.T) {
	Register("zz_timed", func() Game { return &rankedStub{stubGame: stubGame{id: "zz_timed"}, timed: true} })
	Register("zz_plain", func() Game { return &stubGame{id: "zz_plain"} })

	tests := []struct {
		id     string
		timed  bool
		file   string
		ranked bool
	}{
		{"zz_timed", true, "zz_timed_results", true},
		{"zz_plain", false, "", false},
	}

	for _, tt := range tests {
		info, ok := Info(tt.id)
		if !ok {
			t.Fatalf("Info(%q) not found", tt.id)
		}
		if info.Timed != tt.timed || info.ResultFile != tt.file || info.Ranked() != tt.ranked {
			t.Errorf("Info(%q) = %+v, expected timed=%v file=%q ranked=%v", tt.id, info, tt.timed, tt.file, tt.ranked)
		}
	}

	if _, ok := Info("does_not_exist"); ok {
		t.Error("Info() of unknown id should fail")
	}
}

func TestListSortedByID(t *testing.T) {
	Register("zz_b", func() Game { return &stubGame{id: "zz_b"} })
	Register("zz_a", func() Game { return &stubGame{id: "zz_a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist"); err == nil {
		t.Error("Create() of unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() did not panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
