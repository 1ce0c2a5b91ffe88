package registry

import (
	"testing"

	"github.com/vovakirdan/loopdice/internal/core"
)

type stubGame struct {
	id      string
	summary string
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }
func (g *stubGame) Summary() string { return g.summary }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a", summary: "first"} })
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should exist")
	}
	if Exists("stub_missing") {
		t.Fatal("stub_missing should not exist")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("ID = %q, want stub_b", g.ID())
	}

	info, ok := Info("stub_a")
	if !ok || info.Title != "Stub stub_a" || info.Summary != "first" {
		t.Errorf("Info(stub_a) = %+v, %v", info, ok)
	}

	if _, err := Create("stub_missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}
}

func TestListSorted(t *testing.T) {
	Register("stub_z", func() Game { return &stubGame{id: "stub_z"} })
	Register("stub_m", func() Game { return &stubGame{id: "stub_m"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List not sorted at %d: %q >= %q", i, list[i-1].ID, list[i].ID)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
