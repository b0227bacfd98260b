package tui

import (
	"strings"
	"testing"

	"holdfast/internal/core/engine"
	"holdfast/internal/core/model"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeController struct {
	calls []string
	err   error
}

func (controller *fakeController) record(name string) error {
	controller.calls = append(controller.calls, name)
	return controller.err
}

func (controller *fakeController) Start() error { return controller.record("start") }
func (controller *fakeController) TogglePause() error { return controller.record("toggle") }
func (controller *fakeController) Skip() error { return controller.record("skip") }
func (controller *fakeController) Restart() error { return controller.record("restart") }

func runeKey(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func newTestApp(controller Controller, events <-chan engine.Event) *App {
	initial := engine.Snapshot{State: engine.NotStarted{}, Kind: engine.KindNotStarted, Phase: engine.KindNotStarted}
	return NewApp(controller, model.DefaultWorkout(), initial, events)
}

func TestKeysDriveController(t *testing.T) {
	controller := &fakeController{}
	app := newTestApp(controller, make(chan engine.Event))

	for _, value := range []string{"s", "p", "k", "r", "x"} {
		app.Update(runeKey(value))
	}
	want := []string{"start", "toggle", "skip", "restart"}
	if strings.Join(controller.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", controller.calls, want)
	}
}

func TestQuitKey(t *testing.T) {
	app := newTestApp(&fakeController{}, make(chan engine.Event))
	_, cmd := app.Update(runeKey("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestRejectedCommandIsShown(t *testing.T) {
	controller := &fakeController{err: engine.ErrInvalidTransition}
	app := newTestApp(controller, make(chan engine.Event))
	app.Update(runeKey("k"))
	if !strings.Contains(app.View(), engine.ErrInvalidTransition.Error()) {
		t.Fatalf("error not rendered")
	}
}

func TestEventsRenderScreens(t *testing.T) {
	events := make(chan engine.Event, 1)
	app := newTestApp(&fakeController{}, events)
	if !strings.Contains(app.View(), "Dead Hang") || !strings.Contains(app.View(), "Total 11:00") {
		t.Fatalf("main screen missing:\n%s", app.View())
	}

	events <- engine.Event{Type: engine.EventProgress, Snapshot: engine.Snapshot{
		Kind:      engine.KindRest,
		Phase:     engine.KindRest,
		Index:     1,
		Remaining: 75,
		Progress:  0.5,
	}}
	msg := app.Init()()
	_, cmd := app.Update(msg)
	if cmd == nil {
		t.Fatalf("model should keep listening for events")
	}
	view := app.View()
	for _, want := range []string{"Rest", "1:15", "Next: Dip Hold"} {
		if !strings.Contains(view, want) {
			t.Fatalf("rest view missing %q:\n%s", want, view)
		}
	}
}

func TestClosedEventsQuit(t *testing.T) {
	events := make(chan engine.Event)
	close(events)
	app := newTestApp(&fakeController{}, events)
	_, cmd := app.Update(app.Init()())
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
