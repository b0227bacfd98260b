// Package tui is the terminal front end. It renders the same screens as the
// desktop window from the engine event stream.
package tui

import (
	"fmt"
	"strings"

	"holdfast/internal/core/display"
	"holdfast/internal/core/engine"
	"holdfast/internal/core/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller receives the commands bound to keys.
type Controller interface {
	Start() error
	TogglePause() error
	Skip() error
	Restart() error
}

type eventMsg engine.Event

type eventsClosedMsg struct{}

// App is the bubbletea model.
type App struct {
	controller Controller
	workout    model.Workout
	events     <-chan engine.Event

	screen   display.Screen
	keys     keyMap
	help     help.Model
	progress progress.Model
	width    int
	err      error
}

// NewApp creates a model that follows events and drives controller.
func NewApp(controller Controller, workout model.Workout, initial engine.Snapshot, events <-chan engine.Event) *App {
	return &App{
		controller: controller,
		workout:    workout,
		events:     events,
		screen:     display.Build(workout, initial),
		keys:       defaultKeyMap(),
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (a *App) Init() tea.Cmd {
	return waitForEvent(a.events)
}

func waitForEvent(events <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		a.progress.Width = max(10, min(msg.Width-4, 60))
		return a, nil

	case eventMsg:
		a.screen = display.Build(a.workout, msg.Snapshot)
		a.err = nil
		return a, waitForEvent(a.events)

	case eventsClosedMsg:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Start):
		err = a.controller.Start()
	case key.Matches(msg, a.keys.Pause):
		err = a.controller.TogglePause()
	case key.Matches(msg, a.keys.Skip):
		err = a.controller.Skip()
	case key.Matches(msg, a.keys.Restart):
		err = a.controller.Restart()
	}
	a.err = err
	return a, nil
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(1, 3)
)

func (a *App) View() string {
	var b strings.Builder

	switch a.screen.Kind {
	case display.ScreenMain:
		b.WriteString(titleStyle.Render(a.screen.Title) + "\n")
		b.WriteString(dimStyle.Render("Total "+a.screen.Timer) + "\n\n")
		b.WriteString(a.viewList())
	case display.ScreenExercise, display.ScreenRest:
		b.WriteString(boxStyle.Render(a.viewPhase()) + "\n\n")
		b.WriteString(a.viewList())
	case display.ScreenCompletion:
		b.WriteString(titleStyle.Render(a.screen.Title) + "\n")
		fmt.Fprintf(&b, "All %d exercises done.\n\n", a.workout.Len())
		b.WriteString(a.viewList())
	}

	if a.err != nil {
		b.WriteString("\n" + errorStyle.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n" + a.help.View(a.keys))
	return b.String()
}

func (a *App) viewPhase() string {
	titleRender, timerRender := titleStyle, timerStyle
	if a.screen.Warning {
		titleRender, timerRender = warningStyle, warningStyle
	}

	lines := []string{
		titleRender.Render(a.screen.Title),
		timerRender.Render(a.screen.Timer),
		a.progress.ViewAs(a.screen.Progress),
	}
	if a.screen.Position != "" {
		lines = append(lines, dimStyle.Render(a.screen.Position))
	}
	if a.screen.Next != "" {
		lines = append(lines, dimStyle.Render(a.screen.Next))
	}
	if a.screen.Paused {
		lines = append(lines, warningStyle.Render("paused"))
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewList() string {
	var b strings.Builder
	for _, item := range a.screen.Items {
		line := fmt.Sprintf("%d. %-16s %s", item.Number, item.Name, item.Detail)
		switch item.Marker {
		case display.MarkerDone:
			b.WriteString(doneStyle.Render("✓ "+line) + "\n")
		case display.MarkerCurrent:
			b.WriteString(currentStyle.Render("› "+line) + "\n")
		default:
			b.WriteString(dimStyle.Render("  "+line) + "\n")
		}
	}
	return b.String()
}
