package workout

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"holdfast/internal/core/display"
	"holdfast/internal/core/engine"
	"holdfast/internal/core/model"
	"holdfast/internal/ui/animation"
	"holdfast/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controller receives the commands issued from the window.
type Controller interface {
	Start() error
	TogglePause() error
	Skip() error
	Restart() error
}

// Config defines window behaviour.
type Config struct {
	Fullscreen bool
	Logger     *slog.Logger
}

var (
	timerColor     = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	warningColor   = color.NRGBA{R: 248, G: 81, B: 73, A: 255}
	highlightColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	titleColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	windowWidth  = float32(420)
	windowHeight = float32(560)
)

// Window renders the workout in one window with four screens.
type Window struct {
	window     fyne.Window
	workout    model.Workout
	controller Controller
	config     Config
	flash      *animation.Engine
	onExit     func()
	onRender   func(display.Screen)

	mainScreen       *fyne.Container
	exerciseScreen   *fyne.Container
	restScreen       *fyne.Container
	completionScreen *fyne.Container

	totalLabel *widget.Label
	rows       []listRow
	exercise   phaseView
	rest       phaseView
	position   *widget.Label
	next       *widget.Label
	summary    *widget.Label

	screen      display.Screen
	highlighted bool
}

type listRow struct {
	number *widget.Label
	check  *widget.Icon
	name   *widget.Label
}

type phaseView struct {
	title    *canvas.Text
	timer    *canvas.Text
	progress *widget.ProgressBar
	pause    *widget.Button
}

// New creates the workout window. It is hidden until Show.
func New(app fyne.App, workout model.Workout, controller Controller, config Config) *Window {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	window := app.NewWindow("Holdfast")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:     window,
		workout:    workout,
		controller: controller,
		config:     config,
	}
	view.flash = animation.New(animation.DefaultConfig(), func(on bool) {
		fyne.Do(func() {
			view.setHighlightUnsafe(on)
		})
	})

	view.mainScreen = view.buildMainScreen()
	view.exerciseScreen = view.buildExerciseScreen()
	view.restScreen = view.buildRestScreen()
	view.completionScreen = view.buildCompletionScreen()

	window.SetContent(container.NewStack(view.mainScreen, view.exerciseScreen, view.restScreen, view.completionScreen))
	view.render(engine.Snapshot{State: engine.NotStarted{}, Kind: engine.KindNotStarted, Phase: engine.KindNotStarted})
	view.applyWindowMode()

	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window and stops any flash.
func (view *Window) Hide() {
	view.flash.Stop()
	view.window.Hide()
}

// SetOnExit sets a handler run after the completion screen Exit button
// has returned the workout to the main screen.
func (view *Window) SetOnExit(handler func()) {
	view.onExit = handler
}

// SetOnRender sets a hook that sees every rendered screen on the UI thread.
func (view *Window) SetOnRender(handler func(display.Screen)) {
	view.onRender = handler
}

// SetCloseIntercept replaces the default close behaviour.
func (view *Window) SetCloseIntercept(handler func()) {
	view.window.SetCloseIntercept(handler)
}

// SetFullscreen switches between fullscreen and a centred window.
func (view *Window) SetFullscreen(enabled bool) {
	view.config.Fullscreen = enabled
	view.applyWindowMode()
}

// Handle renders event. It is safe to call from any goroutine.
func (view *Window) Handle(event engine.Event) {
	fyne.Do(func() {
		view.render(event.Snapshot)
	})
	if event.Type == engine.EventWarning && !event.Replayed {
		view.flash.Flash(context.Background(), animation.PatternFor(event.Snapshot.Remaining))
	}
	if event.Type == engine.EventStateChange {
		view.flash.Stop()
	}
}

// Run handles events until the channel closes or ctx is done.
func (view *Window) Run(ctx context.Context, events <-chan engine.Event) {
	defer view.flash.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			view.Handle(event)
		}
	}
}

// Screen returns the last rendered screen.
func (view *Window) Screen() display.Screen {
	return view.screen
}

func (view *Window) buildMainScreen() *fyne.Container {
	title := newTitle("Holdfast", 28)
	view.totalLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	list := container.NewVBox()
	check := resources.MustIcon(resources.IconCheck)
	for _, exercise := range view.workout.Exercises {
		row := listRow{
			number: widget.NewLabel(""),
			check:  widget.NewIcon(check),
			name:   widget.NewLabel(exercise.Name),
		}
		row.check.Hide()
		detail := widget.NewLabel(fmt.Sprintf("%d seconds", model.Seconds(exercise.Duration)))
		view.rows = append(view.rows, row)
		list.Add(container.NewHBox(container.NewStack(row.number, row.check), row.name, layout.NewSpacer(), detail))
	}

	start := widget.NewButton("Start Workout", view.command("start", view.controller.Start))
	start.Importance = widget.HighImportance

	return container.NewBorder(
		container.NewVBox(title, view.totalLabel),
		container.NewPadded(start),
		nil, nil,
		container.NewVScroll(list),
	)
}

func (view *Window) buildExerciseScreen() *fyne.Container {
	view.exercise = newPhaseView("", view.command("pause", view.controller.TogglePause))
	view.position = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	return container.NewVBox(
		layout.NewSpacer(),
		view.exercise.title,
		view.exercise.timer,
		container.NewPadded(view.exercise.progress),
		view.position,
		layout.NewSpacer(),
		container.NewPadded(view.exercise.pause),
	)
}

func (view *Window) buildRestScreen() *fyne.Container {
	view.rest = newPhaseView("Rest", view.command("pause", view.controller.TogglePause))
	view.next = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	skip := widget.NewButton("Skip", view.command("skip", view.controller.Skip))
	return container.NewVBox(
		layout.NewSpacer(),
		view.rest.title,
		view.rest.timer,
		container.NewPadded(view.rest.progress),
		view.next,
		layout.NewSpacer(),
		container.NewPadded(container.NewGridWithColumns(2, view.rest.pause, skip)),
	)
}

func (view *Window) buildCompletionScreen() *fyne.Container {
	title := newTitle("Workout complete", 26)
	view.summary = widget.NewLabelWithStyle(
		fmt.Sprintf("All %d exercises done.", view.workout.Len()),
		fyne.TextAlignCenter, fyne.TextStyle{},
	)
	restart := widget.NewButton("Restart", view.command("restart", view.restartWorkout))
	restart.Importance = widget.HighImportance
	exit := widget.NewButton("Exit", view.command("exit", view.exitWorkout))
	return container.NewVBox(
		layout.NewSpacer(),
		title,
		view.summary,
		layout.NewSpacer(),
		container.NewPadded(container.NewGridWithColumns(2, restart, exit)),
	)
}

// render must run on the UI thread.
func (view *Window) render(snapshot engine.Snapshot) {
	screen := display.Build(view.workout, snapshot)
	view.screen = screen

	view.showScreen(screen.Kind)
	switch screen.Kind {
	case display.ScreenMain:
		view.totalLabel.SetText("Total " + screen.Timer)
	case display.ScreenExercise:
		view.exercise.update(screen, view.highlighted)
		view.position.SetText(screen.Position)
	case display.ScreenRest:
		view.rest.update(screen, view.highlighted)
		view.next.SetText(screen.Next)
	}
	view.renderList(screen.Items)

	if view.onRender != nil {
		view.onRender(screen)
	}
}

func (view *Window) renderList(items []display.Item) {
	for i, item := range items {
		if i >= len(view.rows) {
			return
		}
		row := view.rows[i]
		row.number.SetText(fmt.Sprintf("%d", item.Number))
		if item.Marker == display.MarkerDone {
			row.number.Hide()
			row.check.Show()
		} else {
			row.check.Hide()
			row.number.Show()
		}
		row.name.TextStyle = fyne.TextStyle{Bold: item.Marker == display.MarkerCurrent}
		row.name.Refresh()
	}
}

func (view *Window) showScreen(kind display.ScreenKind) {
	screens := map[display.ScreenKind]*fyne.Container{
		display.ScreenMain:       view.mainScreen,
		display.ScreenExercise:   view.exerciseScreen,
		display.ScreenRest:       view.restScreen,
		display.ScreenCompletion: view.completionScreen,
	}
	for screenKind, screen := range screens {
		if screenKind == kind {
			screen.Show()
		} else {
			screen.Hide()
		}
	}
}

func (view *Window) setHighlightUnsafe(on bool) {
	view.highlighted = on
	switch view.screen.Kind {
	case display.ScreenExercise:
		view.exercise.paint(view.screen.Warning, on)
	case display.ScreenRest:
		view.rest.paint(view.screen.Warning, on)
	}
}

// restartWorkout runs the routine again from the first exercise.
func (view *Window) restartWorkout() error {
	if err := view.controller.Restart(); err != nil {
		return err
	}
	return view.controller.Start()
}

// exitWorkout returns to the main screen.
func (view *Window) exitWorkout() error {
	if err := view.controller.Restart(); err != nil {
		return err
	}
	if view.onExit != nil {
		view.onExit()
	}
	return nil
}

func (view *Window) command(name string, run func() error) func() {
	return func() {
		if err := run(); err != nil {
			view.config.Logger.Debug("workout command ignored", "command", name, "error", err)
		}
	}
}

func (view *Window) applyWindowMode() {
	if view.config.Fullscreen {
		view.window.SetFullScreen(true)
		return
	}
	view.window.SetFullScreen(false)
	view.window.Resize(fyne.NewSize(windowWidth, windowHeight))
	view.window.CenterOnScreen()
}

func newPhaseView(title string, onPause func()) phaseView {
	timer := canvas.NewText("0:00", timerColor)
	timer.Alignment = fyne.TextAlignCenter
	timer.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timer.TextSize = 64

	return phaseView{
		title:    newTitle(title, 26),
		timer:    timer,
		progress: widget.NewProgressBar(),
		pause:    widget.NewButton("Pause", onPause),
	}
}

func (phase phaseView) update(screen display.Screen, highlighted bool) {
	phase.title.Text = screen.Title
	phase.timer.Text = screen.Timer
	phase.progress.SetValue(screen.Progress)
	phase.pause.SetText(screen.PauseLabel)
	phase.paint(screen.Warning, highlighted)
}

func (phase phaseView) paint(warning, highlighted bool) {
	switch {
	case warning && highlighted:
		phase.timer.Color = highlightColor
		phase.title.Color = warningColor
	case warning:
		phase.timer.Color = warningColor
		phase.title.Color = warningColor
	default:
		phase.timer.Color = timerColor
		phase.title.Color = titleColor
	}
	phase.title.Refresh()
	phase.timer.Refresh()
}

func newTitle(text string, size float32) *canvas.Text {
	title := canvas.NewText(text, titleColor)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = size
	return title
}
