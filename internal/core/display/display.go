// Package display turns engine snapshots into the text and markers that
// front ends draw. It holds no state of its own.
package display

import (
	"fmt"

	"holdfast/internal/core/engine"
	"holdfast/internal/core/model"
)

// ScreenKind selects which of the four screens is visible.
type ScreenKind int

const (
	ScreenMain ScreenKind = iota
	ScreenExercise
	ScreenRest
	ScreenCompletion
)

// Marker is the status badge of an exercise in the list.
type Marker int

const (
	MarkerPending Marker = iota
	MarkerCurrent
	MarkerDone
)

// Item is one row of the exercise list.
type Item struct {
	Number int
	Name   string
	Detail string
	Marker Marker
}

// Screen is everything a renderer needs for one frame.
type Screen struct {
	Kind       ScreenKind
	Title      string
	Timer      string
	Progress   float64
	Position   string
	Next       string
	PauseLabel string
	Paused     bool
	Warning    bool
	CanSkip    bool
	Items      []Item
}

// Build derives the screen for snapshot.
func Build(workout model.Workout, snapshot engine.Snapshot) Screen {
	screen := Screen{
		Kind:       screenKind(snapshot),
		Timer:      FormatClock(snapshot.Remaining),
		Progress:   snapshot.Progress,
		Paused:     snapshot.Kind == engine.KindPaused,
		Warning:    snapshot.Warning,
		PauseLabel: "Pause",
		Items:      items(workout, snapshot),
	}
	if screen.Paused {
		screen.PauseLabel = "Resume"
	}

	switch screen.Kind {
	case ScreenMain:
		screen.Title = "Holdfast"
		screen.Timer = FormatClock(model.Seconds(workout.TotalDuration()))
	case ScreenExercise:
		if exercise, ok := workout.Exercise(snapshot.Index); ok {
			screen.Title = exercise.Name
		}
		screen.Position = fmt.Sprintf("%d of %d", snapshot.Index+1, workout.Len())
	case ScreenRest:
		screen.Title = "Rest"
		screen.CanSkip = true
		if next, ok := workout.Exercise(snapshot.Index + 1); ok {
			screen.Next = "Next: " + next.Name
		}
	case ScreenCompletion:
		screen.Title = "Workout complete"
		screen.Timer = FormatClock(0)
	}
	return screen
}

// Status returns a one-line summary for tray menus and window titles.
func Status(screen Screen) string {
	var status string
	switch screen.Kind {
	case ScreenMain:
		return "Ready"
	case ScreenCompletion:
		return "Workout complete"
	default:
		status = fmt.Sprintf("%s %s", screen.Title, screen.Timer)
	}
	if screen.Paused {
		status += " (paused)"
	}
	return status
}

// FormatClock renders seconds as M:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func screenKind(snapshot engine.Snapshot) ScreenKind {
	switch snapshot.Phase {
	case engine.KindExercise:
		return ScreenExercise
	case engine.KindRest:
		return ScreenRest
	case engine.KindCompleted:
		return ScreenCompletion
	default:
		return ScreenMain
	}
}

func items(workout model.Workout, snapshot engine.Snapshot) []Item {
	list := make([]Item, 0, workout.Len())
	for index, exercise := range workout.Exercises {
		list = append(list, Item{
			Number: index + 1,
			Name:   exercise.Name,
			Detail: fmt.Sprintf("%d seconds", model.Seconds(exercise.Duration)),
			Marker: marker(index, snapshot),
		})
	}
	return list
}

func marker(index int, snapshot engine.Snapshot) Marker {
	switch snapshot.Kind {
	case engine.KindNotStarted:
		return MarkerPending
	case engine.KindCompleted:
		return MarkerDone
	}
	switch {
	case index < snapshot.Index:
		return MarkerDone
	case index == snapshot.Index:
		return MarkerCurrent
	default:
		return MarkerPending
	}
}
