package display

import (
	"testing"

	"holdfast/internal/core/engine"
	"holdfast/internal/core/model"
)

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		-3:  "0:00",
		0:   "0:00",
		5:   "0:05",
		60:  "1:00",
		125: "2:05",
	}
	for seconds, want := range cases {
		if got := FormatClock(seconds); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", seconds, got, want)
		}
	}
}

func TestBuildMainScreen(t *testing.T) {
	workout := model.DefaultWorkout()
	screen := Build(workout, engine.Snapshot{State: engine.NotStarted{}, Kind: engine.KindNotStarted, Phase: engine.KindNotStarted})
	if screen.Kind != ScreenMain {
		t.Fatalf("kind = %v, want main", screen.Kind)
	}
	if screen.Timer != "11:00" {
		t.Fatalf("timer = %q, want total routine length", screen.Timer)
	}
	if len(screen.Items) != 6 || screen.Items[0].Detail != "60 seconds" {
		t.Fatalf("items = %+v", screen.Items)
	}
	for _, item := range screen.Items {
		if item.Marker != MarkerPending {
			t.Fatalf("item %d marker = %v", item.Number, item.Marker)
		}
	}
	if Status(screen) != "Ready" {
		t.Fatalf("status = %q", Status(screen))
	}
}

func TestBuildExerciseScreen(t *testing.T) {
	workout := model.DefaultWorkout()
	screen := Build(workout, engine.Snapshot{
		State:     engine.InExercise{Index: 2, Remaining: 4},
		Kind:      engine.KindExercise,
		Phase:     engine.KindExercise,
		Index:     2,
		Remaining: 4,
		Warning:   true,
	})
	if screen.Kind != ScreenExercise || screen.Title != "Dip Hold" {
		t.Fatalf("screen = %+v", screen)
	}
	if screen.Position != "3 of 6" || screen.Timer != "0:04" || !screen.Warning {
		t.Fatalf("screen = %+v", screen)
	}
	want := []Marker{MarkerDone, MarkerDone, MarkerCurrent, MarkerPending, MarkerPending, MarkerPending}
	for i, item := range screen.Items {
		if item.Marker != want[i] {
			t.Fatalf("item %d marker = %v, want %v", i, item.Marker, want[i])
		}
	}
	if Status(screen) != "Dip Hold 0:04" {
		t.Fatalf("status = %q", Status(screen))
	}
}

func TestBuildPausedRestScreen(t *testing.T) {
	workout := model.DefaultWorkout()
	screen := Build(workout, engine.Snapshot{
		Kind:      engine.KindPaused,
		Phase:     engine.KindRest,
		Index:     0,
		Remaining: 30,
	})
	if screen.Kind != ScreenRest || !screen.CanSkip {
		t.Fatalf("screen = %+v", screen)
	}
	if screen.Next != "Next: Reverse Hang" || screen.PauseLabel != "Resume" {
		t.Fatalf("screen = %+v", screen)
	}
	if Status(screen) != "Rest 0:30 (paused)" {
		t.Fatalf("status = %q", Status(screen))
	}
}

func TestBuildCompletionScreen(t *testing.T) {
	workout := model.DefaultWorkout()
	screen := Build(workout, engine.Snapshot{Kind: engine.KindCompleted, Phase: engine.KindCompleted, Index: 5, Progress: 1})
	if screen.Kind != ScreenCompletion {
		t.Fatalf("kind = %v", screen.Kind)
	}
	for _, item := range screen.Items {
		if item.Marker != MarkerDone {
			t.Fatalf("item %d not done", item.Number)
		}
	}
}
