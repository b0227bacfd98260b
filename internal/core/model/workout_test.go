package model

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultWorkoutIsValid(t *testing.T) {
	workout := DefaultWorkout()
	if err := workout.Validate(); err != nil {
		t.Fatalf("default workout invalid: %v", err)
	}
	if workout.Len() != 6 {
		t.Fatalf("len = %d, want 6", workout.Len())
	}
	if want := 11 * time.Minute; workout.TotalDuration() != want {
		t.Fatalf("total = %s, want %s", workout.TotalDuration(), want)
	}
	if !workout.IsLast(5) || workout.IsLast(4) {
		t.Fatalf("IsLast mismatch")
	}
}

func TestValidateRejectsBrokenWorkouts(t *testing.T) {
	cases := map[string]Workout{
		"empty": {RestDuration: time.Minute},
		"zero exercise": {
			Exercises:    []Exercise{{Name: "Hold"}},
			RestDuration: time.Minute,
		},
		"zero rest": {
			Exercises: []Exercise{{Name: "Hold", Duration: time.Second}},
		},
		"negative warning": {
			Exercises:        []Exercise{{Name: "Hold", Duration: time.Second}},
			RestDuration:     time.Second,
			WarningThreshold: -time.Second,
		},
	}
	for name, workout := range cases {
		if err := workout.Validate(); !errors.Is(err, ErrInvalidWorkout) {
			t.Fatalf("%s: err = %v, want ErrInvalidWorkout", name, err)
		}
	}
}

func TestExerciseLookup(t *testing.T) {
	workout := DefaultWorkout()
	if _, ok := workout.Exercise(-1); ok {
		t.Fatalf("negative index should not resolve")
	}
	if _, ok := workout.Exercise(6); ok {
		t.Fatalf("out of range index should not resolve")
	}
	exercise, ok := workout.Exercise(2)
	if !ok || exercise.Name != "Dip Hold" {
		t.Fatalf("exercise 2 = %+v, %v", exercise, ok)
	}
	if Seconds(1500*time.Millisecond) != 1 || Seconds(-time.Second) != 0 {
		t.Fatalf("Seconds rounding mismatch")
	}
}
