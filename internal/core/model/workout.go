package model

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultRestDuration separates consecutive exercises.
	DefaultRestDuration = 60 * time.Second
	// DefaultWarningThreshold is the length of the countdown warning band.
	DefaultWarningThreshold = 5 * time.Second
)

// ErrInvalidWorkout is returned by Validate for unusable workout definitions.
var ErrInvalidWorkout = errors.New("invalid workout")

// Exercise is one timed hold in the routine.
type Exercise struct {
	ID       int
	Name     string
	Duration time.Duration
}

// Workout is the static, ordered routine the engine walks through.
type Workout struct {
	Exercises        []Exercise
	RestDuration     time.Duration
	WarningThreshold time.Duration
}

// DefaultWorkout returns the built-in six-exercise hold routine.
func DefaultWorkout() Workout {
	return Workout{
		Exercises: []Exercise{
			{ID: 0, Name: "Dead Hang", Duration: 60 * time.Second},
			{ID: 1, Name: "Reverse Hang", Duration: 60 * time.Second},
			{ID: 2, Name: "Dip Hold", Duration: 60 * time.Second},
			{ID: 3, Name: "Farmer's Carry", Duration: 60 * time.Second},
			{ID: 4, Name: "Leg Straddle", Duration: 60 * time.Second},
			{ID: 5, Name: "Wall Hold", Duration: 60 * time.Second},
		},
		RestDuration:     DefaultRestDuration,
		WarningThreshold: DefaultWarningThreshold,
	}
}

// Validate checks that every duration is usable by the engine.
func (workout Workout) Validate() error {
	if len(workout.Exercises) == 0 {
		return fmt.Errorf("%w: no exercises", ErrInvalidWorkout)
	}
	for index, exercise := range workout.Exercises {
		if exercise.Duration < time.Second {
			return fmt.Errorf("%w: exercise %d (%s) duration %s", ErrInvalidWorkout, index, exercise.Name, exercise.Duration)
		}
	}
	if workout.RestDuration < time.Second {
		return fmt.Errorf("%w: rest duration %s", ErrInvalidWorkout, workout.RestDuration)
	}
	if workout.WarningThreshold < 0 {
		return fmt.Errorf("%w: warning threshold %s", ErrInvalidWorkout, workout.WarningThreshold)
	}
	return nil
}

// Len returns the number of exercises.
func (workout Workout) Len() int {
	return len(workout.Exercises)
}

// Exercise returns the exercise at index and whether it exists.
func (workout Workout) Exercise(index int) (Exercise, bool) {
	if index < 0 || index >= len(workout.Exercises) {
		return Exercise{}, false
	}
	return workout.Exercises[index], true
}

// IsLast reports whether index is the final exercise.
func (workout Workout) IsLast(index int) bool {
	return index == len(workout.Exercises)-1
}

// TotalDuration is the uninterrupted length of the routine, rests included.
func (workout Workout) TotalDuration() time.Duration {
	var total time.Duration
	for _, exercise := range workout.Exercises {
		total += exercise.Duration
	}
	if len(workout.Exercises) > 1 {
		total += time.Duration(len(workout.Exercises)-1) * workout.RestDuration
	}
	return total
}

// Seconds converts a duration to whole seconds, rounding down.
func Seconds(value time.Duration) int {
	if value <= 0 {
		return 0
	}
	return int(value / time.Second)
}
