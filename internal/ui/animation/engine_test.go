package animation

import (
	"context"
	"sync"
	"testing"
	"time"
)

type highlightRecorder struct {
	mu     sync.Mutex
	values []bool
}

func (recorder *highlightRecorder) record(on bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.values = append(recorder.values, on)
}

func (recorder *highlightRecorder) snapshot() []bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]bool(nil), recorder.values...)
}

func TestPatternFor(t *testing.T) {
	if PatternFor(5).Pulses != 1 || PatternFor(1).Pulses != 2 {
		t.Fatalf("unexpected pulse counts")
	}
}

func TestFlashPulsesAndClears(t *testing.T) {
	recorder := &highlightRecorder{}
	engine := New(Config{OnDuration: time.Millisecond, OffDuration: time.Millisecond}, recorder.record)
	engine.Flash(context.Background(), Pattern{Pulses: 2})

	deadline := time.Now().Add(time.Second)
	for len(recorder.snapshot()) < 5 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	engine.Stop()

	got := recorder.snapshot()
	want := []bool{true, false, true, false, false}
	if len(got) != len(want) {
		t.Fatalf("highlights = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("highlights = %v, want %v", got, want)
		}
	}
}

func TestStopCancelsAndClearsHighlight(t *testing.T) {
	recorder := &highlightRecorder{}
	engine := New(Config{OnDuration: time.Hour, OffDuration: time.Hour}, recorder.record)
	engine.Flash(context.Background(), Pattern{Pulses: 3})

	deadline := time.Now().Add(time.Second)
	for len(recorder.snapshot()) < 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	engine.Stop()

	got := recorder.snapshot()
	if len(got) != 2 || !got[0] || got[1] {
		t.Fatalf("highlights = %v, want [true false]", got)
	}
}
