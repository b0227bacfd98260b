package timekeeper

import (
	"testing"
	"time"
)

func TestGapDetectorIgnoresJitter(t *testing.T) {
	start := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	detector := NewGapDetector(2 * time.Second)
	detector.Reset(start)

	if missed := detector.Observe(start.Add(1100*time.Millisecond), time.Second); missed != 0 {
		t.Fatalf("missed = %d, want 0", missed)
	}
	if missed := detector.Observe(start.Add(3*time.Second), time.Second); missed != 0 {
		t.Fatalf("missed = %d, want 0 for a 0.9s late tick", missed)
	}
}

func TestGapDetectorReportsSuspension(t *testing.T) {
	start := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	detector := NewGapDetector(0)
	detector.Reset(start)

	if missed := detector.Observe(start.Add(91*time.Second), time.Second); missed != 90 {
		t.Fatalf("missed = %d, want 90", missed)
	}
	if missed := detector.Observe(start.Add(92*time.Second), time.Second); missed != 0 {
		t.Fatalf("mark not advanced: missed = %d", missed)
	}
	if missed := detector.Observe(start.Add(100*time.Second), 0); missed != 8 {
		t.Fatalf("wake observation missed = %d, want 8", missed)
	}
}

func TestGapDetectorResetDiscardsPausedTime(t *testing.T) {
	start := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	detector := NewGapDetector(0)
	detector.Reset(start)
	detector.Reset(start.Add(10 * time.Minute))

	if missed := detector.Observe(start.Add(10*time.Minute+time.Second), time.Second); missed != 0 {
		t.Fatalf("missed = %d, want 0 after reset", missed)
	}
}

func TestGapDetectorFirstObservationOnlyMarks(t *testing.T) {
	detector := NewGapDetector(0)
	if missed := detector.Observe(time.Now(), time.Second); missed != 0 {
		t.Fatalf("missed = %d, want 0", missed)
	}
}
