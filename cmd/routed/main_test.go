package main

import "testing"

func TestPickLandmarks_EvenlySpacedWithinRange(t *testing.T) {
	landmarks := pickLandmarks(100, 4)
	if len(landmarks) != 4 {
		t.Fatalf("len(landmarks) = %d, want 4", len(landmarks))
	}
	seen := make(map[int]bool)
	for _, l := range landmarks {
		if l < 0 || l >= 100 {
			t.Fatalf("landmark %d out of range [0, 100)", l)
		}
		if seen[l] {
			t.Fatalf("duplicate landmark %d", l)
		}
		seen[l] = true
	}
}

func TestPickLandmarks_CountExceedsNodesClampsDown(t *testing.T) {
	landmarks := pickLandmarks(3, 10)
	if len(landmarks) != 3 {
		t.Fatalf("len(landmarks) = %d, want 3", len(landmarks))
	}
}

func TestPickLandmarks_ZeroCountReturnsEmpty(t *testing.T) {
	if landmarks := pickLandmarks(100, 0); landmarks != nil {
		t.Fatalf("expected nil landmarks for count=0, got %v", landmarks)
	}
}
