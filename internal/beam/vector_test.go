package beam

import "testing"

func TestVectorSubdividesSegmentBySampleRate(t *testing.T) {
	segs := []VectorSegment{
		{FromX: -1, FromY: 0, ToX: 1, ToY: 0, Intensity: 1},
	}
	v := NewVector(segs, 1000, 0.1)
	state := &State{AspectRatio: 1}
	samples := v.Generate(nil, 25, state)
	if len(samples) != 25 {
		t.Fatalf("got %d samples, want 25", len(samples))
	}
	for _, s := range samples {
		if s.X < 0 || s.X > 1 {
			t.Errorf("X = %v, want within [0,1]", s.X)
		}
	}
}

func TestVectorLoopsBackToFirstSegment(t *testing.T) {
	segs := []VectorSegment{
		{FromX: 0, FromY: 0, ToX: 0.01, ToY: 0, Intensity: 1},
		{FromX: 0.5, FromY: 0.5, ToX: 0.51, ToY: 0.5, Intensity: 1},
	}
	v := NewVector(segs, 1000, 1.0) // large step: one sample per segment pass
	state := &State{}
	// Enough samples to cycle through both segments multiple times.
	samples := v.Generate(nil, 6, state)
	if len(samples) != 6 {
		t.Fatalf("got %d samples, want 6", len(samples))
	}
}

func TestVectorEmptySegmentsProducesNothing(t *testing.T) {
	v := NewVector(nil, 1000, 0.1)
	state := &State{}
	samples := v.Generate(nil, 10, state)
	if len(samples) != 0 {
		t.Errorf("got %d samples, want 0", len(samples))
	}
}

func TestVectorZeroLengthSegmentDoesNotHang(t *testing.T) {
	segs := []VectorSegment{
		{FromX: 0.2, FromY: 0.2, ToX: 0.2, ToY: 0.2, Intensity: 1},
	}
	v := NewVector(segs, 1000, 0.1)
	state := &State{}
	samples := v.Generate(nil, 5, state)
	if len(samples) != 5 {
		t.Fatalf("got %d samples, want 5", len(samples))
	}
}
