package simulation

import (
	"testing"
	"time"

	"github.com/crtlab/phosphor/internal/beam"
	"github.com/crtlab/phosphor/internal/samplering"
)

type constSource struct{}

func (constSource) Generate(dst []beam.Sample, count int, state *beam.State) []beam.Sample {
	for i := 0; i < count; i++ {
		dst = append(dst, beam.Sample{X: 0.5, Y: 0.5, Intensity: 1, DT: 1e-6})
	}
	return dst
}

func TestLoopPushesSamplesIntoRing(t *testing.T) {
	ring, err := samplering.New(65536)
	if err != nil {
		t.Fatal(err)
	}
	l := New(constSource{}, ring, 48000, 0)
	l.Start()
	time.Sleep(20 * time.Millisecond)
	l.Stop()

	if ring.Len() == 0 {
		stats := l.Stats()
		t.Fatalf("ring is empty after running the loop; stats = %+v", stats)
	}
}

func TestLoopStartStopKeepsBatchIntervalInRange(t *testing.T) {
	ring, _ := samplering.New(65536)
	l := New(constSource{}, ring, 48000, 0)
	l.Start()
	l.Stop()
	// Calling Stop twice on the same Loop is not supported (close on a
	// closed channel panics), so this test stops it once.
	stats := l.Stats()
	if stats.BatchInterval < MinBatchInterval {
		t.Errorf("BatchInterval = %v, want >= %v", stats.BatchInterval, MinBatchInterval)
	}
}

func TestLoopAdaptHalvesWhenRingHasHeadroom(t *testing.T) {
	ring, _ := samplering.New(65536)
	l := New(constSource{}, ring, 48000, 0)
	before := time.Duration(l.batchInterval.Load())
	l.adapt(10, 10) // ring is empty: plenty of headroom
	after := time.Duration(l.batchInterval.Load())
	if after > before {
		t.Errorf("adapt grew the interval with headroom: before=%v after=%v", before, after)
	}
}

func TestLoopAdaptDoublesWhenRingIsFull(t *testing.T) {
	ring, _ := samplering.New(65536)
	l := New(constSource{}, ring, 48000, 0)
	l.batchInterval.Store(int64(2 * time.Millisecond))
	l.adapt(5, 10) // short write: ring pushed back
	after := time.Duration(l.batchInterval.Load())
	if after <= 2*time.Millisecond {
		t.Errorf("adapt should have grown the interval on a short write, got %v", after)
	}
}
