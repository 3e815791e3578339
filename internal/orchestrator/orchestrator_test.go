package orchestrator

import (
	"testing"
	"time"

	"github.com/crtlab/phosphor/internal/beam"
	"github.com/crtlab/phosphor/internal/phosphordata"
	"github.com/crtlab/phosphor/internal/pipeline/cpuref"
	"github.com/crtlab/phosphor/internal/samplering"
)

func tier2Phosphor() phosphordata.Type {
	terms := []phosphordata.DecayTerm{phosphordata.Exponential(1.0, 1e-3)}
	return phosphordata.Type{
		Designation:  "TEST-P2",
		Fluorescence: phosphordata.NewLayer(550, 40, terms),
	}
}

func p31LikePhosphor() phosphordata.Type {
	terms := []phosphordata.DecayTerm{
		phosphordata.Exponential(1.0, 30e-9),
		phosphordata.PowerLaw(1.0, 1e-6, 1.3),
	}
	return phosphordata.Type{
		Designation:  "TEST-P31",
		Fluorescence: phosphordata.NewLayer(525, 30, terms),
	}
}

func newTestOrchestrator(p phosphordata.Type, w, h int) *Orchestrator {
	cfg := Config{
		Width:         w,
		Height:        h,
		SampleRate:    44100,
		FrameInterval: 16 * time.Millisecond,
		Beam:          BeamParams{SigmaCore: 1.0, SigmaHalo: 3.0, HaloFraction: 0.1},
		Scatter:       cpuref.ScatterConfig{Threshold: 0.8, Sigma: 1.5},
		Composite:     cpuref.CompositeConfig{Exposure: 1, ScatterIntensity: 0.3, Mode: cpuref.TonemapReinhard},
	}
	return New(cfg, p)
}

func TestDrainCapFormula(t *testing.T) {
	o := newTestOrchestrator(tier2Phosphor(), 16, 16)
	wantF := 2 * (16.0 / 1000.0) * 44100
	want := int(wantF)
	if got := o.DrainCap(); got != want {
		t.Errorf("DrainCap() = %d, want %d", got, want)
	}
}

func TestBeamWriteIdempotentOnZeroSamples(t *testing.T) {
	o := newTestOrchestrator(tier2Phosphor(), 8, 8)
	ring, err := samplering.New(samplering.MinCapacity)
	if err != nil {
		t.Fatal(err)
	}
	before := append([]float64(nil), o.buf.PixelCells(4, 4)...)
	o.RenderFrame(ring, 8, 8)
	after := o.buf.PixelCells(4, 4)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("cell %d changed from %v to %v with zero drained samples", i, before[i], after[i])
		}
	}
}

func TestSingleSampleDepositsNearCenter(t *testing.T) {
	o := newTestOrchestrator(tier2Phosphor(), 32, 32)
	ring, err := samplering.New(samplering.MinCapacity)
	if err != nil {
		t.Fatal(err)
	}
	ring.PushBatch([]beam.Sample{{X: 0.5, Y: 0.5, Intensity: 1.0, DT: 0.001}})

	o.RenderFrame(ring, 32, 32)

	cells := o.buf.PixelCells(16, 16)
	if cells[0] <= 0 {
		t.Errorf("center cell after single sample = %v, want > 0", cells[0])
	}
}

func TestLineSegmentSymmetric(t *testing.T) {
	o := newTestOrchestrator(tier2Phosphor(), 64, 64)
	ring, err := samplering.New(samplering.MinCapacity)
	if err != nil {
		t.Fatal(err)
	}
	ring.PushBatch([]beam.Sample{
		{X: 0.25, Y: 0.5, Intensity: 1.0, DT: 0.0005},
		{X: 0.75, Y: 0.5, Intensity: 1.0, DT: 0.0005},
	})
	o.RenderFrame(ring, 64, 64)

	// A is the frame's first sample, so it is also point-splatted; pixels
	// 30 and 33 lie 14.5 px from A and from B, beyond that splat's
	// 4*SigmaHalo = 12 px reach, so only the line deposit lands on them.
	left := o.buf.PixelCells(30, 32)[0]
	right := o.buf.PixelCells(33, 32)[0] // 64 - 30 - 1
	if left <= 0 || right <= 0 {
		t.Fatalf("expected lit deposits, got left=%v right=%v", left, right)
	}
	diff := left - right
	if diff < 0 {
		diff = -diff
	}
	if diff > 0.005*left {
		t.Errorf("line deposit not symmetric about x=0.5: left=%v right=%v", left, right)
	}
}

func TestPhosphorSwitchReallocatesOnLayerCountChange(t *testing.T) {
	o := newTestOrchestrator(tier2Phosphor(), 8, 8)
	if got := o.buf.Layers(); got != 1 {
		t.Fatalf("initial layers = %d, want 1", got)
	}
	o.SetPhosphor(p31LikePhosphor())
	if got := o.buf.Layers(); got != 3 {
		t.Errorf("after switch to power-law+instant phosphor, layers = %d, want 3", got)
	}
}

func TestPhosphorSwitchZeroesOnSameLayerCount(t *testing.T) {
	o := newTestOrchestrator(tier2Phosphor(), 8, 8)
	o.buf.Set(4, 4, 0, 99)
	sameShape := phosphordata.Type{
		Designation:  "TEST-P2-ALT",
		Fluorescence: phosphordata.NewLayer(500, 40, []phosphordata.DecayTerm{phosphordata.Exponential(1.0, 2e-3)}),
	}
	o.SetPhosphor(sameShape)
	if got := o.buf.Layers(); got != 1 {
		t.Fatalf("layers after same-shape switch = %d, want 1 (no reallocation)", got)
	}
	if v := o.buf.At(4, 4, 0); v != 0 {
		t.Errorf("buffer not zeroed on same-layer-count phosphor switch: %v", v)
	}
}

func TestResizeChangesDimensions(t *testing.T) {
	o := newTestOrchestrator(tier2Phosphor(), 8, 8)
	o.Resize(16, 12)
	if o.buf.Width() != 16 || o.buf.Height() != 12 {
		t.Errorf("after Resize, dims = %dx%d, want 16x12", o.buf.Width(), o.buf.Height())
	}
}

func TestCompositeOutputNoChannelExceedsOneUnderReinhard(t *testing.T) {
	o := newTestOrchestrator(tier2Phosphor(), 32, 32)
	ring, err := samplering.New(samplering.MinCapacity)
	if err != nil {
		t.Fatal(err)
	}
	ring.PushBatch([]beam.Sample{{X: 0.5, Y: 0.5, Intensity: 50, DT: 0.01}})
	out := o.RenderFrame(ring, 32, 32)
	for i, c := range out {
		if c.R > 1 || c.G > 1 || c.B > 1 {
			t.Fatalf("pixel %d = %+v has channel > 1.0 under Reinhard tonemap", i, c)
		}
	}
}
