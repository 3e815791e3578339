package phosphor

import (
	"testing"
	"time"

	"github.com/crtlab/phosphor/internal/pipeline/cpuref"
)

func TestDefaultEngineOptions(t *testing.T) {
	o := defaultEngineOptions()

	if o.width != 800 || o.height != 600 {
		t.Errorf("default resolution = %dx%d, want 800x600", o.width, o.height)
	}
	if o.sampleRate != 44100 {
		t.Errorf("default sampleRate = %v, want 44100", o.sampleRate)
	}
	if o.frameInterval != time.Second/60 {
		t.Errorf("default frameInterval = %v, want %v", o.frameInterval, time.Second/60)
	}
	if o.composite.Mode != cpuref.TonemapReinhard {
		t.Errorf("default tonemap = %v, want TonemapReinhard", o.composite.Mode)
	}
}

func TestWithResolution(t *testing.T) {
	o := defaultEngineOptions()
	WithResolution(1920, 1080)(&o)

	if o.width != 1920 || o.height != 1080 {
		t.Errorf("width,height = %d,%d, want 1920,1080", o.width, o.height)
	}
}

func TestWithSampleRate(t *testing.T) {
	o := defaultEngineOptions()
	WithSampleRate(96000)(&o)

	if o.sampleRate != 96000 {
		t.Errorf("sampleRate = %v, want 96000", o.sampleRate)
	}
}

func TestWithFrameInterval(t *testing.T) {
	o := defaultEngineOptions()
	WithFrameInterval(time.Second / 30)(&o)

	if o.frameInterval != time.Second/30 {
		t.Errorf("frameInterval = %v, want %v", o.frameInterval, time.Second/30)
	}
}

func TestWithBeamFocus(t *testing.T) {
	o := defaultEngineOptions()
	WithBeamFocus(2.0, 6.0, 0.25)(&o)

	if o.beam.SigmaCore != 2.0 || o.beam.SigmaHalo != 6.0 || o.beam.HaloFraction != 0.25 {
		t.Errorf("beam = %+v, want SigmaCore=2 SigmaHalo=6 HaloFraction=0.25", o.beam)
	}
}

func TestWithScatter(t *testing.T) {
	o := defaultEngineOptions()
	WithScatter(0.5, 4.0)(&o)

	if o.scatter.Threshold != 0.5 || o.scatter.Sigma != 4.0 {
		t.Errorf("scatter = %+v, want Threshold=0.5 Sigma=4", o.scatter)
	}
}

func TestWithScatterZeroSigma(t *testing.T) {
	o := defaultEngineOptions()
	WithScatter(0.8, 0)(&o)

	if o.scatter.Sigma != 0 {
		t.Errorf("scatter.Sigma = %v, want 0", o.scatter.Sigma)
	}
}

func TestWithGlassTint(t *testing.T) {
	o := defaultEngineOptions()
	WithGlassTint(RGBA{R: 0.2, G: 1.0, B: 0.2, A: 1})(&o)

	want := cpuref.RGBA{R: 0.2, G: 1.0, B: 0.2}
	if o.composite.GlassTint != want {
		t.Errorf("GlassTint = %+v, want %+v", o.composite.GlassTint, want)
	}
}

func TestWithExposure(t *testing.T) {
	o := defaultEngineOptions()
	WithExposure(2.5)(&o)

	if o.composite.Exposure != 2.5 {
		t.Errorf("Exposure = %v, want 2.5", o.composite.Exposure)
	}
}

func TestWithScatterIntensity(t *testing.T) {
	o := defaultEngineOptions()
	WithScatterIntensity(0.75)(&o)

	if o.composite.ScatterIntensity != 0.75 {
		t.Errorf("ScatterIntensity = %v, want 0.75", o.composite.ScatterIntensity)
	}
}

func TestWithBarrelDistortion(t *testing.T) {
	o := defaultEngineOptions()
	WithBarrelDistortion(0.15)(&o)

	if o.composite.BarrelK != 0.15 {
		t.Errorf("BarrelK = %v, want 0.15", o.composite.BarrelK)
	}
}

func TestWithEdgeFalloff(t *testing.T) {
	o := defaultEngineOptions()
	WithEdgeFalloff(0.4)(&o)

	if o.composite.EdgeFalloff != 0.4 {
		t.Errorf("EdgeFalloff = %v, want 0.4", o.composite.EdgeFalloff)
	}
}

func TestWithTonemap(t *testing.T) {
	o := defaultEngineOptions()
	WithTonemap(TonemapACES)(&o)

	if o.composite.Mode != cpuref.TonemapACES {
		t.Errorf("Mode = %v, want TonemapACES", o.composite.Mode)
	}
}

func TestEngineOptionsCompose(t *testing.T) {
	o := defaultEngineOptions()
	for _, opt := range []EngineOption{
		WithResolution(1024, 768),
		WithSampleRate(48000),
		WithTonemap(TonemapClamp),
	} {
		opt(&o)
	}

	if o.width != 1024 || o.height != 768 {
		t.Errorf("width,height = %d,%d, want 1024,768", o.width, o.height)
	}
	if o.sampleRate != 48000 {
		t.Errorf("sampleRate = %v, want 48000", o.sampleRate)
	}
	if o.composite.Mode != cpuref.TonemapClamp {
		t.Errorf("Mode = %v, want TonemapClamp", o.composite.Mode)
	}
}
