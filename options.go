package phosphor

import (
	"time"

	"github.com/crtlab/phosphor/internal/orchestrator"
	"github.com/crtlab/phosphor/internal/pipeline/cpuref"
)

// EngineOption configures an Engine during creation. Use functional
// options to customize beam-write, scatter, and composite parameters
// without an ever-growing NewEngine argument list.
//
// Example:
//
//	eng, err := phosphor.NewEngine(src, p31,
//	    phosphor.WithResolution(800, 600),
//	    phosphor.WithTonemap(phosphor.TonemapACES),
//	)
type EngineOption func(*engineOptions)

// engineOptions holds the configuration NewEngine assembles into an
// orchestrator.Config and simulation.Loop before wiring them together.
type engineOptions struct {
	width, height int
	sampleRate    float64
	frameInterval time.Duration

	beam      orchestrator.BeamParams
	scatter   cpuref.ScatterConfig
	composite cpuref.CompositeConfig
}

// defaultEngineOptions returns the baseline configuration: a 60 Hz
// 800x600 viewport, 44.1 kHz sample rate (audio-grade, comfortably above
// anything an oscilloscope or vector source needs), and a mild scatter
// and Reinhard tonemap that look reasonable on any phosphor without
// per-type tuning.
func defaultEngineOptions() engineOptions {
	return engineOptions{
		width:         800,
		height:        600,
		sampleRate:    44100,
		frameInterval: time.Second / 60,
		beam: orchestrator.BeamParams{
			SigmaCore:    1.0,
			SigmaHalo:    3.0,
			HaloFraction: 0.1,
		},
		scatter: cpuref.ScatterConfig{
			Threshold: 0.8,
			Sigma:     2.0,
		},
		composite: cpuref.CompositeConfig{
			GlassTint:        cpuref.RGBA{R: 1, G: 1, B: 1},
			Exposure:         1.0,
			ScatterIntensity: 0.35,
			Mode:             cpuref.TonemapReinhard,
		},
	}
}

// WithResolution sets the viewport and accumulation-buffer resolution.
func WithResolution(width, height int) EngineOption {
	return func(o *engineOptions) {
		o.width, o.height = width, height
	}
}

// WithSampleRate sets the beam simulation's fixed sample rate in Hz.
func WithSampleRate(hz float64) EngineOption {
	return func(o *engineOptions) {
		o.sampleRate = hz
	}
}

// WithFrameInterval sets the target render frame interval, used to
// compute the §4.10 render-side sample drain cap.
func WithFrameInterval(d time.Duration) EngineOption {
	return func(o *engineOptions) {
		o.frameInterval = d
	}
}

// WithBeamFocus sets the beam-write Gaussian's core and halo standard
// deviations (in output pixels) and the halo's energy fraction.
func WithBeamFocus(sigmaCore, sigmaHalo, haloFraction float64) EngineOption {
	return func(o *engineOptions) {
		o.beam = orchestrator.BeamParams{
			SigmaCore:    sigmaCore,
			SigmaHalo:    sigmaHalo,
			HaloFraction: haloFraction,
		}
	}
}

// WithScatter sets the faceplate-scatter bright-pass threshold and blur
// sigma. A sigma of 0 makes the blur a pass-through; the bright-pass
// excess above threshold is still added to the composite, unblurred.
func WithScatter(threshold, sigma float64) EngineOption {
	return func(o *engineOptions) {
		o.scatter = cpuref.ScatterConfig{Threshold: threshold, Sigma: sigma}
	}
}

// WithGlassTint multiplies the composited image by a faceplate glass
// color, e.g. the green tint of a radar PPI display.
func WithGlassTint(tint RGBA) EngineOption {
	return func(o *engineOptions) {
		o.composite.GlassTint = cpuref.RGBA{R: tint.R, G: tint.G, B: tint.B}
	}
}

// WithExposure sets the pre-tonemap linear exposure multiplier.
func WithExposure(exposure float64) EngineOption {
	return func(o *engineOptions) {
		o.composite.Exposure = exposure
	}
}

// WithScatterIntensity sets how strongly the halation image contributes
// to the final composite.
func WithScatterIntensity(intensity float64) EngineOption {
	return func(o *engineOptions) {
		o.composite.ScatterIntensity = intensity
	}
}

// WithBarrelDistortion sets the composite stage's barrel-distortion
// coefficient; 0 disables distortion.
func WithBarrelDistortion(k float64) EngineOption {
	return func(o *engineOptions) {
		o.composite.BarrelK = k
	}
}

// WithEdgeFalloff sets the composite stage's vignette strength.
func WithEdgeFalloff(strength float64) EngineOption {
	return func(o *engineOptions) {
		o.composite.EdgeFalloff = strength
	}
}

// TonemapMode selects the composite stage's tone-mapping curve.
type TonemapMode = cpuref.TonemapMode

// The tone-mapping modes from §4.12.
const (
	TonemapNone     = cpuref.TonemapNone
	TonemapClamp    = cpuref.TonemapClamp
	TonemapReinhard = cpuref.TonemapReinhard
	TonemapACES     = cpuref.TonemapACES
)

// WithTonemap selects the composite stage's tone-mapping curve.
func WithTonemap(mode TonemapMode) EngineOption {
	return func(o *engineOptions) {
		o.composite.Mode = mode
	}
}
