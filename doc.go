// Package phosphor simulates a physically-based X-Y cathode-ray-tube
// display: electron beam deposition, multi-tier phosphor decay, CIE
// 1931 spectral emission, faceplate halation, and barrel-distorted
// composite with tone mapping.
//
// # Overview
//
// An Engine drives a beam.Source (oscilloscope, decoded audio, vector
// display list, or an external line protocol) through a fixed-rate
// simulation thread, across a lock-free sample ring, into an
// orchestrator that runs the six-stage phosphor pipeline once per
// rendered frame.
//
// # Quick Start
//
//	p31, _ := phosphordata.Lookup("P31")
//	src := beam.NewOscilloscope(
//	    beam.Channel{Waveform: beam.Sine, FrequencyHz: 1000, Amplitude: 0.4},
//	    beam.Channel{Waveform: beam.Sine, FrequencyHz: 1000, Amplitude: 0.4, Phase: math.Pi / 2},
//	    44100,
//	)
//
//	eng, err := phosphor.NewEngine(src, p31, phosphor.WithResolution(800, 600))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	eng.Start()
//	defer eng.Stop()
//
//	frame := eng.RenderFrame()
//	frame.SavePNG("frame.png")
//
// # Architecture
//
// The package is organized into:
//   - Public API: Engine, EngineOption, Pixmap, RGBA
//   - internal/beam: beam sample sources and arc-length resampling
//   - internal/samplering: SPSC ring buffer between simulation and render
//   - internal/simulation: the fixed-rate sample-generation thread
//   - internal/phosphordata: phosphor type definitions and TOML loading
//   - internal/spectral: the 16-band CIE 1931 spectral model
//   - internal/pipeline/cpuref: host-side reference math for every GPU kernel
//   - internal/accum: the variable-layer accumulation buffer
//   - internal/orchestrator: per-frame stage sequencing and phosphor hot-swap
//   - internal/gpu, backend/wgpu: WebGPU device/pipeline plumbing
//
// # Coordinate System
//
// Beam samples use normalized device coordinates in [0,1]^2 with the
// origin at the bottom-left, matching the CRT convention of sweeping up
// from the bottom. Output Pixmaps use the standard raster convention,
// origin at the top-left.
package phosphor

// Version information.
const (
	// Version is the current version of the library.
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version.
	VersionMajor = 0

	// VersionMinor is the minor version.
	VersionMinor = 1

	// VersionPatch is the patch version.
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier.
	VersionPrerelease = "alpha.1"
)
