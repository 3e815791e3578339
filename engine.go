package phosphor

import (
	"errors"
	"fmt"

	"github.com/crtlab/phosphor/backend/wgpu"
	"github.com/crtlab/phosphor/internal/beam"
	"github.com/crtlab/phosphor/internal/color"
	"github.com/crtlab/phosphor/internal/gpu"
	"github.com/crtlab/phosphor/internal/orchestrator"
	"github.com/crtlab/phosphor/internal/phosphordata"
	"github.com/crtlab/phosphor/internal/samplering"
	"github.com/crtlab/phosphor/internal/simulation"
)

// Engine is the public entry point for the CRT phosphor simulation: it
// owns the fixed-rate simulation thread, the SPSC sample ring that
// decouples it from rendering, and the orchestrator that sequences the
// beam-write, spectral-resolve, decay, scatter, and composite stages
// into a displayable frame.
type Engine struct {
	opts engineOptions

	source beam.Source
	ring   *samplering.Ring
	loop   *simulation.Loop
	orch   *orchestrator.Orchestrator

	phosphor phosphordata.Type

	gpu          *gpu.Backend
	gpuAvailable bool
}

// NewEngine creates an Engine driven by source and rendering through
// phosphor, applying any options. The simulation thread is not started
// until Start is called.
func NewEngine(source beam.Source, phosphor phosphordata.Type, opts ...EngineOption) (*Engine, error) {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := phosphor.Validate(); err != nil {
		return nil, fmt.Errorf("phosphor: %w", err)
	}

	ring, err := samplering.New(samplering.CapacityForSampleRate(o.sampleRate))
	if err != nil {
		return nil, fmt.Errorf("sample ring: %w", err)
	}

	minSpacing := beam.SigmaSpacing(o.beam.SigmaCore / float64(max(o.width, o.height)))
	loop := simulation.New(source, ring, o.sampleRate, minSpacing)
	loop.SetAspectRatio(float64(o.width) / float64(o.height))

	orch := orchestrator.New(orchestrator.Config{
		Width:         o.width,
		Height:        o.height,
		SampleRate:    o.sampleRate,
		FrameInterval: o.frameInterval,
		Beam:          o.beam,
		Scatter:       o.scatter,
		Composite:     o.composite,
	}, phosphor)

	e := &Engine{
		opts:     o,
		source:   source,
		ring:     ring,
		loop:     loop,
		orch:     orch,
		phosphor: phosphor,
		gpu:      gpu.NewBackend(),
	}

	// The GPU backend only validates device acquisition and compiles the
	// six WGSL pipeline stages (internal/gpu.CompileShaders); it does not
	// perform per-pixel dispatch (see internal/gpu's documented texture
	// stub), so a missing or failing adapter never blocks construction.
	// RenderFrame always runs the CPU reference pipeline in orchestrator.
	if err := e.gpu.Init(); err != nil {
		if errors.Is(err, gpu.ErrNoGPU) {
			Logger().Info("no gpu adapter found, rendering on cpu reference path")
		} else {
			Logger().Warn("gpu backend init failed, rendering on cpu reference path", "error", err)
		}
	} else {
		e.gpuAvailable = true
		Logger().Info("gpu backend initialized", "adapter", e.gpu.GPUInfo().String())
	}

	return e, nil
}

// GPUAvailable reports whether a wgpu adapter was found and the six
// pipeline shader stages compiled successfully. RenderFrame does not
// consult this: it always renders through the CPU reference pipeline in
// internal/pipeline/cpuref, which this package's orchestrator drives
// regardless of GPU availability (internal/gpu compiles and validates the
// shaders but dispatches no work).
func (e *Engine) GPUAvailable() bool {
	return e.gpuAvailable
}

// GPUInfo returns information about the GPU adapter found during
// construction, or nil if none was available.
func (e *Engine) GPUInfo() *wgpu.GPUInfo {
	if !e.gpuAvailable {
		return nil
	}
	return e.gpu.GPUInfo()
}

// Start launches the simulation thread. Start must be called at most
// once per Engine.
func (e *Engine) Start() {
	e.loop.Start()
	Logger().Info("engine started",
		"phosphor", e.phosphor.Designation,
		"width", e.opts.width,
		"height", e.opts.height,
		"sample_rate", e.opts.sampleRate,
	)
}

// Stop signals the simulation thread to exit and waits for it to finish
// the batch currently in flight.
func (e *Engine) Stop() {
	e.loop.Stop()
	if e.gpuAvailable {
		e.gpu.Close()
		e.gpuAvailable = false
	}
}

// Phosphor returns the currently active phosphor type.
func (e *Engine) Phosphor() phosphordata.Type { return e.phosphor }

// SetPhosphor performs the §4.13 phosphor hot-swap: the accumulation
// buffer is reallocated if the new phosphor's layer count differs from
// the old one's, otherwise it is zeroed.
func (e *Engine) SetPhosphor(p phosphordata.Type) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("phosphor: %w", err)
	}
	prevLayers := e.orch.Buffer().Layers()
	e.orch.SetPhosphor(p)
	e.phosphor = p
	Logger().Info("phosphor switched",
		"designation", p.Designation,
		"prev_layers", prevLayers,
		"layers", e.orch.Buffer().Layers(),
	)
	return nil
}

// Resize reallocates the accumulation buffer and viewport for a new
// resolution and updates the simulation thread's aspect ratio.
func (e *Engine) Resize(width, height int) {
	e.opts.width, e.opts.height = width, height
	e.orch.Resize(width, height)
	e.loop.SetAspectRatio(float64(width) / float64(height))
}

// Stats reports the simulation thread's health counters.
func (e *Engine) Stats() simulation.Stats {
	return e.loop.Stats()
}

// RenderFrame drains the sample ring, runs one full pipeline frame, and
// returns the result as a display-ready Pixmap (sRGB-encoded, 8 bits per
// channel).
func (e *Engine) RenderFrame() *Pixmap {
	w, h := e.opts.width, e.opts.height
	frame := e.orch.RenderFrame(e.ring, w, h)

	pm := NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := frame[y*w+x]
			pm.SetPixel(x, y, RGBA{
				R: float64(color.LinearToSRGB(float32(c.R))),
				G: float64(color.LinearToSRGB(float32(c.G))),
				B: float64(color.LinearToSRGB(float32(c.B))),
				A: 1,
			})
		}
	}
	return pm
}
