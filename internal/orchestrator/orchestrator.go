// Package orchestrator implements §4.13: it owns the accumulation
// buffer and sequences the beam-write, spectral-resolve, decay,
// faceplate-scatter, and composite stages once per frame, using the
// cpuref package as the host-side model of what the GPU kernels compute
// (the same CPU/GPU duality the teacher's filter package keeps for its
// blur stage).
package orchestrator

import (
	"math"
	"time"

	"github.com/crtlab/phosphor/internal/accum"
	"github.com/crtlab/phosphor/internal/beam"
	"github.com/crtlab/phosphor/internal/phosphordata"
	"github.com/crtlab/phosphor/internal/pipeline/cpuref"
	"github.com/crtlab/phosphor/internal/samplering"
)

// BeamParams are the §4.8 beam-write Gaussian parameters, shared by
// every sample drained in a frame.
type BeamParams struct {
	SigmaCore    float64
	SigmaHalo    float64
	HaloFraction float64
}

func (p BeamParams) maxSigma() float64 {
	if p.SigmaHalo > p.SigmaCore {
		return p.SigmaHalo
	}
	return p.SigmaCore
}

// Config bundles the orchestrator's per-instance tunables. Dimensions
// and phosphor live in Orchestrator state because they change under
// §4.7/§4.13's reallocation rules; everything here is immutable for the
// orchestrator's lifetime.
type Config struct {
	Width, Height int
	SampleRate    float64
	FrameInterval time.Duration
	Beam          BeamParams
	Scatter       cpuref.ScatterConfig
	Composite     cpuref.CompositeConfig
}

// Orchestrator sequences one simulated CRT frame at a time: drain
// samples, deposit them into the accumulation buffer, resolve to HDR,
// decay, scatter, and composite.
type Orchestrator struct {
	cfg Config

	phosphor phosphordata.Type
	layout   cpuref.Layout
	buf      *accum.Buffer

	hdr      []cpuref.RGBA
	drainBuf []beam.Sample

	FramesRendered uint64
}

// New creates an Orchestrator for the given initial phosphor and
// dimensions.
func New(cfg Config, phosphor phosphordata.Type) *Orchestrator {
	o := &Orchestrator{cfg: cfg, phosphor: phosphor}
	o.layout, _ = accum.LayoutFor(phosphor)
	o.buf = accum.New(cfg.Width, cfg.Height, o.layout.NumLayers)
	o.hdr = make([]cpuref.RGBA, cfg.Width*cfg.Height)
	return o
}

// Buffer exposes the accumulation buffer for diagnostics and tests.
func (o *Orchestrator) Buffer() *accum.Buffer { return o.buf }

// Layout exposes the active phosphor's emission-group layout.
func (o *Orchestrator) Layout() cpuref.Layout { return o.layout }

// DrainCap returns the §4.10 render-side drain cap,
// 2*frame_interval*sample_rate, bounding the worst-case simulation dt a
// single frame's decay step can apply after a render stall.
func (o *Orchestrator) DrainCap() int {
	n := int(math.Round(2 * o.cfg.FrameInterval.Seconds() * o.cfg.SampleRate))
	if n < 1 {
		n = 1
	}
	return n
}

// SetPhosphor performs the §4.13 phosphor-switch sequence: reallocate
// the accumulation buffer if the new phosphor's layer count differs,
// otherwise zero it; the emission layout is always rebuilt.
func (o *Orchestrator) SetPhosphor(p phosphordata.Type) {
	newLayout, newLayers := accum.LayoutFor(p)
	if newLayers != o.buf.Layers() {
		o.buf.Resize(o.buf.Width(), o.buf.Height(), newLayers)
	} else {
		o.buf.Zero()
	}
	o.layout = newLayout
	o.phosphor = p
}

// Resize reallocates the accumulation buffer and HDR scratch target for
// a new viewport resolution, per §4.7.
func (o *Orchestrator) Resize(width, height int) {
	o.cfg.Width, o.cfg.Height = width, height
	o.buf.Resize(width, height, o.layout.NumLayers)
	o.hdr = make([]cpuref.RGBA, width*height)
}

// RenderFrame runs one full §4.13 frame and returns the composited
// output image, outW x outH pixels, linear-light RGBA.
func (o *Orchestrator) RenderFrame(ring *samplering.Ring, outW, outH int) []cpuref.RGBA {
	drained := o.drain(ring)
	simDt := float64(len(drained)) / o.cfg.SampleRate
	if o.cfg.SampleRate <= 0 {
		simDt = 0
	}

	o.beamWriteBatch(drained)
	o.resolve()
	o.decay(simDt)

	scatter, sw, sh := cpuref.Scatter(o.hdr, o.cfg.Width, o.cfg.Height, o.cfg.Scatter)
	out := cpuref.CompositeFrame(o.hdr, o.cfg.Width, o.cfg.Height, scatter, sw, sh, outW, outH, o.cfg.Composite)

	o.FramesRendered++
	return out
}

// drain pulls up to DrainCap samples from the ring, per §4.13 step 1.
func (o *Orchestrator) drain(ring *samplering.Ring) []beam.Sample {
	n := o.DrainCap()
	if available := ring.Len(); available < n {
		n = available
	}
	if cap(o.drainBuf) < n {
		o.drainBuf = make([]beam.Sample, n)
	}
	dst := o.drainBuf[:n]
	got := ring.DrainInto(dst)
	return dst[:got]
}

// beamWriteBatch implements §4.8: each sample is line-splatted against
// the previous sample in the same drained batch, or point-splatted if
// it is the first sample of the frame, the previous sample was blanked
// (zero intensity), or the segment is shorter than the point-splat
// threshold.
func (o *Orchestrator) beamWriteBatch(samples []beam.Sample) {
	for i, s := range samples {
		bx, by := o.sampleToPixel(s)

		lineMode := false
		var ax, ay, abLen float64
		if i > 0 && samples[i-1].Intensity > 0 {
			ax, ay = o.sampleToPixel(samples[i-1])
			abLen = math.Hypot(bx-ax, by-ay)
			if abLen > cpuref.PointSplatThreshold {
				lineMode = true
			}
		}

		if lineMode {
			o.depositLine(ax, ay, bx, by, abLen, s)
		} else {
			o.depositPoint(bx, by, s)
		}
	}
}

func (o *Orchestrator) sampleToPixel(s beam.Sample) (x, y float64) {
	// Samples use [0,1] with origin at the bottom-left; raster space has
	// origin at the top-left, so y flips.
	return s.X * float64(o.cfg.Width), (1 - s.Y) * float64(o.cfg.Height)
}

func (o *Orchestrator) depositPoint(bx, by float64, s beam.Sample) {
	radius := 4 * o.cfg.Beam.maxSigma()
	x0, y0, x1, y1 := o.pixelBounds(bx-radius, by-radius, bx+radius, by+radius)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			dx, dy := px-bx, py-by
			r2 := dx*dx + dy*dy
			if r2 > radius*radius {
				continue
			}
			profile := cpuref.PointProfile(r2, o.cfg.Beam.SigmaCore, o.cfg.Beam.SigmaHalo, o.cfg.Beam.HaloFraction)
			o.depositPixel(x, y, s, profile)
		}
	}
}

func (o *Orchestrator) depositLine(ax, ay, bx, by, abLen float64, s beam.Sample) {
	radius := 4 * o.cfg.Beam.maxSigma()
	minX := math.Min(ax, bx) - radius
	maxX := math.Max(ax, bx) + radius
	minY := math.Min(ay, by) - radius
	maxY := math.Max(ay, by) + radius
	x0, y0, x1, y1 := o.pixelBounds(minX, minY, maxX, maxY)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			tPar, dPerp, _ := cpuref.SegmentGeometry(px, py, ax, ay, bx, by)
			if dPerp > radius {
				continue
			}
			profile := cpuref.LineSplat(dPerp, tPar, abLen, o.cfg.Beam.SigmaCore, o.cfg.Beam.SigmaHalo, o.cfg.Beam.HaloFraction)
			o.depositPixel(x, y, s, profile)
		}
	}
}

func (o *Orchestrator) pixelBounds(minX, minY, maxX, maxY float64) (x0, y0, x1, y1 int) {
	x0 = clampToRange(int(math.Floor(minX)), 0, o.cfg.Width-1)
	y0 = clampToRange(int(math.Floor(minY)), 0, o.cfg.Height-1)
	x1 = clampToRange(int(math.Ceil(maxX)), 0, o.cfg.Width-1)
	y1 = clampToRange(int(math.Ceil(maxY)), 0, o.cfg.Height-1)
	return x0, y0, x1, y1
}

func clampToRange(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (o *Orchestrator) depositPixel(x, y int, s beam.Sample, profile float64) {
	if profile <= 0 {
		return
	}
	e := cpuref.DepositEnergy(s.Intensity, profile, s.DT)
	if e == 0 {
		return
	}
	cells := o.buf.PixelCells(x, y)
	for _, g := range o.layout.ActiveGroups() {
		cpuref.ApplyBeamWrite(cells, g, e)
	}
	o.buf.WritePixelCells(x, y, cells)
}

// resolve implements §4.9 over the whole frame, writing into o.hdr.
// Must run before decay so tier-1 contributions are observed first.
func (o *Orchestrator) resolve() {
	w, h := o.cfg.Width, o.cfg.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells := o.buf.PixelCells(x, y)
			o.hdr[y*w+x] = cpuref.ResolvePixel(cells, o.layout)
		}
	}
}

// decay implements §4.10 over the whole frame.
func (o *Orchestrator) decay(dt float64) {
	if dt <= 0 {
		return
	}
	w, h := o.cfg.Width, o.cfg.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells := o.buf.PixelCells(x, y)
			for _, g := range o.layout.ActiveGroups() {
				cpuref.ApplyDecay(cells, g, dt)
			}
			o.buf.WritePixelCells(x, y, cells)
		}
	}
}
