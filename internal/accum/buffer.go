// Package accum implements the §4.7 accumulation buffer: the host-side
// model of the variable-layer scalar energy store that the beam-write,
// spectral-resolve, and decay GPU kernels all operate on.
//
// The buffer is a flat array of cells indexed layer-major,
// index(x,y,l) = l*(W*H) + y*W + x, exactly as the WGSL kernels compute
// it from the small "dims" uniform (see internal/gpu/shaders) rather
// than from a baked-in bind group layout. Keeping the Go-side storage in
// the same layout means a CPU readback of the real GPU buffer can be
// dropped in here without reshaping.
package accum

import (
	"github.com/crtlab/phosphor/internal/phosphordata"
	"github.com/crtlab/phosphor/internal/pipeline/cpuref"
)

// Buffer is the §4.7 accumulation buffer: width x height x layers cells
// of latent phosphor energy, owned exclusively by the orchestrator.
type Buffer struct {
	width  int
	height int
	layers int
	cells  []float64
}

// New allocates a zeroed buffer for the given dimensions.
func New(width, height, layers int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height, layers)
	return b
}

// Width, Height, and Layers report the buffer's current dimensions.
func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }
func (b *Buffer) Layers() int { return b.layers }

// Len returns the total cell count, width*height*layers.
func (b *Buffer) Len() int { return len(b.cells) }

// Index computes the flat cell offset for (x, y, layer), matching the
// layer-major packing every GPU kernel uses.
func (b *Buffer) Index(x, y, layer int) int {
	return layer*(b.width*b.height) + y*b.width + x
}

// Resize reallocates the buffer for new dimensions, discarding all
// existing content. Per §4.7, resolution change and a phosphor switch
// that changes the required layer count both resize; a phosphor switch
// that keeps the same layer count instead calls Zero.
func (b *Buffer) Resize(width, height, layers int) {
	b.width = width
	b.height = height
	b.layers = layers
	n := width * height * layers
	if n < 0 {
		n = 0
	}
	b.cells = make([]float64, n)
}

// Zero clears every cell without changing dimensions, used on a
// phosphor switch that does not change the layer count.
func (b *Buffer) Zero() {
	for i := range b.cells {
		b.cells[i] = 0
	}
}

// At returns the value of a single cell.
func (b *Buffer) At(x, y, layer int) float64 {
	return b.cells[b.Index(x, y, layer)]
}

// Set writes a single cell.
func (b *Buffer) Set(x, y, layer int, v float64) {
	b.cells[b.Index(x, y, layer)] = v
}

// Add atomically-in-spirit (single-threaded host model) accumulates a
// delta into one cell, mirroring the GPU kernel's CAS-loop float add
// (§4.8 "Race discipline") without needing an actual compare-and-swap
// since the host model runs one pixel at a time.
func (b *Buffer) Add(x, y, layer int, delta float64) {
	b.cells[b.Index(x, y, layer)] += delta
}

// PixelCells gathers one pixel's layer values into a contiguous slice,
// matching the shape cpuref's per-pixel stage functions (ApplyBeamWrite,
// ApplyDecay, ResolvePixel) expect. The returned slice is a fresh copy;
// mutating it does not affect the buffer until WritePixelCells is called.
func (b *Buffer) PixelCells(x, y int) []float64 {
	out := make([]float64, b.layers)
	stride := b.width * b.height
	base := y*b.width + x
	for l := 0; l < b.layers; l++ {
		out[l] = b.cells[l*stride+base]
	}
	return out
}

// WritePixelCells scatters a pixel's layer values back into the flat
// layer-major buffer, the inverse of PixelCells.
func (b *Buffer) WritePixelCells(x, y int, cells []float64) {
	stride := b.width * b.height
	base := y*b.width + x
	for l := 0; l < b.layers && l < len(cells); l++ {
		b.cells[l*stride+base] = cells[l]
	}
}

// IsFinite reports whether every cell is finite and non-negative, the
// §3 accumulation-buffer invariant.
func (b *Buffer) IsFinite() bool {
	for _, v := range b.cells {
		if v < 0 || v != v || v > maxFinite || v < -maxFinite {
			return false
		}
	}
	return true
}

const maxFinite = 1.7976931348623157e+308

// LayoutFor derives the cpuref.Layout and required layer count for a
// phosphor type, the same classification the orchestrator uses to
// decide whether a phosphor switch requires a reallocation (§4.13).
func LayoutFor(t phosphordata.Type) (cpuref.Layout, int) {
	l := cpuref.BuildLayout(t)
	if l.NumLayers == 0 {
		// §8 invariant 4: defensive minimum of 1 layer even for a
		// phosphor whose layers declare zero decay terms.
		l.NumLayers = 1
	}
	return l, l.NumLayers
}
