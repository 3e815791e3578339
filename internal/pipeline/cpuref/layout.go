// Package cpuref is the CPU implementation of the six-stage pipeline:
// beam-write, spectral-resolve, decay, faceplate-scatter, and composite,
// driven once per frame by internal/orchestrator. It mirrors the
// teacher's practice of keeping a correct CPU path alongside every
// compute-shader path (internal/filter.CachedGaussianKernel plays that
// role for the scatter stage's separable blur). It is not a test
// double: engine.go renders through this package whenever no GPU
// adapter is available, and the GPU kernels are tested against it as
// a reference.
package cpuref

import "github.com/crtlab/phosphor/internal/phosphordata"

// GroupLayout describes where one emission group's accumulation cells
// live within a pixel's flat layer array, following the packing order
// from the phosphor classification: slow-exponential layers first, then
// the power-law pair (peak, elapsed), then the instant layer.
type GroupLayout struct {
	SlowExpStart int
	SlowExpCount int

	HasPowerLaw   bool
	PeakLayer     int
	ElapsedLayer  int

	HasInstant  bool
	InstantLayer int

	// Weights are the 16 band emission weights for this group's layer
	// (fluorescence or phosphorescence).
	Weights [16]float32

	// InstantEnergyTotal is Σ amplitude·tau over this group's tier-1
	// terms, the analytically integrated one-frame contribution.
	InstantEnergyTotal float64

	// SlowTaus holds the time constant for each slow-exponential layer,
	// aligned with SlowExpStart..SlowExpStart+SlowExpCount.
	SlowTaus []float64

	// PowerLawAlpha/PowerLawBeta are the tier-3 term's parameters, valid
	// only when HasPowerLaw.
	PowerLawAlpha, PowerLawBeta float64
}

// Layout is the full per-layer classification for a phosphor type: one
// GroupLayout per active emission group, and the total layer count the
// accumulation buffer must allocate per pixel. Single-layer phosphors
// collapse to one group (Groups[:1]); dual-layer phosphors use both.
type Layout struct {
	Groups    [2]GroupLayout
	NumGroups int
	NumLayers int
}

// ActiveGroups returns the slice of Groups actually in use, respecting
// NumGroups (1 for single-layer phosphors, 2 for dual-layer).
func (l Layout) ActiveGroups() []GroupLayout {
	return l.Groups[:l.NumGroups]
}

// BuildLayout derives a Layout from a phosphor type, assigning cell
// offsets in the packing order §4.7 specifies: fluorescence group's
// layers first, then (for dual-layer phosphors) phosphorescence group's
// layers. Per §3 and the §8 invariant-4 worked example, a single-layer
// phosphor contributes exactly one emission group to the accumulation
// buffer even though its PhosphorType struct carries identical
// Fluorescence/Phosphorescence layer data — the two slots collapse to
// one group for the core pipeline.
func BuildLayout(t phosphordata.Type) Layout {
	var l Layout
	offset := 0
	l.Groups[0], offset = buildGroup(t.Fluorescence, offset)
	l.NumGroups = 1
	if t.IsDualLayer {
		l.Groups[1], offset = buildGroup(t.Phosphorescence, offset)
		l.NumGroups = 2
	}
	l.NumLayers = offset
	return l
}

func buildGroup(layer phosphordata.Layer, offset int) (GroupLayout, int) {
	c := phosphordata.Classify(layer.DecayTerms, phosphordata.TauCutoff)
	g := GroupLayout{
		SlowExpStart: offset,
		SlowExpCount: c.SlowExpCount,
		Weights:      layer.EmissionWeights,
	}
	offset += c.SlowExpCount
	for _, term := range layer.DecayTerms {
		if term.Kind == phosphordata.DecayExponential && term.Tau >= phosphordata.TauCutoff {
			g.SlowTaus = append(g.SlowTaus, term.Tau)
		}
	}

	if c.HasPowerLaw {
		g.HasPowerLaw = true
		g.PeakLayer = offset
		g.ElapsedLayer = offset + 1
		offset += 2
		for _, term := range layer.DecayTerms {
			if term.Kind == phosphordata.DecayPowerLaw {
				g.PowerLawAlpha = term.Alpha
				g.PowerLawBeta = term.Beta
				break
			}
		}
	}

	if c.InstantExpCount > 0 {
		g.HasInstant = true
		g.InstantLayer = offset
		offset++
		for _, term := range layer.DecayTerms {
			if term.Kind == phosphordata.DecayExponential && term.Tau < phosphordata.TauCutoff {
				g.InstantEnergyTotal += term.Amplitude * term.Tau
			}
		}
	}

	return g, offset
}
