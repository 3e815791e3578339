// Package phosphordata defines the phosphor data model: decay kinetics,
// emission layers, and the built-in and user-loadable phosphor database.
//
// The field names and TOML layout mirror the reference phosphor-data crate
// this package was ported from: a phosphor is described by its emission
// peak/width (converted to per-band weights via internal/spectral) and a
// list of decay terms, optionally split into separate fluorescence and
// phosphorescence layers for dual-layer phosphors like P7 and P39.
package phosphordata

import (
	"fmt"

	"github.com/crtlab/phosphor/internal/spectral"
)

// DecayTermKind discriminates the two decay term shapes a phosphor layer
// can be built from.
type DecayTermKind int

const (
	// DecayExponential is an exponential decay term: amplitude * exp(-t/tau).
	DecayExponential DecayTermKind = iota
	// DecayPowerLaw is a power-law decay term: amplitude * (alpha/(alpha+t))^beta.
	DecayPowerLaw
)

func (k DecayTermKind) String() string {
	switch k {
	case DecayExponential:
		return "exponential"
	case DecayPowerLaw:
		return "power_law"
	default:
		return fmt.Sprintf("DecayTermKind(%d)", int(k))
	}
}

// DecayTerm is one term of a phosphor layer's decay curve. Exactly one of
// the two parameter sets is meaningful, selected by Kind — this mirrors the
// tagged-union `type = "exponential" | "power_law"` shape of the TOML
// phosphor definition format.
type DecayTerm struct {
	Kind DecayTermKind

	// Exponential fields (Kind == DecayExponential).
	Amplitude float64
	Tau       float64 // seconds

	// Power-law fields (Kind == DecayPowerLaw).
	// Amplitude is reused for the power-law term's scale.
	Alpha float64 // seconds
	Beta  float64
}

// Exponential constructs an exponential decay term.
func Exponential(amplitude, tau float64) DecayTerm {
	return DecayTerm{Kind: DecayExponential, Amplitude: amplitude, Tau: tau}
}

// PowerLaw constructs a power-law decay term.
func PowerLaw(amplitude, alpha, beta float64) DecayTerm {
	return DecayTerm{Kind: DecayPowerLaw, Amplitude: amplitude, Alpha: alpha, Beta: beta}
}

// TauCutoff separates tier-1 (instantaneous, folded analytically into the
// beam-write stage) exponential terms from tier-2 (slow, tracked per-frame
// in the accumulation buffer) exponential terms.
const TauCutoff = 100e-6 // 100 microseconds

// Category classifies a phosphor by its typical application, matching the
// categories used by the phosphor-data reference database.
type Category int

const (
	GeneralPurpose Category = iota
	ShortDecay
	VideoDisplay
	LongDecaySulfide
)

func (c Category) String() string {
	switch c {
	case GeneralPurpose:
		return "general_purpose"
	case ShortDecay:
		return "short_decay"
	case VideoDisplay:
		return "video_display"
	case LongDecaySulfide:
		return "long_decay_sulfide"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Layer is one emission layer of a phosphor: a per-band emission weight
// vector plus the decay terms that govern how a deposited charge on this
// layer fades over time.
type Layer struct {
	EmissionWeights [spectral.BandCount]float32
	DecayTerms      []DecayTerm
}

// NewLayer builds a Layer from a Gaussian emission approximation.
func NewLayer(peakNM, fwhmNM float64, terms []DecayTerm) Layer {
	return Layer{
		EmissionWeights: spectral.GaussianEmissionWeights(peakNM, fwhmNM),
		DecayTerms:      terms,
	}
}

// Classification is the result of sorting a layer's decay terms into the
// three decay tiers used by the decay compute stage.
type Classification struct {
	// InstantExpCount is the number of exponential terms with tau < TauCutoff
	// (tier 1: folded into the beam-write stage's analytic integral).
	InstantExpCount int
	// SlowExpCount is the number of exponential terms with tau >= TauCutoff
	// (tier 2: decayed multiplicatively each frame).
	SlowExpCount int
	// HasPowerLaw is true if the layer has a power-law term (tier 3: a peak
	// plus an elapsed time, decayed by (alpha/(alpha+t))^beta).
	HasPowerLaw bool
}

// AccumLayers returns a per-band cell count for this classification:
// spectral.BandCount cells per tier-2 term, plus spectral.BandCount+1 if a
// power-law term exists; tier-1 terms count zero. It is not the per-pixel
// layer count of the accumulation buffer, which cpuref.BuildLayout (via
// accum.LayoutFor) sets to one layer per tier-2 term, two (peak, elapsed)
// for a power-law term and one for any tier-1 terms.
func (c Classification) AccumLayers() int {
	layers := c.SlowExpCount * spectral.BandCount
	if c.HasPowerLaw {
		layers += spectral.BandCount + 1
	}
	return layers
}

// Classify sorts a layer's decay terms into tiers using the given tau
// cutoff (normally TauCutoff).
func Classify(terms []DecayTerm, tauCutoff float64) Classification {
	var c Classification
	for _, t := range terms {
		switch t.Kind {
		case DecayExponential:
			if t.Tau < tauCutoff {
				c.InstantExpCount++
			} else {
				c.SlowExpCount++
			}
		case DecayPowerLaw:
			c.HasPowerLaw = true
		}
	}
	return c
}

// Type is a complete phosphor definition: one or two emission/decay layers
// plus descriptive metadata used for phosphor-selection UIs.
type Type struct {
	Designation           string
	Description           string
	Category               Category
	IsDualLayer            bool
	Fluorescence           Layer
	Phosphorescence        Layer
	PeakWavelengthNM       float64
	RelativeLuminance      float64
	RelativeWritingSpeed   float64
}

// Validate checks internal consistency the loader cannot always enforce
// structurally (e.g. TOML round-tripping through zero values).
func (t *Type) Validate() error {
	if t.Designation == "" {
		return fmt.Errorf("phosphordata: phosphor has no designation")
	}
	if len(t.Fluorescence.DecayTerms) == 0 && len(t.Phosphorescence.DecayTerms) == 0 {
		return fmt.Errorf("phosphordata: %s has no decay terms", t.Designation)
	}
	return nil
}
