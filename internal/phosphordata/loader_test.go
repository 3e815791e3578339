package phosphordata

import (
	"strings"
	"testing"
)

func TestLoadTOMLExplicitDecayTerms(t *testing.T) {
	src := `
[P1]
description = "Medium persistence green."
category = "general_purpose"
peak_nm = 520.0
fwhm_nm = 40.0
relative_luminance = 50.0
relative_writing_speed = 60.0

[[P1.decay_terms]]
type = "exponential"
amplitude = 6.72
tau = 0.00288

[[P1.decay_terms]]
type = "exponential"
amplitude = 1.0
tau = 0.0151
`
	phosphors, err := LoadTOML([]byte(src))
	if err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}
	if len(phosphors) != 1 {
		t.Fatalf("got %d phosphors, want 1", len(phosphors))
	}
	p1 := phosphors[0]
	if len(p1.Fluorescence.DecayTerms) != 2 {
		t.Fatalf("got %d decay terms, want 2", len(p1.Fluorescence.DecayTerms))
	}
	term := p1.Fluorescence.DecayTerms[0]
	if term.Kind != DecayExponential {
		t.Fatalf("term.Kind = %v, want DecayExponential", term.Kind)
	}
	if term.Amplitude != 6.72 || term.Tau != 0.00288 {
		t.Errorf("term = %+v, want amplitude=6.72 tau=0.00288", term)
	}
}

func TestLoadTOMLPowerLawTerm(t *testing.T) {
	src := `
[P31]
description = "Medium-short persistence green."
category = "general_purpose"
peak_nm = 530.0
fwhm_nm = 50.0
relative_luminance = 100.0
relative_writing_speed = 100.0

[[P31.decay_terms]]
type = "power_law"
amplitude = 2.1e-4
alpha = 5.5e-6
beta = 1.1

[[P31.decay_terms]]
type = "exponential"
amplitude = 90.0
tau = 31.8e-9
`
	phosphors, err := LoadTOML([]byte(src))
	if err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}
	p31 := phosphors[0]
	if len(p31.Fluorescence.DecayTerms) != 2 {
		t.Fatalf("got %d decay terms, want 2", len(p31.Fluorescence.DecayTerms))
	}
	term := p31.Fluorescence.DecayTerms[0]
	if term.Kind != DecayPowerLaw {
		t.Fatalf("term.Kind = %v, want DecayPowerLaw", term.Kind)
	}
	if term.Alpha != 5.5e-6 || term.Beta != 1.1 {
		t.Errorf("term = %+v, want alpha=5.5e-6 beta=1.1", term)
	}
}

func TestLoadTOMLDualLayerRequiresBothLayers(t *testing.T) {
	src := `
[P7]
description = "Dual-layer phosphor"
category = "long_decay_sulfide"
dual_layer = true
peak_nm = 460.0
relative_luminance = 30.0
relative_writing_speed = 25.0

[P7.fluorescence]
peak_nm = 460.0
fwhm_nm = 35.0
[[P7.fluorescence.decay_terms]]
type = "exponential"
amplitude = 90.0
tau = 31.8e-9
`
	_, err := LoadTOML([]byte(src))
	if err == nil {
		t.Fatal("expected error for missing phosphorescence table, got nil")
	}
}

func TestLoadTOMLUnknownCategory(t *testing.T) {
	src := `
[X1]
description = "bad"
category = "not_a_real_category"
peak_nm = 500.0
fwhm_nm = 30.0
relative_luminance = 10.0
relative_writing_speed = 10.0
[[X1.decay_terms]]
type = "exponential"
amplitude = 1.0
tau = 0.01
`
	_, err := LoadTOML([]byte(src))
	if err == nil {
		t.Fatal("expected error for unknown category, got nil")
	}
}

func TestParseSpectrumCSV(t *testing.T) {
	csvData := `wavelength_nm,intensity
# comment line should be skipped
500,0.1
550,1.0
600,0.2
`
	samples, err := parseSpectrumCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("parseSpectrumCSV() error = %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	if samples[1].WavelengthNM != 550 || samples[1].Intensity != 1.0 {
		t.Errorf("samples[1] = %+v, want {550 1.0}", samples[1])
	}
}
