package phosphordata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/crtlab/phosphor/internal/spectral"
)

// Sentinel errors returned by the phosphor definition loader.
var (
	// ErrMissingFWHM is returned for a single-layer phosphor with no fwhm_nm.
	ErrMissingFWHM = errors.New("phosphordata: single-layer phosphor missing fwhm_nm")
	// ErrMissingLayer is returned for a dual-layer phosphor missing a required layer table.
	ErrMissingLayer = errors.New("phosphordata: dual-layer phosphor missing required layer table")
	// ErrUnknownCategory is returned for an unrecognized category string.
	ErrUnknownCategory = errors.New("phosphordata: unknown phosphor category")
	// ErrUnknownDecayKind is returned for a decay term with an unrecognized "type" tag.
	ErrUnknownDecayKind = errors.New("phosphordata: unknown decay term type")
)

// decayTermTOML mirrors the `[[decay_terms]]` TOML array-of-tables, tagged
// on the "type" field exactly as the reference phosphor-data crate's serde
// representation does.
type decayTermTOML struct {
	Type      string  `toml:"type"`
	Amplitude float64 `toml:"amplitude"`
	Tau       float64 `toml:"tau"`
	Alpha     float64 `toml:"alpha"`
	Beta      float64 `toml:"beta"`
}

func (d decayTermTOML) resolve() (DecayTerm, error) {
	switch d.Type {
	case "exponential":
		return Exponential(d.Amplitude, d.Tau), nil
	case "power_law":
		return PowerLaw(d.Amplitude, d.Alpha, d.Beta), nil
	default:
		return DecayTerm{}, fmt.Errorf("%w: %q", ErrUnknownDecayKind, d.Type)
	}
}

// layerTOML mirrors a `[fluorescence]` / `[phosphorescence]` sub-table.
type layerTOML struct {
	PeakNM     float64         `toml:"peak_nm"`
	FWHMNM     float64         `toml:"fwhm_nm"`
	SpectrumCSV string         `toml:"spectrum_csv"`
	DecayTerms []decayTermTOML `toml:"decay_terms"`
}

// phosphorTOML mirrors one top-level `[DESIGNATION]` table of a phosphor
// definition file.
type phosphorTOML struct {
	Description          string          `toml:"description"`
	Category              string          `toml:"category"`
	DualLayer             bool            `toml:"dual_layer"`
	PeakNM                float64         `toml:"peak_nm"`
	FWHMNM                *float64        `toml:"fwhm_nm"`
	SpectrumCSV           string          `toml:"spectrum_csv"`
	DecayTerms            []decayTermTOML `toml:"decay_terms"`
	RelativeLuminance     float64         `toml:"relative_luminance"`
	RelativeWritingSpeed  float64         `toml:"relative_writing_speed"`
	Fluorescence          *layerTOML      `toml:"fluorescence"`
	Phosphorescence       *layerTOML      `toml:"phosphorescence"`
}

func parseCategory(s string) (Category, error) {
	switch s {
	case "general_purpose", "":
		return GeneralPurpose, nil
	case "short_decay":
		return ShortDecay, nil
	case "video_display":
		return VideoDisplay, nil
	case "long_decay_sulfide":
		return LongDecaySulfide, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

func resolveTerms(raw []decayTermTOML) ([]DecayTerm, error) {
	out := make([]DecayTerm, 0, len(raw))
	for _, r := range raw {
		t, err := r.resolve()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func buildLayer(peakNM, fwhmNM float64, csvPath string, terms []DecayTerm) (Layer, error) {
	if csvPath != "" {
		weights, err := loadSpectrumCSV(csvPath)
		if err != nil {
			return Layer{}, err
		}
		return Layer{EmissionWeights: weights, DecayTerms: terms}, nil
	}
	return NewLayer(peakNM, fwhmNM, terms), nil
}

func build(designation string, data *phosphorTOML) (Type, error) {
	category, err := parseCategory(data.Category)
	if err != nil {
		return Type{}, fmt.Errorf("%s: %w", designation, err)
	}

	fallbackTerms, err := resolveTerms(data.DecayTerms)
	if err != nil {
		return Type{}, fmt.Errorf("%s: %w", designation, err)
	}

	t := Type{
		Designation:          designation,
		Description:          data.Description,
		Category:             category,
		IsDualLayer:          data.DualLayer,
		PeakWavelengthNM:     data.PeakNM,
		RelativeLuminance:    data.RelativeLuminance,
		RelativeWritingSpeed: data.RelativeWritingSpeed,
	}

	if data.DualLayer {
		if data.Fluorescence == nil || data.Phosphorescence == nil {
			return Type{}, fmt.Errorf("%s: %w", designation, ErrMissingLayer)
		}
		flTerms := fallbackTerms
		if len(data.Fluorescence.DecayTerms) > 0 {
			flTerms, err = resolveTerms(data.Fluorescence.DecayTerms)
			if err != nil {
				return Type{}, fmt.Errorf("%s: fluorescence: %w", designation, err)
			}
		}
		phTerms := fallbackTerms
		if len(data.Phosphorescence.DecayTerms) > 0 {
			phTerms, err = resolveTerms(data.Phosphorescence.DecayTerms)
			if err != nil {
				return Type{}, fmt.Errorf("%s: phosphorescence: %w", designation, err)
			}
		}
		t.Fluorescence, err = buildLayer(data.Fluorescence.PeakNM, data.Fluorescence.FWHMNM, data.Fluorescence.SpectrumCSV, flTerms)
		if err != nil {
			return Type{}, fmt.Errorf("%s: fluorescence: %w", designation, err)
		}
		t.Phosphorescence, err = buildLayer(data.Phosphorescence.PeakNM, data.Phosphorescence.FWHMNM, data.Phosphorescence.SpectrumCSV, phTerms)
		if err != nil {
			return Type{}, fmt.Errorf("%s: phosphorescence: %w", designation, err)
		}
	} else {
		if data.SpectrumCSV == "" && data.FWHMNM == nil {
			return Type{}, fmt.Errorf("%s: %w", designation, ErrMissingFWHM)
		}
		fwhm := 0.0
		if data.FWHMNM != nil {
			fwhm = *data.FWHMNM
		}
		layer, err := buildLayer(data.PeakNM, fwhm, data.SpectrumCSV, fallbackTerms)
		if err != nil {
			return Type{}, fmt.Errorf("%s: %w", designation, err)
		}
		t.Fluorescence = layer
		t.Phosphorescence = layer
	}

	if err := t.Validate(); err != nil {
		return Type{}, err
	}
	return t, nil
}

// LoadTOML parses phosphor definitions from TOML source text. Each
// top-level table is one phosphor, keyed by designation.
func LoadTOML(data []byte) ([]Type, error) {
	var table map[string]phosphorTOML
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("phosphordata: parse: %w", err)
	}

	designations := make([]string, 0, len(table))
	for k := range table {
		designations = append(designations, k)
	}
	sort.Strings(designations)

	out := make([]Type, 0, len(table))
	for _, name := range designations {
		entry := table[name]
		t, err := build(name, &entry)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadUser loads a single phosphor definition from a TOML file on disk.
// If the file defines more than one phosphor table, the first (by
// designation, sorted) is returned; use LoadTOMLFile to load them all.
func LoadUser(path string) (Type, error) {
	all, err := LoadTOMLFile(path)
	if err != nil {
		return Type{}, err
	}
	if len(all) == 0 {
		return Type{}, fmt.Errorf("phosphordata: %s defines no phosphors", path)
	}
	return all[0], nil
}

// LoadTOMLFile loads every phosphor definition from a TOML file on disk.
func LoadTOMLFile(path string) ([]Type, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("phosphordata: read %s: %w", path, err)
	}
	return LoadTOML(data)
}

// loadSpectrumCSV reads a measured emission spectrum from a CSV file and
// integrates it into per-band emission weights. The file has a header row
// (wavelength_nm,intensity), `#`-prefixed comment lines, and blank lines
// are ignored.
func loadSpectrumCSV(path string) ([spectral.BandCount]float32, error) {
	var zero [spectral.BandCount]float32

	f, err := os.Open(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return zero, fmt.Errorf("phosphordata: open spectrum %s: %w", path, err)
	}
	defer f.Close()

	samples, err := parseSpectrumCSV(f)
	if err != nil {
		return zero, fmt.Errorf("phosphordata: spectrum %s: %w", path, err)
	}
	return spectral.IntegrateSpectrum(samples), nil
}

func parseSpectrumCSV(r io.Reader) ([]spectral.SpectrumSample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	var samples []spectral.SpectrumSample
	headerSkipped := false
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}
		wl, werr := strconv.ParseFloat(record[0], 64)
		if werr != nil {
			if !headerSkipped {
				headerSkipped = true
				continue
			}
			return nil, fmt.Errorf("invalid wavelength %q: %w", record[0], werr)
		}
		intensity, ierr := strconv.ParseFloat(record[1], 64)
		if ierr != nil {
			return nil, fmt.Errorf("invalid intensity %q: %w", record[1], ierr)
		}
		headerSkipped = true
		samples = append(samples, spectral.SpectrumSample{WavelengthNM: wl, Intensity: intensity})
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].WavelengthNM < samples[j].WavelengthNM })
	return samples, nil
}
