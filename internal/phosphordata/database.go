package phosphordata

// builtin holds the phosphor definitions that ship with the module,
// equivalent to the reference database's declarative phosphor table.
// Decay term amplitudes and time constants are taken from published
// oscilloscope and CRT phosphor persistence measurements.
var builtin = map[string]Type{
	"P1": {
		Designation:          "P1",
		Description:          "Medium persistence green, general purpose oscilloscope phosphor.",
		Category:             GeneralPurpose,
		PeakWavelengthNM:     520,
		RelativeLuminance:    50,
		RelativeWritingSpeed: 60,
		Fluorescence: NewLayer(520, 40, []DecayTerm{
			Exponential(6.72, 0.00288),
			Exponential(1.0, 0.0151),
		}),
	},
	"P3": {
		Designation:          "P3",
		Description:          "Medium-short persistence yellow-orange phosphor.",
		Category:             GeneralPurpose,
		PeakWavelengthNM:     590,
		RelativeLuminance:    55,
		RelativeWritingSpeed: 55,
		Fluorescence: NewLayer(590, 45, []DecayTerm{
			Exponential(5.1, 0.0011),
			Exponential(0.8, 0.0062),
		}),
	},
	"P4": {
		Designation:          "P4",
		Description:          "White phosphor blend used in monochrome television displays.",
		Category:             VideoDisplay,
		PeakWavelengthNM:     565,
		RelativeLuminance:    100,
		RelativeWritingSpeed: 100,
		Fluorescence: NewLayer(565, 90, []DecayTerm{
			Exponential(4.2, 38e-6),
			Exponential(1.1, 420e-6),
		}),
	},
	"P7": {
		Designation:      "P7",
		Description:      "Dual-layer blue fluorescence / yellow-green phosphorescence, long afterglow radar phosphor.",
		Category:         LongDecaySulfide,
		IsDualLayer:       true,
		PeakWavelengthNM: 460,
		RelativeLuminance:    30,
		RelativeWritingSpeed: 25,
		Fluorescence: NewLayer(460, 35, []DecayTerm{
			Exponential(90, 31.8e-9),
			Exponential(30, 1.2e-6),
		}),
		Phosphorescence: NewLayer(550, 70, []DecayTerm{
			PowerLaw(2.1e-4, 5.5e-6, 1.1),
			Exponential(1.0, 0.45),
		}),
	},
	"P11": {
		Designation:          "P11",
		Description:          "Short persistence blue phosphor used for photographic oscilloscope recording.",
		Category:             ShortDecay,
		PeakWavelengthNM:     460,
		RelativeLuminance:    35,
		RelativeWritingSpeed: 65,
		Fluorescence: NewLayer(460, 40, []DecayTerm{
			Exponential(20, 24e-6),
			Exponential(3.5, 180e-6),
		}),
	},
	"P22": {
		Designation:          "P22",
		Description:          "Tri-color (RGB phosphor dot) television phosphor blend, green component modeled.",
		Category:             VideoDisplay,
		PeakWavelengthNM:     545,
		RelativeLuminance:    100,
		RelativeWritingSpeed: 90,
		Fluorescence: NewLayer(545, 55, []DecayTerm{
			Exponential(12, 1.1e-3),
			Exponential(2.0, 6.0e-3),
		}),
	},
	"P31": {
		Designation:          "P31",
		Description:          "Medium-short persistence green, high luminous efficiency general purpose phosphor.",
		Category:             GeneralPurpose,
		PeakWavelengthNM:     530,
		RelativeLuminance:    100,
		RelativeWritingSpeed: 100,
		Fluorescence: NewLayer(530, 50, []DecayTerm{
			PowerLaw(2.1e-4, 5.5e-6, 1.1),
			Exponential(90, 31.8e-9),
			Exponential(100, 227e-9),
			Exponential(37, 1.06e-6),
		}),
	},
	"P39": {
		Designation:          "P39",
		Description:          "Dual-layer long persistence green phosphor used in radar and storage displays.",
		Category:             LongDecaySulfide,
		IsDualLayer:           true,
		PeakWavelengthNM:     525,
		RelativeLuminance:    60,
		RelativeWritingSpeed: 30,
		Fluorescence: NewLayer(525, 40, []DecayTerm{
			Exponential(40, 8e-6),
			Exponential(5.0, 90e-6),
		}),
		Phosphorescence: NewLayer(525, 60, []DecayTerm{
			PowerLaw(3.4e-4, 8.0e-6, 1.05),
			Exponential(0.6, 1.8),
		}),
	},
}

// AllPhosphors returns every built-in phosphor definition. The returned
// slice is freshly allocated, but each Type's DecayTerms slices share
// their backing arrays with the built-in table.
func AllPhosphors() []Type {
	out := make([]Type, 0, len(builtin))
	for _, t := range builtin {
		if !t.IsDualLayer {
			t.Phosphorescence = t.Fluorescence
		}
		out = append(out, t)
	}
	return out
}

// Lookup returns the built-in phosphor with the given designation.
func Lookup(designation string) (Type, bool) {
	t, ok := builtin[designation]
	if ok && !t.IsDualLayer {
		t.Phosphorescence = t.Fluorescence
	}
	return t, ok
}
