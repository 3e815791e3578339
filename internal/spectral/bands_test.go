package spectral

import (
	"math"
	"testing"
)

func TestBandRangeCoversVisibleSpectrum(t *testing.T) {
	minLo, _ := BandRange(0)
	_, maxHi := BandRange(BandCount - 1)
	if minLo != WavelengthMin {
		t.Errorf("first band starts at %v, want %v", minLo, WavelengthMin)
	}
	if maxHi != WavelengthMax {
		t.Errorf("last band ends at %v, want %v", maxHi, WavelengthMax)
	}
}

func TestBandRangesAreContiguous(t *testing.T) {
	for i := 0; i < BandCount-1; i++ {
		_, hi := BandRange(i)
		lo, _ := BandRange(i + 1)
		if math.Abs(hi-lo) > 1e-9 {
			t.Errorf("band %d ends at %v, band %d starts at %v: gap", i, hi, i+1, lo)
		}
	}
}

func TestGaussianEmissionWeightsNormalized(t *testing.T) {
	w := GaussianEmissionWeights(550, 40)
	sum := 0.0
	for _, v := range w {
		sum += float64(v)
	}
	if math.Abs(sum-1.0) > 1e-4 {
		t.Errorf("weights sum = %v, want ~1.0", sum)
	}
}

func TestGaussianEmissionWeightsPeaksNearCenter(t *testing.T) {
	w := GaussianEmissionWeights(550, 20)
	peakBand := 0
	peakVal := float32(0)
	for i, v := range w {
		if v > peakVal {
			peakVal = v
			peakBand = i
		}
	}
	c := BandCenter(peakBand)
	if math.Abs(c-550) > bandWidth {
		t.Errorf("peak band center = %v, want near 550", c)
	}
}

func TestIntegrateSpectrumNormalized(t *testing.T) {
	samples := []SpectrumSample{
		{WavelengthNM: 380, Intensity: 0},
		{WavelengthNM: 550, Intensity: 10},
		{WavelengthNM: 780, Intensity: 0},
	}
	w := IntegrateSpectrum(samples)
	sum := 0.0
	for _, v := range w {
		sum += float64(v)
	}
	if math.Abs(sum-1.0) > 1e-3 {
		t.Errorf("weights sum = %v, want ~1.0", sum)
	}
}

func TestIntegrateSpectrumEmptyIsZero(t *testing.T) {
	w := IntegrateSpectrum(nil)
	for i, v := range w {
		if v != 0 {
			t.Errorf("band %d = %v, want 0 for empty spectrum", i, v)
		}
	}
}

func TestBandXYZWeightsNonNegative(t *testing.T) {
	for i := 0; i < BandCount; i++ {
		xyz := BandXYZWeights(i)
		if xyz.X < 0 || xyz.Y < 0 || xyz.Z < 0 {
			t.Errorf("band %d has negative XYZ weight: %+v", i, xyz)
		}
	}
}

func TestBandXYZWeightsSumApproximatesLuminousEfficiency(t *testing.T) {
	total := 0.0
	for i := 0; i < BandCount; i++ {
		total += BandXYZWeights(i).Y
	}
	// Integral of y-bar over the visible range is ~106.86 (CIE constant).
	if total < 50 || total > 150 {
		t.Errorf("sum of Y weights = %v, want in a plausible range around 106.86", total)
	}
}
