package phosphordata

import (
	"math"
	"testing"
)

func TestFitTwoExponentialDecayMatchesP1Data(t *testing.T) {
	tauFast, tauSlow, aFast, aSlow := FitTwoExponentialDecay(0.027, 0.060, 0.095)

	if math.Abs(aFast+aSlow-1.0) > 0.001 {
		t.Errorf("aFast+aSlow = %v, want ~1.0", aFast+aSlow)
	}
	if tauFast <= 0 || tauSlow <= 0 {
		t.Fatalf("expected positive time constants, got tauFast=%v tauSlow=%v", tauFast, tauSlow)
	}
	if tauFast > tauSlow {
		t.Errorf("tauFast (%v) should be <= tauSlow (%v)", tauFast, tauSlow)
	}

	decayAt := func(tt float64) float64 {
		return aFast*math.Exp(-tt/tauFast) + aSlow*math.Exp(-tt/tauSlow)
	}

	if math.Abs(decayAt(0.027)-0.10) > 0.02 {
		t.Errorf("10%% point: got %v, want ~0.10", decayAt(0.027))
	}
	if math.Abs(decayAt(0.060)-0.01) > 0.005 {
		t.Errorf("1%% point: got %v, want ~0.01", decayAt(0.060))
	}
	if math.Abs(decayAt(0.095)-0.001) > 0.002 {
		t.Errorf("0.1%% point: got %v, want ~0.001", decayAt(0.095))
	}
}

func TestFitTwoExponentialDecayMatchesP7Data(t *testing.T) {
	tauFast, tauSlow, aFast, aSlow := FitTwoExponentialDecay(0.000305, 0.0057, 0.066)

	decayAt := func(tt float64) float64 {
		return aFast*math.Exp(-tt/tauFast) + aSlow*math.Exp(-tt/tauSlow)
	}

	if math.Abs(decayAt(0.000305)-0.10) > 0.02 {
		t.Errorf("10%% point: got %v, want ~0.10", decayAt(0.000305))
	}
	if math.Abs(decayAt(0.0057)-0.01) > 0.005 {
		t.Errorf("1%% point: got %v, want ~0.01", decayAt(0.0057))
	}
	if math.Abs(decayAt(0.066)-0.001) > 0.002 {
		t.Errorf("0.1%% point: got %v, want ~0.001", decayAt(0.066))
	}
}
