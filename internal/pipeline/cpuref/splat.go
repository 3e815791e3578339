package cpuref

import "math"

// erf approximates the error function using Abramowitz & Stegun 7.1.26,
// accurate to about 1.5e-7 — the same numerically stable approximation
// the WGSL beam-write kernel must use since WGSL has no built-in erf.
func erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)
	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)
	return sign * y
}

// PointProfile evaluates the static core+halo Gaussian profile at
// squared radius r2 from the beam center, per §4.8 step 3.
func PointProfile(r2, sigmaCore, sigmaHalo, haloFraction float64) float64 {
	core := math.Exp(-r2 / (2 * sigmaCore * sigmaCore))
	halo := math.Exp(-r2 / (2 * sigmaHalo * sigmaHalo))
	return (1-haloFraction)*core + haloFraction*halo
}

// LineProfile evaluates the analytical line integral of a 2-D Gaussian
// along a segment of length abLen, at perpendicular distance dPerp and
// longitudinal projection tPar of the sample pixel onto the segment, per
// §4.8 step 2's profile formula.
func LineProfile(dPerp, tPar, abLen, sigma float64) float64 {
	if abLen <= 0 {
		return 0
	}
	sqrt2sigma := math.Sqrt2 * sigma
	e1 := erf((abLen - tPar) / sqrt2sigma)
	e2 := erf(tPar / sqrt2sigma)
	return (sigma / abLen) * math.Sqrt(math.Pi/2) * math.Exp(-dPerp*dPerp/(2*sigma*sigma)) * (e1 + e2)
}

// LineSplat combines core and halo line profiles, per §4.8 step 2.
func LineSplat(dPerp, tPar, abLen, sigmaCore, sigmaHalo, haloFraction float64) float64 {
	core := LineProfile(dPerp, tPar, abLen, sigmaCore)
	halo := LineProfile(dPerp, tPar, abLen, sigmaHalo)
	return (1-haloFraction)*core + haloFraction*halo
}

// SegmentGeometry projects a pixel center p onto the segment AB,
// returning the longitudinal projection tPar (pixels from A along AB)
// and the perpendicular distance dPerp.
func SegmentGeometry(px, py, ax, ay, bx, by float64) (tPar, dPerp, abLen float64) {
	abx := bx - ax
	aby := by - ay
	abLen = math.Hypot(abx, aby)
	if abLen <= 0 {
		return 0, math.Hypot(px-ax, py-ay), 0
	}
	ux := abx / abLen
	uy := aby / abLen
	apx := px - ax
	apy := py - ay
	tPar = apx*ux + apy*uy
	dPerp = math.Abs(apx*uy - apy*ux)
	return tPar, dPerp, abLen
}

// PointSplatThreshold is the §4.8 step 1 minimum segment length (in
// pixels) below which beam write falls back to a point splat at B
// instead of a line integral.
const PointSplatThreshold = 0.5

// DepositEnergy returns the deposition E = intensity · p · dt for a
// single emission point, per §4.8 step 4.
func DepositEnergy(intensity, profile, dt float64) float64 {
	return intensity * profile * dt
}

// ApplyBeamWrite deposits one sample's energy into a pixel's accumulation
// cells, per §4.8 step 4: slow-exponential and power-law-peak layers
// accumulate e, the power-law elapsed layer resets to 0, and the instant
// layer accumulates e times the analytically integrated tier-1 total.
// e is the already-computed deposit for this pixel (DepositEnergy). Each
// cell holds a scalar energy; the group's 16 band weights are not applied
// here but at resolve time, by BandEnergy.
func ApplyBeamWrite(cells []float64, g GroupLayout, e float64) {
	for i := 0; i < g.SlowExpCount; i++ {
		cells[g.SlowExpStart+i] += e
	}
	if g.HasPowerLaw {
		cells[g.PeakLayer] += e
		cells[g.ElapsedLayer] = 0
	}
	if g.HasInstant {
		cells[g.InstantLayer] += e * g.InstantEnergyTotal
	}
}
