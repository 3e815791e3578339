package phosphordata

import "math"

// FitTwoExponentialDecay fits a two-term exponential
// I(t) = aFast*exp(-t/tauFast) + aSlow*exp(-t/tauSlow)
// to three measured decay points: the time to reach 10%, 1%, and 0.1% of
// initial intensity. This lets a user who only has an oscilloscope
// persistence datasheet (rather than raw amplitude/tau pairs) derive decay
// terms for a custom phosphor definition.
//
// Returns (tauFast, tauSlow, aFast, aSlow) with aFast+aSlow == 1 and
// tauFast <= tauSlow.
//
// The fit reparametrizes tau as log(tau) and aFast as a logit, so the
// unconstrained Gauss-Newton iteration below can never produce a negative
// time constant or a mixing weight outside [0, 1]. Each step is limited to
// ±1 per parameter in that reparametrized space.
func FitTwoExponentialDecay(t10pct, t1pct, t01pct float64) (tauFast, tauSlow, aFast, aSlow float64) {
	tauFInit := -t10pct / math.Log(0.10)
	tauSInit := -t01pct / math.Log(0.001)
	aFInit := 0.5

	params := [3]float64{
		math.Log(tauFInit),
		math.Log(tauSInit),
		math.Log(aFInit / (1 - aFInit)),
	}
	times := [3]float64{t10pct, t1pct, t01pct}
	targets := [3]float64{0.10, 0.01, 0.001}

	decode := func(p [3]float64) (tf, ts, af float64) {
		tf = math.Exp(p[0])
		ts = math.Exp(p[1])
		af = 1.0 / (1.0 + math.Exp(-p[2]))
		return
	}

	const iterations = 50
	for iter := 0; iter < iterations; iter++ {
		tf, ts, af := decode(params)
		as := 1 - af
		sigDeriv := af * as

		var residuals [3]float64
		var jacobian [3][3]float64
		for row, t := range times {
			expF := math.Exp(-t / tf)
			expS := math.Exp(-t / ts)
			residuals[row] = af*expF+as*expS - targets[row]
			jacobian[row][0] = af * expF * t / tf
			jacobian[row][1] = as * expS * t / ts
			jacobian[row][2] = (expF - expS) * sigDeriv
		}

		delta, ok := solve3x3(jacobian, residuals)
		if !ok {
			break
		}

		next := params
		for i := range next {
			next[i] -= math.Max(-1, math.Min(1, delta[i]))
		}

		converged := true
		for i := range next {
			if math.Abs(next[i]-params[i]) > 1e-10 {
				converged = false
			}
		}
		params = next
		if converged {
			break
		}
	}

	tauFast, tauSlow, aFast = decode(params)
	aSlow = 1 - aFast
	if tauFast > tauSlow {
		tauFast, tauSlow = tauSlow, tauFast
		aFast, aSlow = aSlow, aFast
	}
	return
}

// solve3x3 solves the 3x3 linear system J*x = r via Cramer's rule. Used to
// take a Gauss-Newton step (solving the normal equations' 3-parameter
// system directly, since the Jacobian here is already square).
func solve3x3(j [3][3]float64, r [3]float64) ([3]float64, bool) {
	det := j[0][0]*(j[1][1]*j[2][2]-j[1][2]*j[2][1]) -
		j[0][1]*(j[1][0]*j[2][2]-j[1][2]*j[2][0]) +
		j[0][2]*(j[1][0]*j[2][1]-j[1][1]*j[2][0])

	if math.Abs(det) < 1e-18 {
		return [3]float64{}, false
	}

	var x [3]float64
	for col := 0; col < 3; col++ {
		m := j
		for row := 0; row < 3; row++ {
			m[row][col] = r[row]
		}
		mdet := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
			m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
			m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
		x[col] = mdet / det
	}
	return x, true
}
