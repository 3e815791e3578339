package beam

import "math"

// MinSpacingSigma is the arc-length resampler's spacing threshold: samples
// closer together than this fraction of the beam-write Gaussian's sigma are
// merged by the arc-length resampler, since depositing them separately
// into the accumulation buffer would be indistinguishable from a single
// wider dwell and only adds GPU dispatch overhead.
const MinSpacingSigma = 0.5

// Resample merges consecutive beam samples that fall closer together
// than minSpacing (in the same normalized [0,1] units as Sample.X/Y)
// into a single sample, conserving total deposited energy: the merged
// sample's Intensity*DT product equals the sum of the Intensity*DT
// products of the samples it replaces, and its position is their
// energy-weighted centroid.
//
// Samples are assumed already in beam order (as produced by a Source);
// Resample does not reorder them.
func Resample(samples []Sample, minSpacing float64) []Sample {
	if len(samples) == 0 {
		return samples
	}
	out := make([]Sample, 0, len(samples))
	cur := samples[0]
	curEnergy := cur.Intensity * cur.DT
	accX := cur.X * curEnergy
	accY := cur.Y * curEnergy

	flush := func() {
		if curEnergy > 0 {
			cur.X = accX / curEnergy
			cur.Y = accY / curEnergy
		}
		out = append(out, cur)
	}

	for i := 1; i < len(samples); i++ {
		s := samples[i]
		d := math.Hypot(s.X-cur.X, s.Y-cur.Y)
		if d < minSpacing {
			e := s.Intensity * s.DT
			accX += s.X * e
			accY += s.Y * e
			curEnergy += e
			cur.DT += s.DT
			if curEnergy > 0 {
				cur.Intensity = curEnergy / cur.DT
			}
			continue
		}
		flush()
		cur = s
		curEnergy = s.Intensity * s.DT
		accX = s.X * curEnergy
		accY = s.Y * curEnergy
	}
	flush()
	return out
}

// SigmaSpacing converts a beam-write Gaussian's sigma (in normalized
// device units) into the minSpacing argument Resample expects, per
// MinSpacingSigma.
func SigmaSpacing(sigma float64) float64 {
	return sigma * MinSpacingSigma
}
