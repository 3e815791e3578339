// Package beam generates the stream of electron beam samples that drive
// the beam-write GPU stage: synthetic waveforms (oscilloscope), decoded
// audio (Lissajous), vector display lists, and an external line-oriented
// text protocol.
package beam

// Sample is one electron beam position/intensity/dwell-time measurement,
// in normalized device coordinates (x, y both in [0, 1], origin at the
// bottom-left of the phosphor screen).
type Sample struct {
	X, Y      float64
	Intensity float64 // beam current, arbitrary units, 0 at rest
	DT        float64 // seconds since the previous sample (dwell time)
}

// EnergyScale is the empirical constant that converts beam current*dwell
// into phosphor excitation energy units. It has no intrinsic physical
// meaning beyond keeping the accumulation buffer's dynamic range sane
// across phosphor types with very different relative_writing_speed values.
const EnergyScale = 5000.0

// Energy returns the excitation energy this sample deposits, following
// the spec's energy-conservation rule: energy is proportional to
// intensity times dwell time, scaled by EnergyScale.
func (s Sample) Energy() float64 {
	return s.Intensity * s.DT * EnergyScale
}
