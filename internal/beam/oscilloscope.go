package beam

import (
	"math"
	"math/rand"
)

// Waveform selects the periodic function an oscilloscope Channel emits.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Square
	Sawtooth
	Noise
)

// Channel is one axis (X or Y) of a synthetic two-channel oscilloscope
// beam source.
type Channel struct {
	Waveform    Waveform
	FrequencyHz float64
	Amplitude   float64
	Phase       float64 // radians
	DCOffset    float64
}

// noiseSource supplies the per-sample random value for Waveform Noise. It
// is swappable so tests can inject a deterministic sequence.
type noiseSource func() float64

// Oscilloscope synthesizes a two-channel (X, Y) waveform beam, the
// simplest beam source: two independent periodic signals sampled at a
// fixed rate, exactly like an analog oscilloscope driven by two function
// generators.
type Oscilloscope struct {
	X, Y       Channel
	SampleRate float64 // samples per second
	Noise      noiseSource
}

// NewOscilloscope creates an Oscilloscope with the given sample rate and a
// default uniform [-1, 1] noise source.
func NewOscilloscope(x, y Channel, sampleRate float64) *Oscilloscope {
	return &Oscilloscope{X: x, Y: y, SampleRate: sampleRate, Noise: defaultNoise}
}

// defaultNoise draws uniformly from [-1, 1], the Open Question decision
// for the Noise waveform: callers needing a reproducible sequence inject
// their own noiseSource instead.
func defaultNoise() float64 {
	return rand.Float64()*2 - 1
}

func (o *Oscilloscope) evalChannel(c Channel, t float64) float64 {
	phase := 2*math.Pi*c.FrequencyHz*t + c.Phase
	var v float64
	switch c.Waveform {
	case Sine:
		v = math.Sin(phase)
	case Triangle:
		v = triangleWave(phase)
	case Square:
		v = squareWave(phase)
	case Sawtooth:
		v = sawtoothWave(phase)
	case Noise:
		v = o.noise()
	}
	return c.DCOffset + c.Amplitude*v
}

func (o *Oscilloscope) noise() float64 {
	if o.Noise == nil {
		return 0
	}
	return o.Noise()
}

func triangleWave(phase float64) float64 {
	x := math.Mod(phase/(2*math.Pi), 1.0)
	if x < 0 {
		x++
	}
	if x < 0.5 {
		return 4*x - 1
	}
	return 3 - 4*x
}

func squareWave(phase float64) float64 {
	x := math.Mod(phase, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	if x < math.Pi {
		return 1
	}
	return -1
}

func sawtoothWave(phase float64) float64 {
	x := math.Mod(phase/(2*math.Pi), 1.0)
	if x < 0 {
		x++
	}
	return 2*x - 1
}

// Generate implements Source.
func (o *Oscilloscope) Generate(dst []Sample, count int, state *State) []Sample {
	if o.SampleRate <= 0 {
		return dst
	}
	dt := 1.0 / o.SampleRate
	for i := 0; i < count; i++ {
		x := o.evalChannel(o.X, state.TimeSeconds)
		y := o.evalChannel(o.Y, state.TimeSeconds)
		nx, ny := aspectCorrect(x, y, state.AspectRatio)
		dst = append(dst, Sample{X: nx, Y: ny, Intensity: 1.0, DT: dt})
		state.TimeSeconds += dt
	}
	return dst
}
