package beam

import (
	"math"
	"testing"
)

func TestOscilloscopeSineGeneratesExpectedCount(t *testing.T) {
	o := NewOscilloscope(
		Channel{Waveform: Sine, FrequencyHz: 100, Amplitude: 1},
		Channel{Waveform: Sine, FrequencyHz: 150, Amplitude: 1, Phase: math.Pi / 2},
		48000,
	)
	state := &State{AspectRatio: 1}
	samples := o.Generate(nil, 10, state)
	if len(samples) != 10 {
		t.Fatalf("got %d samples, want 10", len(samples))
	}
	for i, s := range samples {
		if s.DT <= 0 {
			t.Errorf("sample %d DT = %v, want > 0", i, s.DT)
		}
		if s.X < 0 || s.X > 1 || s.Y < 0 || s.Y > 1 {
			t.Errorf("sample %d = {%v, %v}, want within [0,1]", i, s.X, s.Y)
		}
	}
}

func TestOscilloscopeAdvancesTimeMonotonically(t *testing.T) {
	o := NewOscilloscope(Channel{Waveform: Sine, FrequencyHz: 1, Amplitude: 1}, Channel{}, 1000)
	state := &State{}
	o.Generate(nil, 500, state)
	want := 0.5
	if math.Abs(state.TimeSeconds-want) > 1e-9 {
		t.Errorf("TimeSeconds = %v, want %v", state.TimeSeconds, want)
	}
}

func TestTriangleWaveRange(t *testing.T) {
	for phase := 0.0; phase < 4*math.Pi; phase += 0.1 {
		v := triangleWave(phase)
		if v < -1.0001 || v > 1.0001 {
			t.Fatalf("triangleWave(%v) = %v, out of [-1,1]", phase, v)
		}
	}
}

func TestSquareWaveIsBipolar(t *testing.T) {
	if squareWave(0.1) != 1 {
		t.Errorf("squareWave near 0 = %v, want 1", squareWave(0.1))
	}
	if squareWave(math.Pi+0.1) != -1 {
		t.Errorf("squareWave near pi = %v, want -1", squareWave(math.Pi+0.1))
	}
}

func TestSawtoothWaveRampsLinearly(t *testing.T) {
	v0 := sawtoothWave(0)
	v1 := sawtoothWave(math.Pi)
	if v0 >= v1 {
		t.Errorf("sawtooth should ramp upward: v0=%v v1=%v", v0, v1)
	}
}

func TestOscilloscopeNoiseChannelUsesInjectedSource(t *testing.T) {
	o := NewOscilloscope(Channel{Waveform: Noise, Amplitude: 1}, Channel{}, 1000)
	o.Noise = func() float64 { return 1 }
	state := &State{}
	samples := o.Generate(nil, 1, state)
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if math.Abs(samples[0].X-1.0) > 1e-9 {
		t.Errorf("X = %v, want 1.0 (noise pinned to 1, mapped from [-1,1] to [0,1])", samples[0].X)
	}
}

func TestOscilloscopeZeroSampleRateProducesNoSamples(t *testing.T) {
	o := NewOscilloscope(Channel{}, Channel{}, 0)
	state := &State{}
	samples := o.Generate(nil, 10, state)
	if len(samples) != 0 {
		t.Errorf("got %d samples, want 0", len(samples))
	}
}
