package beam

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrNotStereo is returned when an audio beam source is given a file with
// anything other than exactly two channels: a Lissajous beam needs one
// channel for X and one for Y, no more, no less.
var ErrNotStereo = errors.New("beam: audio source requires exactly 2 channels")

// Audio drives the beam from a fully decoded stereo PCM buffer, mapping
// the left channel to X and the right channel to Y: the classic
// oscilloscope "music" or vectorscope Lissajous display.
type Audio struct {
	left, right []float64
	sampleRate  float64
	pos         int
}

// DecodeWAV decodes a stereo WAV file into an Audio beam source.
func DecodeWAV(r io.Reader) (*Audio, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return nil, fmt.Errorf("beam: wav decoder requires io.ReadSeeker")
	}
	dec := wav.NewDecoder(rs)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("beam: invalid wav file")
	}
	if dec.NumChans != 2 {
		return nil, ErrNotStereo
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("beam: decode wav: %w", err)
	}
	return newAudioFromBuffer(buf, float64(dec.SampleRate))
}

// DecodeMP3 decodes a stereo MP3 stream into an Audio beam source.
func DecodeMP3(r io.Reader) (*Audio, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("beam: decode mp3: %w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("beam: read mp3 stream: %w", err)
	}
	// go-mp3 always decodes to 16-bit signed little-endian, 2 channels.
	n := len(raw) / 4
	left := make([]float64, n)
	right := make([]float64, n)
	for i := 0; i < n; i++ {
		l := int16(raw[i*4]) | int16(raw[i*4+1])<<8
		r := int16(raw[i*4+2]) | int16(raw[i*4+3])<<8
		left[i] = float64(l) / 32768.0
		right[i] = float64(r) / 32768.0
	}
	return &Audio{left: left, right: right, sampleRate: float64(dec.SampleRate())}, nil
}

func newAudioFromBuffer(buf *audio.IntBuffer, sampleRate float64) (*Audio, error) {
	frames := buf.NumFrames()
	left := make([]float64, frames)
	right := make([]float64, frames)
	maxVal := float64(int(1) << uint(buf.SourceBitDepth-1))
	if maxVal <= 0 {
		maxVal = 32768
	}
	for i := 0; i < frames; i++ {
		left[i] = float64(buf.Data[i*2]) / maxVal
		right[i] = float64(buf.Data[i*2+1]) / maxVal
	}
	return &Audio{left: left, right: right, sampleRate: sampleRate}, nil
}

// Len reports the total number of decoded stereo frames.
func (a *Audio) Len() int { return len(a.left) }

// Generate implements Source. Playback loops back to the start once the
// decoded buffer is exhausted, so an audio beam source can drive an
// indefinitely long simulation.
func (a *Audio) Generate(dst []Sample, count int, state *State) []Sample {
	if a.sampleRate <= 0 || len(a.left) == 0 {
		return dst
	}
	dt := 1.0 / a.sampleRate
	for i := 0; i < count; i++ {
		x, y := aspectCorrect(a.left[a.pos], a.right[a.pos], state.AspectRatio)
		dst = append(dst, Sample{X: x, Y: y, Intensity: 1.0, DT: dt})
		a.pos++
		if a.pos >= len(a.left) {
			a.pos = 0
		}
		state.TimeSeconds += dt
	}
	return dst
}
