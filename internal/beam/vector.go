package beam

import "math"

// VectorSegment is one line segment in a vector display list, in
// normalized [-1, 1] device coordinates. MoveSegment (Intensity == 0
// by convention) blanks the beam while it repositions; draw segments
// paint a line between From and To.
type VectorSegment struct {
	FromX, FromY float64
	ToX, ToY     float64
	Intensity    float64
}

// Vector replays a fixed display list of line segments repeatedly,
// subdividing each segment into samples spaced by MinStepLength so the
// beam-write stage sees a dense dwell trail rather than a single point
// per segment, the way a CRT vector monitor's deflection amplifiers
// trace a stroke continuously rather than jumping between endpoints.
type Vector struct {
	Segments      []VectorSegment
	SampleRate    float64
	MinStepLength float64 // in normalized [-1,1] device units

	segIdx int
	segT   float64 // progress along current segment, [0,1]
}

// NewVector creates a Vector beam source. minStepLength of 0 defaults to
// a reasonable fixed subdivision.
func NewVector(segments []VectorSegment, sampleRate, minStepLength float64) *Vector {
	if minStepLength <= 0 {
		minStepLength = 0.01
	}
	return &Vector{Segments: segments, SampleRate: sampleRate, MinStepLength: minStepLength}
}

func (v *Vector) segmentLength(s VectorSegment) float64 {
	dx := s.ToX - s.FromX
	dy := s.ToY - s.FromY
	return math.Hypot(dx, dy)
}

// Generate implements Source.
func (v *Vector) Generate(dst []Sample, count int, state *State) []Sample {
	if v.SampleRate <= 0 || len(v.Segments) == 0 {
		return dst
	}
	dt := 1.0 / v.SampleRate
	for i := 0; i < count; i++ {
		seg := v.Segments[v.segIdx]
		length := v.segmentLength(seg)
		x := seg.FromX + (seg.ToX-seg.FromX)*v.segT
		y := seg.FromY + (seg.ToY-seg.FromY)*v.segT
		nx, ny := aspectCorrect(x, y, state.AspectRatio)
		dst = append(dst, Sample{X: nx, Y: ny, Intensity: seg.Intensity, DT: dt})
		state.TimeSeconds += dt

		step := 1.0
		if length > 0 {
			step = v.MinStepLength / length
		}
		v.segT += step
		if v.segT >= 1.0 {
			v.segT = 0
			v.segIdx = (v.segIdx + 1) % len(v.Segments)
		}
	}
	return dst
}
