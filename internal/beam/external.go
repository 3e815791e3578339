package beam

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// External reads beam samples from a line-oriented text protocol,
// letting an outside process (a test harness, a hand-written script, a
// live instrument) drive the beam without implementing the Source
// interface in Go.
//
// Protocol, one command per line:
//
//	B x y intensity dt   beam sample at (x, y) in [-1,1], intensity, dwell seconds
//	L x0 y0 x1 y1 n       straight line from (x0,y0) to (x1,y1), n evenly spaced samples
//	F                     frame boundary marker, skipped (produces no sample)
//
// Blank lines and lines starting with '#' are ignored.
type External struct {
	scanner *bufio.Scanner
	dt      float64 // dwell time assigned to B samples and expanded L samples
}

// NewExternal creates an External beam source reading commands from r.
// dt is the dwell time assigned to each B sample and to each sample of an
// expanded L command when the line doesn't specify one implicitly.
func NewExternal(r io.Reader, dt float64) *External {
	return &External{scanner: bufio.NewScanner(r), dt: dt}
}

// ErrMalformedLine is returned (wrapped with the offending line) when an
// External protocol line cannot be parsed.
type ErrMalformedLine struct {
	Line string
}

func (e *ErrMalformedLine) Error() string {
	return fmt.Sprintf("beam: malformed external protocol line: %q", e.Line)
}

func (x *External) nextCommandSamples(state *State) ([]Sample, error) {
	for x.scanner.Scan() {
		line := strings.TrimSpace(x.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "B":
			if len(fields) != 5 {
				return nil, &ErrMalformedLine{Line: line}
			}
			vals, err := parseFloats(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("beam: parse B line %q: %w", line, err)
			}
			nx, ny := aspectCorrect(vals[0], vals[1], state.AspectRatio)
			s := Sample{X: nx, Y: ny, Intensity: vals[2], DT: vals[3]}
			state.TimeSeconds += s.DT
			return []Sample{s}, nil
		case "L":
			if len(fields) != 6 {
				return nil, &ErrMalformedLine{Line: line}
			}
			vals, err := parseFloats(fields[1:5])
			if err != nil {
				return nil, fmt.Errorf("beam: parse L line %q: %w", line, err)
			}
			n, err := strconv.Atoi(fields[5])
			if err != nil || n <= 0 {
				return nil, &ErrMalformedLine{Line: line}
			}
			samples := make([]Sample, 0, n)
			for i := 0; i < n; i++ {
				t := float64(i) / float64(n-1)
				if n == 1 {
					t = 0
				}
				px := vals[0] + (vals[2]-vals[0])*t
				py := vals[1] + (vals[3]-vals[1])*t
				nx, ny := aspectCorrect(px, py, state.AspectRatio)
				samples = append(samples, Sample{X: nx, Y: ny, Intensity: 1.0, DT: x.dt})
				state.TimeSeconds += x.dt
			}
			return samples, nil
		case "F":
			continue
		default:
			return nil, &ErrMalformedLine{Line: line}
		}
	}
	if err := x.scanner.Err(); err != nil {
		return nil, fmt.Errorf("beam: read external protocol: %w", err)
	}
	return nil, io.EOF
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Generate implements Source. It stops early (returning fewer than count
// samples) at end of stream or on a malformed line; callers inspect the
// returned slice length to detect short reads, since Source has no error
// return.
func (x *External) Generate(dst []Sample, count int, state *State) []Sample {
	produced := 0
	for produced < count {
		samples, err := x.nextCommandSamples(state)
		if err != nil {
			break
		}
		dst = append(dst, samples...)
		produced += len(samples)
	}
	return dst
}
