// Package simulation runs the fixed-rate beam simulation thread: a
// goroutine that repeatedly pulls samples from a beam.Source at the
// configured sample rate, resamples them, and pushes them into a
// samplering.Ring for the render frame loop to drain.
package simulation

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/crtlab/phosphor/internal/beam"
	"github.com/crtlab/phosphor/internal/samplering"
)

// MinBatchInterval and MaxBatchInterval bound the adaptive batching
// window: too small and the loop spends more time on goroutine
// scheduling overhead than generating samples, too large and a full
// frame's worth of samples lands in the ring all at once, spiking
// consumer-side latency.
const (
	MinBatchInterval = 1 * time.Millisecond
	MaxBatchInterval = 10 * time.Millisecond
)

// Stats reports loop health, refreshed once per batch.
type Stats struct {
	BatchInterval time.Duration
	SamplesPushed uint64
	SamplesDropped uint64
}

// Loop drives a beam.Source at a fixed sample rate on its own goroutine,
// adaptively sizing how many samples it generates per wakeup so the ring
// stays comfortably fed without front-loading an entire frame's samples
// into a single push.
type Loop struct {
	source     beam.Source
	ring       *samplering.Ring
	sampleRate float64
	minSpacing float64

	state State

	batchInterval atomic.Int64 // time.Duration, nanoseconds
	pushed        atomic.Uint64
	dropped       atomic.Uint64

	done chan struct{}
	wg   sync.WaitGroup
}

// State exposes the simulation thread's shared clock/aspect state so a
// caller can update AspectRatio (e.g. on window resize) without racing
// the producer goroutine's own reads, guarded by a mutex since it
// changes far less often than samples are produced.
type State struct {
	mu          sync.Mutex
	aspectRatio float64
}

// SetAspectRatio updates the aspect ratio used by geometric beam sources.
func (s *State) SetAspectRatio(r float64) {
	s.mu.Lock()
	s.aspectRatio = r
	s.mu.Unlock()
}

func (s *State) aspect() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aspectRatio
}

// New creates a Loop. minSpacing is the arc-length resampler's merge
// threshold, typically beam.SigmaSpacing(sigma) for the configured
// phosphor's beam-write Gaussian.
func New(source beam.Source, ring *samplering.Ring, sampleRate, minSpacing float64) *Loop {
	l := &Loop{
		source:     source,
		ring:       ring,
		sampleRate: sampleRate,
		minSpacing: minSpacing,
		done:       make(chan struct{}),
	}
	l.batchInterval.Store(int64(MinBatchInterval))
	return l
}

// Start launches the simulation goroutine. Start must be called at most
// once per Loop.
func (l *Loop) Start() {
	l.wg.Add(1)
	go l.run()
}

// Stop signals the simulation goroutine to exit and waits for it to
// finish the batch currently in flight.
func (l *Loop) Stop() {
	close(l.done)
	l.wg.Wait()
}

// SetAspectRatio updates the aspect ratio geometric beam sources use,
// safe to call concurrently with the running simulation goroutine (e.g.
// from the render thread on a window resize).
func (l *Loop) SetAspectRatio(r float64) {
	l.state.SetAspectRatio(r)
}

// Stats returns a snapshot of the loop's current health counters.
func (l *Loop) Stats() Stats {
	return Stats{
		BatchInterval:  time.Duration(l.batchInterval.Load()),
		SamplesPushed:  l.pushed.Load(),
		SamplesDropped: l.dropped.Load(),
	}
}

func (l *Loop) run() {
	defer l.wg.Done()

	genState := &beam.State{AspectRatio: l.state.aspect()}
	var buf []beam.Sample

	ticker := time.NewTicker(time.Duration(l.batchInterval.Load()))
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			interval := time.Duration(l.batchInterval.Load())
			genState.AspectRatio = l.state.aspect()

			count := int(l.sampleRate * interval.Seconds())
			if count < 1 {
				count = 1
			}

			buf = buf[:0]
			buf = l.source.Generate(buf, count, genState)
			if l.minSpacing > 0 {
				buf = beam.Resample(buf, l.minSpacing)
			}

			written := l.ring.PushBatch(buf)
			l.pushed.Add(uint64(written))
			if written < len(buf) {
				l.dropped.Add(uint64(len(buf) - written))
			}

			l.adapt(written, len(buf))
			newInterval := time.Duration(l.batchInterval.Load())
			if newInterval != interval {
				ticker.Reset(newInterval)
			}
		}
	}
}

// adapt halves the batch interval when the ring has headroom (keeps
// latency low) and doubles it when the producer is outrunning the
// consumer (reduces scheduling overhead while the ring drains),
// clamped to [MinBatchInterval, MaxBatchInterval].
func (l *Loop) adapt(written, requested int) {
	current := time.Duration(l.batchInterval.Load())
	next := current

	if written < requested {
		// Ring is full: back off.
		next = current * 2
	} else if l.ring.Free() > l.ring.Capacity()/2 {
		next = current / 2
	}

	if next < MinBatchInterval {
		next = MinBatchInterval
	}
	if next > MaxBatchInterval {
		next = MaxBatchInterval
	}
	l.batchInterval.Store(int64(next))
}
