// Package samplering implements a single-producer/single-consumer bounded
// ring buffer of beam samples, decoupling the fixed-rate simulation
// thread (producer) from the render frame loop (consumer) so a slow frame
// never blocks sample generation and a slow simulation never starves a
// fast frame.
package samplering

import (
	"errors"
	"sync/atomic"

	"github.com/crtlab/phosphor/internal/beam"
)

// ErrCapacityNotPowerOfTwo is returned by New when capacity isn't a
// power of two: the index-masking fast path requires it.
var ErrCapacityNotPowerOfTwo = errors.New("samplering: capacity must be a power of two")

// MinCapacity is the floor CapacityForSampleRate applies (New itself
// accepts any power of two), chosen so the ring absorbs at least one
// second of audio-rate sampling even at the buffer's floor.
const MinCapacity = 65536

// CapacityForSampleRate returns the smallest power-of-two capacity that
// is both at least MinCapacity and at least 1.5x sampleRate, giving the
// ring headroom for a burst of frame stalls without dropping samples
// under normal jitter.
func CapacityForSampleRate(sampleRate float64) int {
	min := int(1.5 * sampleRate)
	if min < MinCapacity {
		min = MinCapacity
	}
	cap := 1
	for cap < min {
		cap <<= 1
	}
	return cap
}

// Ring is a bounded SPSC circular buffer of beam.Sample. One goroutine
// may call Push/PushBatch, and a (possibly different) single goroutine
// may call Drain/DrainInto; concurrent calls from more than one producer
// or more than one consumer are not safe.
type Ring struct {
	buf  []beam.Sample
	mask uint64

	head atomic.Uint64 // next write index, owned by the producer
	tail atomic.Uint64 // next read index, owned by the consumer
}

// New creates a Ring with the given power-of-two capacity.
func New(capacity int) (*Ring, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, ErrCapacityNotPowerOfTwo
	}
	return &Ring{
		buf:  make([]beam.Sample, capacity),
		mask: uint64(capacity - 1),
	}, nil
}

// Capacity returns the ring's fixed capacity.
func (r *Ring) Capacity() int { return len(r.buf) }

// Len returns the number of samples currently queued. It is a snapshot;
// under concurrent producer/consumer activity the true value may have
// changed by the time the caller acts on it.
func (r *Ring) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int(head - tail)
}

// Free returns the number of additional samples that can be pushed
// before the ring is full.
func (r *Ring) Free() int {
	return len(r.buf) - r.Len()
}

// PushBatch appends as many samples from src as fit without overwriting
// unread data, and returns the number actually written. A short write
// means the consumer is falling behind; callers decide whether to drop,
// block, or apply backpressure upstream.
func (r *Ring) PushBatch(src []beam.Sample) int {
	head := r.head.Load()
	tail := r.tail.Load()
	free := len(r.buf) - int(head-tail)
	n := len(src)
	if n > free {
		n = free
	}
	for i := 0; i < n; i++ {
		r.buf[(head+uint64(i))&r.mask] = src[i]
	}
	r.head.Store(head + uint64(n))
	return n
}

// DrainInto copies up to len(dst) queued samples into dst in FIFO order
// and returns the number copied, advancing the read position.
func (r *Ring) DrainInto(dst []beam.Sample) int {
	head := r.head.Load()
	tail := r.tail.Load()
	avail := int(head - tail)
	n := len(dst)
	if n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		dst[i] = r.buf[(tail+uint64(i))&r.mask]
	}
	r.tail.Store(tail + uint64(n))
	return n
}

// DrainAll removes and returns every currently queued sample.
func (r *Ring) DrainAll() []beam.Sample {
	n := r.Len()
	out := make([]beam.Sample, n)
	got := r.DrainInto(out)
	return out[:got]
}
