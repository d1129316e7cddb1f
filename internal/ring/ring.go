// Package ring implements a single-producer/single-consumer sample
// buffer with configurable overrun handling.
//
// The buffer uses monotonically increasing 64-bit cursors; the physical
// index is cursor mod capacity, so any capacity is supported, not just
// powers of two. Cursor wraparound would require 2^64 samples and is
// treated as unreachable.
//
// Exactly one goroutine may call Write and exactly one may call Read or
// Peek. Under RejectWrite the two sides only ever touch disjoint slots
// and synchronize through the cursors alone. Under DropOldest the
// producer reclaims unread slots before overwriting them; that reclaim
// is serialized against the consumer's copy with a mutex so the
// consumer never reads a slot while it is being rewritten, and the
// consumer revalidates its cursor after copying so a span dropped
// between copy and commit is copied again instead of returned.
package ring

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Policy selects how Write behaves when the buffer has insufficient space.
type Policy int

const (
	// DropOldest discards the oldest unread samples to make room for the
	// entire incoming block. Writes never fail.
	DropOldest Policy = iota

	// RejectWrite stores as many incoming samples as fit and discards the
	// remainder, leaving buffered samples intact.
	RejectWrite
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case DropOldest:
		return "drop-oldest"
	case RejectWrite:
		return "reject-write"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Buffer is a fixed-capacity SPSC circular sample buffer.
type Buffer[S any] struct {
	data     []S
	capacity uint64
	policy   Policy

	writePos atomic.Uint64
	readPos  atomic.Uint64

	// mu guards slot data only where the two sides can overlap: the
	// DropOldest reclaim-and-overwrite path against the consumer's copy.
	// RejectWrite and non-overrun writes never take it.
	mu sync.Mutex

	overruns atomic.Uint64
	rejected atomic.Uint64
}

// New creates a buffer holding exactly capacity samples.
func New[S any](capacity int, policy Policy) (*Buffer[S], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("ring: capacity must be positive, got %d", capacity)
	}
	if policy != DropOldest && policy != RejectWrite {
		return nil, fmt.Errorf("ring: unknown policy %d", int(policy))
	}
	return &Buffer[S]{
		data:     make([]S, capacity),
		capacity: uint64(capacity),
		policy:   policy,
	}, nil
}

// Cap returns the buffer capacity in samples.
func (b *Buffer[S]) Cap() int {
	return int(b.capacity)
}

// OverrunPolicy returns the policy the buffer was created with.
func (b *Buffer[S]) OverrunPolicy() Policy {
	return b.policy
}

// Len returns the number of unread samples. The value is a snapshot and
// may be stale by the time it is used.
func (b *Buffer[S]) Len() int {
	r := b.readPos.Load()
	w := b.writePos.Load()
	n := w - r
	if n > b.capacity {
		n = b.capacity
	}
	return int(n)
}

// Free returns the remaining write space in samples.
func (b *Buffer[S]) Free() int {
	return int(b.capacity) - b.Len()
}

// Overruns returns the total number of samples discarded under DropOldest.
func (b *Buffer[S]) Overruns() uint64 {
	return b.overruns.Load()
}

// Rejected returns the total number of samples refused under RejectWrite.
func (b *Buffer[S]) Rejected() uint64 {
	return b.rejected.Load()
}

// Write appends src to the buffer and returns the number of samples
// accepted. Under DropOldest the whole block is always accepted; under
// RejectWrite samples that do not fit are discarded and counted.
//
// Write must only be called from the producer goroutine.
func (b *Buffer[S]) Write(src []S) int {
	n := uint64(len(src))
	if n == 0 {
		return 0
	}
	w := b.writePos.Load()

	if b.policy == RejectWrite {
		r := b.readPos.Load()
		free := b.capacity - (w - r)
		if n > free {
			b.rejected.Add(n - free)
			n = free
			if n == 0 {
				return 0
			}
		}
		b.copyIn(w, src[:n])
		b.writePos.Store(w + n)
		return int(n)
	}

	accepted := n
	if n > b.capacity {
		// Only the newest capacity samples can survive this write; the
		// leading samples are dropped before they are ever stored.
		skip := n - b.capacity
		b.overruns.Add(skip)
		src = src[skip:]
		n = b.capacity
	}
	if b.capacity-(w-b.readPos.Load()) >= n {
		// The destination slots are free, so they cannot overlap the
		// span a concurrent Read is copying.
		b.copyIn(w, src)
		b.writePos.Store(w + n)
		return int(accepted)
	}

	// Making room overwrites unread slots; hold mu for the whole
	// reclaim-and-store so the consumer never copies a slot mid-rewrite.
	b.mu.Lock()
	for {
		r := b.readPos.Load()
		free := b.capacity - (w - r)
		if free >= n {
			break
		}
		drop := n - free
		if b.readPos.CompareAndSwap(r, r+drop) {
			b.overruns.Add(drop)
			break
		}
		// Lost the race against the consumer advancing readPos.
	}
	b.copyIn(w, src)
	b.writePos.Store(w + n)
	b.mu.Unlock()
	return int(accepted)
}

// Read removes up to len(dst) samples in arrival order and returns the
// count actually copied. Returns 0 when the buffer is empty.
//
// Read must only be called from the consumer goroutine.
func (b *Buffer[S]) Read(dst []S) int {
	want := uint64(len(dst))
	if want == 0 {
		return 0
	}
	if b.policy == RejectWrite {
		r := b.readPos.Load()
		w := b.writePos.Load()
		avail := w - r
		if avail == 0 {
			return 0
		}
		n := min(want, avail)
		b.copyOut(dst[:n], r)
		b.readPos.Store(r + n)
		return int(n)
	}
	for {
		b.mu.Lock()
		r := b.readPos.Load()
		w := b.writePos.Load()
		avail := w - r
		if avail == 0 {
			b.mu.Unlock()
			return 0
		}
		n := min(want, avail)
		b.copyOut(dst[:n], r)
		b.mu.Unlock()
		// The producer may reclaim the copied span once mu is released;
		// commit only if the read cursor is still ours, else copy again.
		if b.readPos.CompareAndSwap(r, r+n) {
			return int(n)
		}
	}
}

// Peek copies up to len(dst) samples without consuming them and returns
// the count copied.
//
// Peek must only be called from the consumer goroutine.
func (b *Buffer[S]) Peek(dst []S) int {
	want := uint64(len(dst))
	if want == 0 {
		return 0
	}
	if b.policy == RejectWrite {
		r := b.readPos.Load()
		w := b.writePos.Load()
		avail := w - r
		if avail == 0 {
			return 0
		}
		n := min(want, avail)
		b.copyOut(dst[:n], r)
		return int(n)
	}
	for {
		b.mu.Lock()
		r := b.readPos.Load()
		w := b.writePos.Load()
		avail := w - r
		if avail == 0 {
			b.mu.Unlock()
			return 0
		}
		n := min(want, avail)
		b.copyOut(dst[:n], r)
		b.mu.Unlock()
		if b.readPos.Load() == r {
			return int(n)
		}
		// The peeked span was dropped by the producer; copy again.
	}
}

// Clear discards all unread samples. Counters are not reset.
//
// Clear must only be called from the consumer goroutine.
func (b *Buffer[S]) Clear() {
	b.readPos.Store(b.writePos.Load())
}

func (b *Buffer[S]) copyIn(w uint64, src []S) {
	idx := int(w % b.capacity)
	head := copy(b.data[idx:], src)
	copy(b.data, src[head:])
}

func (b *Buffer[S]) copyOut(dst []S, r uint64) {
	idx := int(r % b.capacity)
	head := copy(dst, b.data[idx:])
	copy(dst[head:], b.data[:len(dst)-head])
}
