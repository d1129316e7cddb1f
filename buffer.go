package streamdsp

import (
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/ring"
)

// OverrunPolicy selects how a SampleBuffer behaves when a write does not
// fit.
type OverrunPolicy int

const (
	// DropOldest discards the oldest unread samples so the whole write
	// always succeeds. Suited to live capture, where fresh samples matter
	// more than old ones.
	DropOldest OverrunPolicy = iota

	// RejectWrite stores what fits and discards the rest of the incoming
	// block, preserving already buffered samples.
	RejectWrite
)

// String returns the policy name.
func (p OverrunPolicy) String() string {
	switch p {
	case DropOldest:
		return "drop-oldest"
	case RejectWrite:
		return "reject-write"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// SampleBuffer is a fixed-capacity circular buffer connecting one
// producer goroutine to one consumer goroutine; callers need no
// synchronization of their own. Capacity is honored exactly; it is not
// rounded to a power of two.
type SampleBuffer[S Sample] struct {
	rb *ring.Buffer[S]
}

// NewSampleBuffer creates a buffer holding capacity samples.
func NewSampleBuffer[S Sample](capacity int, policy OverrunPolicy) (*SampleBuffer[S], error) {
	var rp ring.Policy
	switch policy {
	case DropOldest:
		rp = ring.DropOldest
	case RejectWrite:
		rp = ring.RejectWrite
	default:
		return nil, fmt.Errorf("%w: unknown overrun policy %d", ErrInvalidConfig, int(policy))
	}
	rb, err := ring.New[S](capacity, rp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return &SampleBuffer[S]{rb: rb}, nil
}

// Write appends src and returns the number of samples accepted. Only the
// producer goroutine may call Write.
func (b *SampleBuffer[S]) Write(src []S) int {
	return b.rb.Write(src)
}

// Read removes up to len(dst) samples in arrival order and returns the
// count copied. Only the consumer goroutine may call Read.
func (b *SampleBuffer[S]) Read(dst []S) int {
	return b.rb.Read(dst)
}

// Peek copies up to len(dst) samples without consuming them. Only the
// consumer goroutine may call Peek.
func (b *SampleBuffer[S]) Peek(dst []S) int {
	return b.rb.Peek(dst)
}

// Len returns the number of unread samples.
func (b *SampleBuffer[S]) Len() int {
	return b.rb.Len()
}

// Free returns the remaining write space in samples.
func (b *SampleBuffer[S]) Free() int {
	return b.rb.Free()
}

// Cap returns the buffer capacity.
func (b *SampleBuffer[S]) Cap() int {
	return b.rb.Cap()
}

// Clear discards all unread samples. Only the consumer goroutine may call
// Clear.
func (b *SampleBuffer[S]) Clear() {
	b.rb.Clear()
}

// Overruns returns the total number of samples discarded under
// DropOldest.
func (b *SampleBuffer[S]) Overruns() uint64 {
	return b.rb.Overruns()
}

// Rejected returns the total number of samples refused under RejectWrite.
func (b *SampleBuffer[S]) Rejected() uint64 {
	return b.rb.Rejected()
}
