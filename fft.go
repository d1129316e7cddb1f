package streamdsp

import (
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/fft"
)

// fftPlan is the contract both transform implementations satisfy.
type fftPlan[S Sample] interface {
	Forward(re, im []S) error
	Inverse(re, im []S) error
	Size() int
}

// FFT computes radix-2 transforms over samples of type S. Twiddle factors
// and bit-reversal tables are shared between all instances of the same
// size, so creating many transforms is cheap.
//
// Scaling differs by format family. Floating-point: Forward is the
// unscaled DFT, Inverse divides by N. Fixed-point: Forward scales by 1/N
// through per-stage halving so intermediates cannot overflow, and Inverse
// is unscaled; either way a Forward/Inverse pair reconstructs the input.
type FFT[S Sample] struct {
	plan fftPlan[S]
}

// NewFFT creates a transform of length n, which must be a power of two of
// at least 2.
func NewFFT[S Sample](n int) (*FFT[S], error) {
	plan, err := newFFTPlan[S](n)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return &FFT[S]{plan: plan}, nil
}

func newFFTPlan[S Sample](n int) (fftPlan[S], error) {
	var zero S
	var plan any
	var err error
	switch any(zero).(type) {
	case float32:
		plan, err = fft.NewFloat[float32](n)
	case float64:
		plan, err = fft.NewFloat[float64](n)
	case int16:
		plan, err = fft.NewFixed[int16](n)
	case int32:
		plan, err = fft.NewFixed[int32](n)
	default:
		panic("streamdsp: unsupported sample type")
	}
	if err != nil {
		return nil, err
	}
	p, ok := plan.(fftPlan[S])
	if !ok {
		panic("streamdsp: engine dispatch failed")
	}
	return p, nil
}

// Forward transforms the complex signal held in re and im, in place. Both
// slices must have length Size.
func (f *FFT[S]) Forward(re, im []S) error {
	if err := f.plan.Forward(re, im); err != nil {
		return fmt.Errorf("%w: %s", ErrBufferSize, err)
	}
	return nil
}

// Inverse applies the inverse transform in place. Both slices must have
// length Size.
func (f *FFT[S]) Inverse(re, im []S) error {
	if err := f.plan.Inverse(re, im); err != nil {
		return fmt.Errorf("%w: %s", ErrBufferSize, err)
	}
	return nil
}

// Size returns the transform length.
func (f *FFT[S]) Size() int {
	return f.plan.Size()
}

// Saturations returns the number of clamped outputs. Always zero for
// floating-point formats.
func (f *FFT[S]) Saturations() uint64 {
	if s, ok := f.plan.(saturating); ok {
		return s.Saturations()
	}
	return 0
}
