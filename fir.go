package streamdsp

import (
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/fir"
)

// firEngine is the contract both FIR implementations satisfy.
type firEngine[S Sample] interface {
	ProcessSample(S) S
	ProcessBlock(dst, src []S)
	Reset()
	Taps() int
	Symmetric() bool
}

// saturating is implemented by fixed-point engines that count clamped
// samples.
type saturating interface {
	Saturations() uint64
}

// FIRFilter is a finite-impulse-response filter over samples of type S.
// The engine is selected once at construction: floating-point formats run
// with float64 accumulation and SIMD dot products, fixed-point formats
// with a wide integer accumulator and saturating output.
type FIRFilter[S Sample] struct {
	eng firEngine[S]
}

// NewFIRFilter creates a filter from the impulse response coefficients.
// Fixed-point formats require coefficients within [-1.0, 1.0].
func NewFIRFilter[S Sample](coeffs []float64) (*FIRFilter[S], error) {
	eng, err := newFIREngine[S](coeffs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return &FIRFilter[S]{eng: eng}, nil
}

func newFIREngine[S Sample](coeffs []float64) (firEngine[S], error) {
	var zero S
	var eng any
	var err error
	switch any(zero).(type) {
	case float32:
		eng, err = fir.NewFloat[float32](coeffs)
	case float64:
		eng, err = fir.NewFloat[float64](coeffs)
	case int16:
		eng, err = fir.NewFixed[int16](coeffs)
	case int32:
		eng, err = fir.NewFixed[int32](coeffs)
	default:
		panic("streamdsp: unsupported sample type")
	}
	if err != nil {
		return nil, err
	}
	e, ok := eng.(firEngine[S])
	if !ok {
		panic("streamdsp: engine dispatch failed")
	}
	return e, nil
}

// ProcessSample pushes one input sample and returns the filtered output.
func (f *FIRFilter[S]) ProcessSample(x S) S {
	return f.eng.ProcessSample(x)
}

// ProcessBlock filters src into dst, which must be at least as long as
// src. dst and src may be the same slice.
func (f *FIRFilter[S]) ProcessBlock(dst, src []S) {
	f.eng.ProcessBlock(dst, src)
}

// Reset clears the delay line while keeping coefficients and counters.
func (f *FIRFilter[S]) Reset() {
	f.eng.Reset()
}

// Taps returns the filter length.
func (f *FIRFilter[S]) Taps() int {
	return f.eng.Taps()
}

// Symmetric reports whether the linear-phase paired-tap optimization is
// active.
func (f *FIRFilter[S]) Symmetric() bool {
	return f.eng.Symmetric()
}

// Saturations returns the number of clamped output samples. Always zero
// for floating-point formats.
func (f *FIRFilter[S]) Saturations() uint64 {
	if s, ok := f.eng.(saturating); ok {
		return s.Saturations()
	}
	return 0
}
