package streamdsp

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/iir"
)

// iirEngine is the contract both IIR implementations satisfy.
type iirEngine[S Sample] interface {
	ProcessSample(S) S
	ProcessBlock(dst, src []S)
	Reset()
	Order() int
}

// IIRFilter is an infinite-impulse-response filter in direct form II
// transposed over samples of type S. Construction validates stability of
// the denominator; an unstable recursion cannot be instantiated.
type IIRFilter[S Sample] struct {
	eng iirEngine[S]
}

// NewIIRFilter creates a filter from transfer function coefficients. b is
// the numerator, a the denominator including its leading coefficient;
// both are normalized by a[0]. Fixed-point formats additionally require
// every normalized coefficient magnitude below 4.0.
func NewIIRFilter[S Sample](b, a []float64) (*IIRFilter[S], error) {
	eng, err := newIIREngine[S](b, a)
	if err != nil {
		if errors.Is(err, iir.ErrUnstable) {
			return nil, fmt.Errorf("%w: %s", ErrUnstableFilter, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return &IIRFilter[S]{eng: eng}, nil
}

func newIIREngine[S Sample](b, a []float64) (iirEngine[S], error) {
	var zero S
	var eng any
	var err error
	switch any(zero).(type) {
	case float32:
		eng, err = iir.NewFloat[float32](b, a)
	case float64:
		eng, err = iir.NewFloat[float64](b, a)
	case int16:
		eng, err = iir.NewFixed[int16](b, a)
	case int32:
		eng, err = iir.NewFixed[int32](b, a)
	default:
		panic("streamdsp: unsupported sample type")
	}
	if err != nil {
		return nil, err
	}
	e, ok := eng.(iirEngine[S])
	if !ok {
		panic("streamdsp: engine dispatch failed")
	}
	return e, nil
}

// ProcessSample advances the recursion by one input sample.
func (f *IIRFilter[S]) ProcessSample(x S) S {
	return f.eng.ProcessSample(x)
}

// ProcessBlock filters src into dst, which must be at least as long as
// src. dst and src may be the same slice.
func (f *IIRFilter[S]) ProcessBlock(dst, src []S) {
	f.eng.ProcessBlock(dst, src)
}

// Reset clears the filter state.
func (f *IIRFilter[S]) Reset() {
	f.eng.Reset()
}

// Order returns the filter order.
func (f *IIRFilter[S]) Order() int {
	return f.eng.Order()
}

// Saturations returns the number of clamped state updates and outputs.
// Always zero for floating-point formats.
func (f *IIRFilter[S]) Saturations() uint64 {
	if s, ok := f.eng.(saturating); ok {
		return s.Saturations()
	}
	return 0
}
