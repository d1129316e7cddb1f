package fir

import (
	"fmt"
	"math"

	"github.com/tphakala/go-streamdsp/internal/fixed"
)

// Fixed is a fixed-point FIR engine for Q15 and Q31 samples. Products are
// accumulated in a wide int64 register; only the final output is
// renormalized and saturated, and every saturation event is counted.
//
// For Q31 each product is renormalized before accumulation, since a sum of
// raw 62-bit products would overflow int64. Q15 products are accumulated at
// full precision and shifted once at the end.
type Fixed[T fixed.Int] struct {
	crev  []int64 // quantized coefficients, reversed
	delay []T
	lin   []int64
	pos   int
	taps  int
	sym   bool

	prodShift uint // applied per product
	finShift  uint // applied once to the accumulator
	sats      uint64
}

// maxCoeffMagnitude bounds FIR coefficients to the representable range of
// the sample format.
const maxCoeffMagnitude = 1.0

// NewFixed creates a fixed-point FIR engine. Coefficients must lie within
// [-1.0, 1.0]; they are quantized to the fractional precision of T.
func NewFixed[T fixed.Int](coeffs []float64) (*Fixed[T], error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("fir: at least one coefficient required")
	}
	tr := fixed.TraitsOf[T]()
	crev := make([]int64, len(coeffs))
	for i, c := range coeffs {
		if math.Abs(c) > maxCoeffMagnitude {
			return nil, fmt.Errorf("fir: coefficient %d out of range: %g", i, c)
		}
		q := fixed.Quantize(c, tr.FracBits)
		// Keep magnitudes strictly below 2^FracBits so pair sums times a
		// coefficient cannot overflow int64 on the symmetric path.
		if q > tr.Max {
			q = tr.Max
		}
		if q < -tr.Max {
			q = -tr.Max
		}
		crev[len(coeffs)-1-i] = q
	}

	f := &Fixed[T]{
		crev:  crev,
		delay: make([]T, len(coeffs)),
		lin:   make([]int64, len(coeffs)),
		taps:  len(coeffs),
		sym:   len(coeffs) > 1 && isSymmetric(coeffs),
	}
	if tr.FracBits == fixed.Q31FracBits {
		f.prodShift = tr.FracBits
		f.finShift = 0
	} else {
		f.prodShift = 0
		f.finShift = tr.FracBits
	}
	return f, nil
}

// Taps returns the filter length.
func (f *Fixed[T]) Taps() int {
	return f.taps
}

// Symmetric reports whether the paired-tap optimization is active.
func (f *Fixed[T]) Symmetric() bool {
	return f.sym
}

// Saturations returns the number of output samples clamped so far.
func (f *Fixed[T]) Saturations() uint64 {
	return f.sats
}

// ProcessSample pushes one input sample and returns the filtered output.
func (f *Fixed[T]) ProcessSample(x T) T {
	f.delay[f.pos] = x
	f.pos++
	if f.pos == f.taps {
		f.pos = 0
	}
	j := 0
	for _, v := range f.delay[f.pos:] {
		f.lin[j] = int64(v)
		j++
	}
	for _, v := range f.delay[:f.pos] {
		f.lin[j] = int64(v)
		j++
	}

	var acc int64
	if f.sym {
		half := f.taps / 2
		for k := 0; k < half; k++ {
			pair := f.lin[k] + f.lin[f.taps-1-k]
			acc += fixed.RoundShift(f.crev[k]*pair, f.prodShift)
		}
		if f.taps%2 == 1 {
			acc += fixed.RoundShift(f.crev[half]*f.lin[half], f.prodShift)
		}
	} else {
		for k, c := range f.crev {
			acc += fixed.RoundShift(c*f.lin[k], f.prodShift)
		}
	}

	y, sat := fixed.Clamp[T](fixed.RoundShift(acc, f.finShift))
	if sat {
		f.sats++
	}
	return y
}

// ProcessBlock filters src into dst, which must be at least as long as
// src. dst and src may be the same slice.
func (f *Fixed[T]) ProcessBlock(dst, src []T) {
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line. The saturation counter is preserved.
func (f *Fixed[T]) Reset() {
	clear(f.delay)
	f.pos = 0
}
