package iir

import (
	"fmt"
	"math"

	"github.com/tphakala/go-streamdsp/internal/fixed"
)

// Guard bits reserve integer headroom for coefficients up to magnitude 4,
// which covers the denominators of common biquad designs. Q31 keeps one
// extra bit so the three-term state update cannot overflow int64.
const (
	q15CoeffFracBits = 13 // Q2.13
	q31CoeffFracBits = 28 // Q3.28

	maxFixedCoeff = 4.0
)

// Fixed is a fixed-point IIR engine in direct form II transposed for Q15
// and Q31 samples. Each state line is accumulated in int64, renormalized
// with a rounding shift, and saturated back to sample precision; every
// clamp is counted.
type Fixed[T fixed.Int] struct {
	bq    []int64 // quantized numerator, padded to order+1
	aq    []int64 // quantized feedback a[1:], padded to order
	state []T
	order int

	coeffFrac uint
	sats      uint64
}

// NewFixed creates a fixed-point IIR engine. Coefficients are normalized
// by a[0], checked for stability, and quantized with integer guard bits;
// any coefficient of magnitude 4.0 or more is rejected.
func NewFixed[T fixed.Int](b, a []float64) (*Fixed[T], error) {
	bn, an, err := normalize(b, a)
	if err != nil {
		return nil, err
	}
	if err := CheckStability(an); err != nil {
		return nil, err
	}
	for i, c := range bn {
		if math.Abs(c) >= maxFixedCoeff {
			return nil, fmt.Errorf("iir: numerator coefficient %d exceeds fixed-point range: %g", i, c)
		}
	}
	for i, c := range an {
		if math.Abs(c) >= maxFixedCoeff {
			return nil, fmt.Errorf("iir: denominator coefficient %d exceeds fixed-point range: %g", i+1, c)
		}
	}

	coeffFrac := uint(q15CoeffFracBits)
	if fixed.TraitsOf[T]().FracBits == fixed.Q31FracBits {
		coeffFrac = q31CoeffFracBits
	}

	order := max(len(bn)-1, len(an))
	f := &Fixed[T]{
		bq:        make([]int64, order+1),
		aq:        make([]int64, order),
		state:     make([]T, max(order, 1)),
		order:     order,
		coeffFrac: coeffFrac,
	}
	for i, c := range bn {
		f.bq[i] = fixed.Quantize(c, coeffFrac)
	}
	for i, c := range an {
		f.aq[i] = fixed.Quantize(c, coeffFrac)
	}
	return f, nil
}

// Order returns the filter order.
func (f *Fixed[T]) Order() int {
	return f.order
}

// Saturations returns the number of clamped outputs and state updates.
func (f *Fixed[T]) Saturations() uint64 {
	return f.sats
}

// ProcessSample advances the recursion by one input sample.
func (f *Fixed[T]) ProcessSample(x T) T {
	x64 := int64(x)
	if f.order == 0 {
		y, sat := fixed.Clamp[T](fixed.RoundShift(f.bq[0]*x64, f.coeffFrac))
		if sat {
			f.sats++
		}
		return y
	}

	acc := f.bq[0]*x64 + (int64(f.state[0]) << f.coeffFrac)
	y, sat := fixed.Clamp[T](fixed.RoundShift(acc, f.coeffFrac))
	if sat {
		f.sats++
	}
	y64 := int64(y)

	for i := 0; i < f.order-1; i++ {
		acc = f.bq[i+1]*x64 + (int64(f.state[i+1]) << f.coeffFrac) - f.aq[i]*y64
		s, sat := fixed.Clamp[T](fixed.RoundShift(acc, f.coeffFrac))
		if sat {
			f.sats++
		}
		f.state[i] = s
	}

	acc = f.bq[f.order]*x64 - f.aq[f.order-1]*y64
	s, sat := fixed.Clamp[T](fixed.RoundShift(acc, f.coeffFrac))
	if sat {
		f.sats++
	}
	f.state[f.order-1] = s
	return y
}

// ProcessBlock filters src into dst, which must be at least as long as
// src. dst and src may be the same slice.
func (f *Fixed[T]) ProcessBlock(dst, src []T) {
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the filter state. The saturation counter is preserved.
func (f *Fixed[T]) Reset() {
	clear(f.state)
}
