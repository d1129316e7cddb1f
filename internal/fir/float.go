package fir

import (
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// Float is a floating-point FIR engine. The delay line and accumulator are
// float64 regardless of the sample type, so float32 streams do not lose
// precision to intermediate rounding.
type Float[F simdops.Float] struct {
	hrev   []float64 // coefficients, reversed
	half   []float64 // leading half of hrev when symmetric
	delay  []float64
	lin    []float64 // delay line linearized oldest-first
	folded []float64 // paired taps for the symmetric path
	pos    int
	taps   int
	sym    bool
	ops    *simdops.Ops[float64]
}

// NewFloat creates a floating-point FIR engine from the impulse response.
func NewFloat[F simdops.Float](coeffs []float64) (*Float[F], error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("fir: at least one coefficient required")
	}
	taps := len(coeffs)
	f := &Float[F]{
		hrev:  reversed(coeffs),
		delay: make([]float64, taps),
		lin:   make([]float64, taps),
		pos:   0,
		taps:  taps,
		sym:   taps > 1 && isSymmetric(coeffs),
		ops:   simdops.Float64Ops(),
	}
	if f.sym {
		f.half = f.hrev[:taps/2]
		f.folded = make([]float64, taps/2)
	}
	return f, nil
}

// Taps returns the filter length.
func (f *Float[F]) Taps() int {
	return f.taps
}

// Symmetric reports whether the paired-tap optimization is active.
func (f *Float[F]) Symmetric() bool {
	return f.sym
}

// ProcessSample pushes one input sample and returns the filtered output.
func (f *Float[F]) ProcessSample(x F) F {
	f.delay[f.pos] = float64(x)
	f.pos++
	if f.pos == f.taps {
		f.pos = 0
	}
	// After the advance, delay[pos] is the oldest sample. Two forward
	// copies give the line in time order, matching the reversed
	// coefficients.
	n := copy(f.lin, f.delay[f.pos:])
	copy(f.lin[n:], f.delay[:f.pos])

	if f.sym {
		half := f.taps / 2
		for j := 0; j < half; j++ {
			f.folded[j] = f.lin[j] + f.lin[f.taps-1-j]
		}
		y := f.ops.DotProductUnsafe(f.half, f.folded)
		if f.taps%2 == 1 {
			y += f.hrev[half] * f.lin[half]
		}
		return F(y)
	}
	return F(f.ops.DotProductUnsafe(f.hrev, f.lin))
}

// ProcessBlock filters src into dst, which must be at least as long as
// src. dst and src may be the same slice.
func (f *Float[F]) ProcessBlock(dst, src []F) {
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line.
func (f *Float[F]) Reset() {
	clear(f.delay)
	f.pos = 0
}
