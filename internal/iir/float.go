package iir

import (
	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// Float is a floating-point IIR engine in direct form II transposed. The
// state vector and all arithmetic are float64 regardless of sample type.
type Float[F simdops.Float] struct {
	b     []float64 // numerator, padded to order+1
	a     []float64 // feedback a[1:], padded to order
	state []float64
	order int
}

// NewFloat creates a floating-point IIR engine from transfer function
// coefficients. a[0] is the leading denominator coefficient; both vectors
// are normalized by it. The denominator must describe a stable filter.
func NewFloat[F simdops.Float](b, a []float64) (*Float[F], error) {
	bn, an, err := normalize(b, a)
	if err != nil {
		return nil, err
	}
	if err := CheckStability(an); err != nil {
		return nil, err
	}
	order := max(len(bn)-1, len(an))
	return &Float[F]{
		b:     pad(bn, order+1),
		a:     pad(an, order),
		state: make([]float64, max(order, 1)),
		order: order,
	}, nil
}

// Order returns the filter order.
func (f *Float[F]) Order() int {
	return f.order
}

// ProcessSample advances the recursion by one input sample.
func (f *Float[F]) ProcessSample(x F) F {
	xf := float64(x)
	if f.order == 0 {
		return F(f.b[0] * xf)
	}
	y := f.b[0]*xf + f.state[0]
	for i := 0; i < f.order-1; i++ {
		f.state[i] = f.b[i+1]*xf + f.state[i+1] - f.a[i]*y
	}
	f.state[f.order-1] = f.b[f.order]*xf - f.a[f.order-1]*y
	return F(y)
}

// ProcessBlock filters src into dst, which must be at least as long as
// src. dst and src may be the same slice.
func (f *Float[F]) ProcessBlock(dst, src []F) {
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the filter state.
func (f *Float[F]) Reset() {
	clear(f.state)
}
