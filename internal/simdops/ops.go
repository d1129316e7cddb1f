// Package simdops provides SIMD-accelerated slice operations for the DSP
// engines.
//
// The engines accumulate in float64 regardless of the sample type, so only
// the float64 op table is instantiated. With Profile-Guided Optimization
// (Go 1.22+), function pointer calls in hot paths can be devirtualized and
// inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point sample types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
// Function pointers allow type-safe generic code while delegating
// to optimized type-specific implementations.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

var ops64 = Ops[float64]{
	DotProductUnsafe: f64.DotProductUnsafe,
	Sum:              f64.Sum,
	Scale:            f64.Scale,
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops[float64] {
	return &ops64
}
