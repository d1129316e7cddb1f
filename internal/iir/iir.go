// Package iir implements infinite-impulse-response filter engines in
// direct form II transposed.
//
// Filters are validated at construction: the denominator polynomial is
// checked for stability by computing the eigenvalues of its companion
// matrix, so an unstable recursion can never be instantiated.
package iir

import (
	"fmt"
	"math"
)

// normalize divides both coefficient vectors by a[0] and returns the
// numerator together with the feedback coefficients a[1:].
func normalize(b, a []float64) ([]float64, []float64, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("iir: numerator must not be empty")
	}
	if len(a) == 0 {
		return nil, nil, fmt.Errorf("iir: denominator must not be empty")
	}
	a0 := a[0]
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return nil, nil, fmt.Errorf("iir: leading denominator coefficient must be finite and nonzero, got %g", a0)
	}
	bn := make([]float64, len(b))
	for i, v := range b {
		bn[i] = v / a0
	}
	an := make([]float64, len(a)-1)
	for i, v := range a[1:] {
		an[i] = v / a0
	}
	return bn, an, nil
}

// pad returns s extended with zeros to length n.
func pad(s []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, s)
	return out
}
