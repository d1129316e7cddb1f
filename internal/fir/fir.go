// Package fir implements finite-impulse-response filter engines over a
// circular delay line.
//
// Two engines share the same structure: Float runs float32/float64 samples
// with float64 accumulation and SIMD dot products, Fixed runs Q15/Q31
// samples with a wide int64 accumulator and a saturating output stage.
// Both detect coefficient symmetry at construction and halve the multiply
// count for linear-phase filters.
package fir

// isSymmetric reports whether the impulse response is exactly symmetric,
// the signature of a linear-phase filter.
func isSymmetric(h []float64) bool {
	n := len(h)
	for i := 0; i < n/2; i++ {
		if h[i] != h[n-1-i] {
			return false
		}
	}
	return true
}

// reversed returns a copy of h in reverse order. The engines store
// coefficients reversed so the delay line can be linearized oldest-first
// with two forward copies.
func reversed(h []float64) []float64 {
	r := make([]float64, len(h))
	for i, v := range h {
		r[len(h)-1-i] = v
	}
	return r
}
