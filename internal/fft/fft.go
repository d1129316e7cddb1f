// Package fft implements radix-2 decimation-in-time fast Fourier
// transforms for floating-point and fixed-point sample formats.
//
// Twiddle factors and bit-reversal permutations are computed once per
// transform size and shared by every plan of that size through a
// package-level cache. The floating-point plans follow the usual
// convention of an unscaled forward transform and a 1/N inverse. The
// fixed-point plans instead halve after every forward stage, producing
// spectra scaled by 1/N that cannot overflow, and run the inverse without
// inter-stage scaling so a forward/inverse pair reconstructs the input.
package fft

import (
	"fmt"
	"math"
	"sync"

	"github.com/tphakala/go-streamdsp/internal/fixed"
	"github.com/tphakala/go-streamdsp/internal/mathutil"
)

// twiddleFracBits is the precision of quantized twiddle factors. Q30
// leaves headroom so a complex multiply of two full-scale operands fits
// int64.
const twiddleFracBits = 30

// minSize is the smallest supported transform length.
const minSize = 2

// table holds the precomputed constants for one transform size.
type table struct {
	cos, sin   []float64 // cos(2*pi*k/n), sin(2*pi*k/n) for k < n/2
	cosQ, sinQ []int64   // the same factors in Q30
	bitrev     []int
}

var (
	tableMu sync.Mutex
	tables  = make(map[int]*table)
)

// tableFor returns the shared constant table for size n, building it on
// first use.
func tableFor(n int) *table {
	tableMu.Lock()
	defer tableMu.Unlock()
	if t, ok := tables[n]; ok {
		return t
	}
	half := n / 2
	t := &table{
		cos:    make([]float64, half),
		sin:    make([]float64, half),
		cosQ:   make([]int64, half),
		sinQ:   make([]int64, half),
		bitrev: mathutil.BitReverseTable(n),
	}
	for k := 0; k < half; k++ {
		angle := 2 * math.Pi * float64(k) / float64(n)
		t.cos[k] = math.Cos(angle)
		t.sin[k] = math.Sin(angle)
		t.cosQ[k] = fixed.Quantize(t.cos[k], twiddleFracBits)
		t.sinQ[k] = fixed.Quantize(t.sin[k], twiddleFracBits)
	}
	tables[n] = t
	return t
}

// validateSize rejects lengths that are not powers of two of at least
// minSize.
func validateSize(n int) error {
	if n < minSize || !mathutil.IsPowerOfTwo(n) {
		return fmt.Errorf("fft: size must be a power of two >= %d, got %d", minSize, n)
	}
	return nil
}
