package fft

import (
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// FloatPlan transforms float32 or float64 sample slices. All butterflies
// run in float64; float32 data is widened on load and narrowed on store.
type FloatPlan[F simdops.Float] struct {
	n   int
	tbl *table
	re  []float64
	im  []float64
}

// NewFloat creates a floating-point plan for transforms of length n.
func NewFloat[F simdops.Float](n int) (*FloatPlan[F], error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	return &FloatPlan[F]{
		n:   n,
		tbl: tableFor(n),
		re:  make([]float64, n),
		im:  make([]float64, n),
	}, nil
}

// Size returns the transform length.
func (p *FloatPlan[F]) Size() int {
	return p.n
}

// Forward computes the unscaled DFT of the complex signal held in re and
// im, in place. Both slices must have length Size.
func (p *FloatPlan[F]) Forward(re, im []F) error {
	return p.transform(re, im, false)
}

// Inverse computes the inverse DFT scaled by 1/N, in place, so that
// Forward followed by Inverse reproduces the input.
func (p *FloatPlan[F]) Inverse(re, im []F) error {
	return p.transform(re, im, true)
}

func (p *FloatPlan[F]) transform(re, im []F, inverse bool) error {
	if len(re) != p.n || len(im) != p.n {
		return fmt.Errorf("fft: buffer length %d/%d, want %d", len(re), len(im), p.n)
	}

	for i, j := range p.tbl.bitrev {
		p.re[i] = float64(re[j])
		p.im[i] = float64(im[j])
	}

	for size := 2; size <= p.n; size <<= 1 {
		half := size >> 1
		step := p.n / size
		for start := 0; start < p.n; start += size {
			for k := 0; k < half; k++ {
				wRe := p.tbl.cos[k*step]
				wIm := -p.tbl.sin[k*step]
				if inverse {
					wIm = -wIm
				}
				i := start + k
				j := i + half
				tRe := p.re[j]*wRe - p.im[j]*wIm
				tIm := p.re[j]*wIm + p.im[j]*wRe
				p.re[j] = p.re[i] - tRe
				p.im[j] = p.im[i] - tIm
				p.re[i] += tRe
				p.im[i] += tIm
			}
		}
	}

	if inverse {
		inv := 1 / float64(p.n)
		ops := simdops.Float64Ops()
		ops.Scale(p.re, p.re, inv)
		ops.Scale(p.im, p.im, inv)
	}

	for i := range re {
		re[i] = F(p.re[i])
		im[i] = F(p.im[i])
	}
	return nil
}
