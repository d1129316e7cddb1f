package fft

import (
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/fixed"
)

// q15GuardShift widens Q15 samples into int64 working precision so the
// per-stage rounding shifts discard sub-ulp noise instead of signal. Q31
// samples already occupy the available headroom: a Q30 twiddle times a
// shifted Q31 value must stay below 2^63.
const q15GuardShift = 14

// FixedPlan transforms Q15 or Q31 sample slices. The forward transform
// halves the signal after every butterfly stage with a rounding shift, so
// the output spectrum is the DFT scaled by 1/N and no intermediate can
// overflow. The inverse applies conjugated twiddles with no inter-stage
// scaling, which makes Forward followed by Inverse an identity up to
// rounding.
type FixedPlan[T fixed.Int] struct {
	n   int
	tbl *table
	re  []int64
	im  []int64

	preShift uint
	maxWork  int64
	sats     uint64
}

// NewFixed creates a fixed-point plan for transforms of length n.
func NewFixed[T fixed.Int](n int) (*FixedPlan[T], error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	tr := fixed.TraitsOf[T]()
	var pre uint
	if tr.FracBits == fixed.Q15FracBits {
		pre = q15GuardShift
	}
	return &FixedPlan[T]{
		n:   n,
		tbl: tableFor(n),
		re:  make([]int64, n),
		im:  make([]int64, n),
		// Working values in the inverse may exceed full scale for inputs
		// that are not forward-scaled spectra. Twice full scale is enough
		// headroom for legitimate spectra while keeping every twiddle
		// product within int64.
		maxWork:  ((tr.Max + 1) << (pre + 1)) - 1,
		preShift: pre,
	}, nil
}

func clampWork(v, bound int64) int64 {
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}

// Size returns the transform length.
func (p *FixedPlan[T]) Size() int {
	return p.n
}

// Saturations returns the number of clamped output samples so far.
func (p *FixedPlan[T]) Saturations() uint64 {
	return p.sats
}

// Forward computes the DFT scaled by 1/N of the complex signal in re and
// im, in place. Both slices must have length Size.
func (p *FixedPlan[T]) Forward(re, im []T) error {
	return p.transform(re, im, false)
}

// Inverse computes the unscaled inverse DFT in place. Applied to a
// spectrum produced by Forward it reconstructs the original signal.
func (p *FixedPlan[T]) Inverse(re, im []T) error {
	return p.transform(re, im, true)
}

func (p *FixedPlan[T]) transform(re, im []T, inverse bool) error {
	if len(re) != p.n || len(im) != p.n {
		return fmt.Errorf("fft: buffer length %d/%d, want %d", len(re), len(im), p.n)
	}

	for i, j := range p.tbl.bitrev {
		p.re[i] = int64(re[j]) << p.preShift
		p.im[i] = int64(im[j]) << p.preShift
	}

	for size := 2; size <= p.n; size <<= 1 {
		half := size >> 1
		step := p.n / size
		for start := 0; start < p.n; start += size {
			for k := 0; k < half; k++ {
				wRe := p.tbl.cosQ[k*step]
				wIm := -p.tbl.sinQ[k*step]
				if inverse {
					wIm = -wIm
				}
				i := start + k
				j := i + half
				tRe := fixed.RoundShift(p.re[j]*wRe-p.im[j]*wIm, twiddleFracBits)
				tIm := fixed.RoundShift(p.re[j]*wIm+p.im[j]*wRe, twiddleFracBits)
				if inverse {
					p.re[j] = clampWork(p.re[i]-tRe, p.maxWork)
					p.im[j] = clampWork(p.im[i]-tIm, p.maxWork)
					p.re[i] = clampWork(p.re[i]+tRe, p.maxWork)
					p.im[i] = clampWork(p.im[i]+tIm, p.maxWork)
				} else {
					// Halving every stage accumulates to the 1/N scale
					// and keeps each value within the input magnitude.
					p.re[j] = fixed.RoundShift(p.re[i]-tRe, 1)
					p.im[j] = fixed.RoundShift(p.im[i]-tIm, 1)
					p.re[i] = fixed.RoundShift(p.re[i]+tRe, 1)
					p.im[i] = fixed.RoundShift(p.im[i]+tIm, 1)
				}
			}
		}
	}

	for i := range re {
		vr, satR := fixed.Clamp[T](fixed.RoundShift(p.re[i], p.preShift))
		vi, satI := fixed.Clamp[T](fixed.RoundShift(p.im[i], p.preShift))
		if satR {
			p.sats++
		}
		if satI {
			p.sats++
		}
		re[i] = vr
		im[i] = vi
	}
	return nil
}
