package fft

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-streamdsp/internal/fixed"
)

const (
	f64Tolerance = 1e-9
	q15Step      = 1.0 / 32768.0
	q31Step      = 1.0 / 2147483648.0
)

func TestValidateSize(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 3, 6, 100} {
		_, err := NewFloat[float64](n)
		assert.Error(t, err, "n=%d", n)
		_, errFixed := NewFixed[int16](n)
		assert.Error(t, errFixed, "n=%d", n)
	}
	for _, n := range []int{2, 4, 8, 1024} {
		_, err := NewFloat[float64](n)
		assert.NoError(t, err, "n=%d", n)
	}
}

func TestBufferLengthChecked(t *testing.T) {
	p, err := NewFloat[float64](8)
	require.NoError(t, err)
	assert.Error(t, p.Forward(make([]float64, 4), make([]float64, 8)))
	assert.Error(t, p.Inverse(make([]float64, 8), make([]float64, 7)))
}

// TestForwardRectangularPulse checks the transform of a length-4 pulse in
// an 8-point frame against the closed-form Dirichlet magnitudes.
func TestForwardRectangularPulse(t *testing.T) {
	p, err := NewFloat[float64](8)
	require.NoError(t, err)

	re := []float64{1, 1, 1, 1, 0, 0, 0, 0}
	im := make([]float64, 8)
	require.NoError(t, p.Forward(re, im))

	// |X_k| = |sin(pi k / 2) / sin(pi k / 8)| for k > 0, X_0 = 4.
	wantMag := make([]float64, 8)
	wantMag[0] = 4
	for k := 1; k < 8; k++ {
		wantMag[k] = math.Abs(math.Sin(math.Pi*float64(k)/2) / math.Sin(math.Pi*float64(k)/8))
	}
	for k := 0; k < 8; k++ {
		mag := math.Hypot(re[k], im[k])
		assert.InDelta(t, wantMag[k], mag, f64Tolerance, "bin %d", k)
	}
	// The DC bin of a real signal has no imaginary part.
	assert.InDelta(t, 0.0, im[0], f64Tolerance)
}

func TestForwardMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, n := range []int{4, 16, 128, 1024} {
		p, err := NewFloat[float64](n)
		require.NoError(t, err)

		re := make([]float64, n)
		im := make([]float64, n)
		data := make([]complex128, n)
		for i := range re {
			re[i] = rng.Float64()*2 - 1
			im[i] = rng.Float64()*2 - 1
			data[i] = complex(re[i], im[i])
		}

		oracle := fourier.NewCmplxFFT(n)
		want := oracle.Coefficients(nil, data)

		require.NoError(t, p.Forward(re, im))
		for k := range want {
			require.InDelta(t, real(want[k]), re[k], 1e-8, "n=%d re bin %d", n, k)
			require.InDelta(t, imag(want[k]), im[k], 1e-8, "n=%d im bin %d", n, k)
		}
	}
}

func TestFloatRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, n := range []int{2, 8, 256, 4096} {
		p, err := NewFloat[float64](n)
		require.NoError(t, err)

		re := make([]float64, n)
		im := make([]float64, n)
		origRe := make([]float64, n)
		origIm := make([]float64, n)
		for i := range re {
			re[i] = rng.Float64()*2 - 1
			im[i] = rng.Float64()*2 - 1
		}
		copy(origRe, re)
		copy(origIm, im)

		require.NoError(t, p.Forward(re, im))
		require.NoError(t, p.Inverse(re, im))
		for i := range re {
			require.InDelta(t, origRe[i], re[i], f64Tolerance, "n=%d sample %d", n, i)
			require.InDelta(t, origIm[i], im[i], f64Tolerance, "n=%d sample %d", n, i)
		}
	}
}

func TestFloat32Plan(t *testing.T) {
	p, err := NewFloat[float32](8)
	require.NoError(t, err)

	re := []float32{1, 1, 1, 1, 0, 0, 0, 0}
	im := make([]float32, 8)
	require.NoError(t, p.Forward(re, im))
	assert.InDelta(t, 4.0, float64(re[0]), 1e-5)
}

func TestInverseOfFlatSpectrumIsImpulse(t *testing.T) {
	const n = 16
	p, err := NewFloat[float64](n)
	require.NoError(t, err)

	re := make([]float64, n)
	im := make([]float64, n)
	for i := range re {
		re[i] = 1
	}
	require.NoError(t, p.Inverse(re, im))

	assert.InDelta(t, 1.0, re[0], f64Tolerance)
	for i := 1; i < n; i++ {
		assert.InDelta(t, 0.0, re[i], f64Tolerance, "sample %d", i)
		assert.InDelta(t, 0.0, im[i], f64Tolerance, "sample %d", i)
	}
}

// TestFixedForwardScaling verifies the 1/N convention of the fixed-point
// forward transform on the rectangular pulse.
func TestFixedForwardScaling(t *testing.T) {
	p, err := NewFixed[int16](8)
	require.NoError(t, err)

	half, _ := fixed.FromFloat[int16](0.5)
	re := []int16{half, half, half, half, 0, 0, 0, 0}
	im := make([]int16, 8)
	require.NoError(t, p.Forward(re, im))

	// DC bin: 4 * 0.5 / 8 = 0.25.
	assert.InDelta(t, 0.25, fixed.ToFloat(re[0]), 2*q15Step)
	assert.InDelta(t, 0.0, fixed.ToFloat(im[0]), 2*q15Step)
	// Even bins beyond DC cancel exactly.
	assert.InDelta(t, 0.0, fixed.ToFloat(re[2]), 2*q15Step)
	assert.InDelta(t, 0.0, fixed.ToFloat(re[4]), 2*q15Step)
	assert.Equal(t, uint64(0), p.Saturations())
}

func TestFixedImpulseRoundTrip(t *testing.T) {
	const n = 8
	p, err := NewFixed[int16](n)
	require.NoError(t, err)

	half, _ := fixed.FromFloat[int16](0.5)
	re := make([]int16, n)
	im := make([]int16, n)
	re[0] = half

	require.NoError(t, p.Forward(re, im))
	// An impulse transforms to a flat spectrum of 0.5/8.
	for k := range re {
		assert.InDelta(t, 0.0625, fixed.ToFloat(re[k]), q15Step, "bin %d", k)
	}

	require.NoError(t, p.Inverse(re, im))
	assert.InDelta(t, 0.5, fixed.ToFloat(re[0]), q15Step)
	for i := 1; i < n; i++ {
		assert.InDelta(t, 0.0, fixed.ToFloat(re[i]), q15Step, "sample %d", i)
	}
}

// TestFixedRoundTripError bounds reconstruction error on random signals.
// The spectrum is stored at sample precision between the transforms, so
// the error budget grows with N: each of the N bins contributes up to
// half an ulp of quantization noise to every reconstructed sample.
func TestFixedRoundTripError(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	t.Run("q15", func(t *testing.T) {
		for _, n := range []int{8, 64, 256} {
			p, err := NewFixed[int16](n)
			require.NoError(t, err)

			re := make([]int16, n)
			im := make([]int16, n)
			orig := make([]int16, n)
			for i := range re {
				re[i], _ = fixed.FromFloat[int16](0.9 * (rng.Float64()*2 - 1))
			}
			copy(orig, re)

			require.NoError(t, p.Forward(re, im))
			require.NoError(t, p.Inverse(re, im))

			tol := 0.75 * float64(n) * q15Step
			for i := range re {
				require.InDelta(t, fixed.ToFloat(orig[i]), fixed.ToFloat(re[i]), tol,
					"n=%d sample %d", n, i)
			}
		}
	})

	t.Run("q31", func(t *testing.T) {
		const n = 64
		p, err := NewFixed[int32](n)
		require.NoError(t, err)

		re := make([]int32, n)
		im := make([]int32, n)
		orig := make([]int32, n)
		for i := range re {
			re[i], _ = fixed.FromFloat[int32](0.9 * (rng.Float64()*2 - 1))
		}
		copy(orig, re)

		require.NoError(t, p.Forward(re, im))
		require.NoError(t, p.Inverse(re, im))

		// Q30 twiddle quantization adds roughly an ulp per stage on top
		// of the spectrum quantization.
		tol := float64(n) * 16 * q31Step
		for i := range re {
			require.InDelta(t, fixed.ToFloat(orig[i]), fixed.ToFloat(re[i]), tol, "sample %d", i)
		}
	})
}

// TestFixedForwardNeverWraps drives the forward transform with full-scale
// input; per-stage scaling must keep every intermediate in range without
// clamping.
func TestFixedForwardNeverWraps(t *testing.T) {
	const n = 256
	p, err := NewFixed[int16](n)
	require.NoError(t, err)

	re := make([]int16, n)
	im := make([]int16, n)
	for i := range re {
		re[i] = math.MaxInt16
		im[i] = math.MinInt16
	}
	require.NoError(t, p.Forward(re, im))
	assert.Equal(t, uint64(0), p.Saturations())
	// DC bin holds the mean of the input.
	assert.InDelta(t, 1.0, fixed.ToFloat(re[0]), 4*q15Step)
}

func TestFixedMatchesFloatReference(t *testing.T) {
	const n = 32
	rng := rand.New(rand.NewSource(3))

	p, err := NewFixed[int16](n)
	require.NoError(t, err)

	reF := make([]float64, n)
	reQ := make([]int16, n)
	imQ := make([]int16, n)
	for i := range reF {
		reF[i] = 0.8 * (rng.Float64()*2 - 1)
		reQ[i], _ = fixed.FromFloat[int16](reF[i])
	}

	oracle := fourier.NewCmplxFFT(n)
	data := make([]complex128, n)
	for i := range data {
		data[i] = complex(reF[i], 0)
	}
	want := oracle.Coefficients(nil, data)

	require.NoError(t, p.Forward(reQ, imQ))
	for k := range want {
		// The fixed transform carries the 1/N scale.
		wantRe := real(want[k]) / n
		wantIm := imag(want[k]) / n
		require.InDelta(t, wantRe, fixed.ToFloat(reQ[k]), 4*q15Step, "re bin %d", k)
		require.InDelta(t, wantIm, fixed.ToFloat(imQ[k]), 4*q15Step, "im bin %d", k)
	}
}

func TestTwiddleTablesShared(t *testing.T) {
	a := tableFor(64)
	b := tableFor(64)
	assert.Same(t, a, b, "tables for equal sizes must be shared")

	c := tableFor(128)
	assert.NotSame(t, a, c)
}

func TestTwiddleTableValues(t *testing.T) {
	tbl := tableFor(8)
	require.Len(t, tbl.cos, 4)
	for k := 0; k < 4; k++ {
		w := cmplx.Exp(complex(0, 2*math.Pi*float64(k)/8))
		assert.InDelta(t, real(w), tbl.cos[k], 1e-12, "k=%d", k)
		assert.InDelta(t, imag(w), tbl.sin[k], 1e-12, "k=%d", k)
	}
}

func BenchmarkFloat64Forward1024(b *testing.B) {
	p, err := NewFloat[float64](1024)
	if err != nil {
		b.Fatal(err)
	}
	re := make([]float64, 1024)
	im := make([]float64, 1024)
	for i := range re {
		re[i] = math.Sin(float64(i) * 0.1)
	}
	for b.Loop() {
		if err := p.Forward(re, im); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFixedQ15Forward1024(b *testing.B) {
	p, err := NewFixed[int16](1024)
	if err != nil {
		b.Fatal(err)
	}
	re := make([]int16, 1024)
	im := make([]int16, 1024)
	for i := range re {
		re[i] = int16(i * 31)
	}
	for b.Loop() {
		if err := p.Forward(re, im); err != nil {
			b.Fatal(err)
		}
	}
}
