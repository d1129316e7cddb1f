package fixed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Frequently used raw values in the tests.
const (
	q15Half    = 1 << 14 // 0.5 in Q15
	q15Quarter = 1 << 13 // 0.25 in Q15
	q31Half    = 1 << 30 // 0.5 in Q31
)

func TestTraitsOf(t *testing.T) {
	t.Run("q15", func(t *testing.T) {
		tr := TraitsOf[int16]()
		assert.Equal(t, uint(Q15FracBits), tr.FracBits)
		assert.Equal(t, int64(math.MinInt16), tr.Min)
		assert.Equal(t, int64(math.MaxInt16), tr.Max)
		assert.Equal(t, float64(32768), tr.Scale)
	})

	t.Run("q31", func(t *testing.T) {
		tr := TraitsOf[int32]()
		assert.Equal(t, uint(Q31FracBits), tr.FracBits)
		assert.Equal(t, int64(math.MinInt32), tr.Min)
		assert.Equal(t, int64(math.MaxInt32), tr.Max)
	})
}

func TestRoundShift(t *testing.T) {
	tests := []struct {
		name  string
		v     int64
		shift uint
		want  int64
	}{
		{"zero shift is identity", 12345, 0, 12345},
		{"exact division", 8, 2, 2},
		{"half rounds up", 6, 2, 2},
		{"below half rounds down", 5, 2, 1},
		{"above half rounds up", 7, 2, 2},
		{"negative exact", -8, 2, -2},
		{"negative half rounds away", -6, 2, -2},
		{"negative below half", -5, 2, -1},
		{"symmetric around zero", -7, 2, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundShift(tt.v, tt.shift))
		})
	}
}

func TestFromFloat(t *testing.T) {
	t.Run("q15 exact values", func(t *testing.T) {
		v, sat := FromFloat[int16](0.5)
		require.False(t, sat)
		assert.Equal(t, int16(q15Half), v)

		v, sat = FromFloat[int16](-0.25)
		require.False(t, sat)
		assert.Equal(t, int16(-q15Quarter), v)
	})

	t.Run("q15 saturates at full scale", func(t *testing.T) {
		v, sat := FromFloat[int16](1.0)
		assert.True(t, sat)
		assert.Equal(t, int16(math.MaxInt16), v)

		v, sat = FromFloat[int16](-1.0)
		assert.False(t, sat, "-1.0 is exactly representable")
		assert.Equal(t, int16(math.MinInt16), v)

		v, sat = FromFloat[int16](-1.5)
		assert.True(t, sat)
		assert.Equal(t, int16(math.MinInt16), v)
	})

	t.Run("q31 half scale", func(t *testing.T) {
		v, sat := FromFloat[int32](0.5)
		require.False(t, sat)
		assert.Equal(t, int32(q31Half), v)
	})
}

func TestToFloatRoundTrip(t *testing.T) {
	// Every representable value converts back exactly.
	values := []int16{math.MinInt16, -q15Half, -1, 0, 1, q15Quarter, math.MaxInt16}
	for _, v := range values {
		got, sat := FromFloat[int16](ToFloat(v))
		assert.False(t, sat)
		assert.Equal(t, v, got)
	}
}

func TestAddSaturates(t *testing.T) {
	t.Run("positive overflow clamps to max", func(t *testing.T) {
		v, sat := Add[int16](math.MaxInt16, 1)
		assert.True(t, sat)
		assert.Equal(t, int16(math.MaxInt16), v)
	})

	t.Run("negative overflow clamps to min", func(t *testing.T) {
		v, sat := Add[int16](math.MinInt16, -1)
		assert.True(t, sat)
		assert.Equal(t, int16(math.MinInt16), v)
	})

	t.Run("in-range sum is exact", func(t *testing.T) {
		v, sat := Add[int16](q15Half, q15Quarter)
		assert.False(t, sat)
		assert.Equal(t, int16(q15Half+q15Quarter), v)
	})

	t.Run("q31 overflow clamps", func(t *testing.T) {
		v, sat := Add[int32](math.MaxInt32, math.MaxInt32)
		assert.True(t, sat)
		assert.Equal(t, int32(math.MaxInt32), v)
	})
}

func TestMul(t *testing.T) {
	t.Run("half times half", func(t *testing.T) {
		v, sat := Mul[int16](q15Half, q15Half)
		assert.False(t, sat)
		assert.Equal(t, int16(q15Quarter), v)
	})

	t.Run("most negative squared saturates", func(t *testing.T) {
		// (-1.0)*(-1.0) = +1.0 is not representable; the product must
		// clamp to full scale instead of wrapping to -1.0.
		v, sat := Mul[int16](math.MinInt16, math.MinInt16)
		assert.True(t, sat)
		assert.Equal(t, int16(math.MaxInt16), v)

		v32, sat := Mul[int32](math.MinInt32, math.MinInt32)
		assert.True(t, sat)
		assert.Equal(t, int32(math.MaxInt32), v32)
	})

	t.Run("product rounds half away from zero", func(t *testing.T) {
		// 1 * 16384 = 16384 raw; shifted by 15 gives 0.5 ulp, which
		// rounds away from zero to 1.
		v, sat := Mul[int16](1, q15Half)
		assert.False(t, sat)
		assert.Equal(t, int16(1), v)

		v, sat = Mul[int16](-1, q15Half)
		assert.False(t, sat)
		assert.Equal(t, int16(-1), v)
	})
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, int64(q15Half), Quantize(0.5, Q15FracBits))
	assert.Equal(t, int64(-q15Half), Quantize(-0.5, Q15FracBits))
	// Q2.13 coefficient format used by recursive filters.
	assert.Equal(t, int64(3<<13), Quantize(3.0, 13))
	// Half an ulp rounds away from zero.
	assert.Equal(t, int64(1), Quantize(1.5/32768.0, Q15FracBits)-Quantize(0.5/32768.0, Q15FracBits))
}

func BenchmarkMulQ15(b *testing.B) {
	var acc int16
	for b.Loop() {
		acc, _ = Mul[int16](acc+3, q15Half)
	}
	_ = acc
}

func BenchmarkAddQ31(b *testing.B) {
	var acc int32
	for b.Loop() {
		acc, _ = Add[int32](acc, 1234567)
	}
	_ = acc
}
