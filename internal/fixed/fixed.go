// Package fixed implements saturating Q15 and Q31 fixed-point arithmetic.
//
// Q15 maps int16 to [-1.0, 1.0) with 15 fractional bits; Q31 maps int32 to
// the same interval with 31 fractional bits. All operations saturate on
// overflow rather than wrapping, and every result reports whether saturation
// occurred so callers can maintain diagnostic counters.
//
// Intermediate arithmetic is carried out in int64, which holds the full
// double-width product of two Q31 values without overflow.
package fixed

import "math"

// Int is the type constraint for supported fixed-point sample types.
type Int interface {
	~int16 | ~int32
}

// Fractional bit counts for the supported formats.
const (
	Q15FracBits = 15
	Q31FracBits = 31
)

// Traits describes the numeric properties of a fixed-point format.
// Engines resolve Traits once at construction and reuse the struct in
// hot paths.
type Traits struct {
	// FracBits is the number of fractional bits (15 or 31).
	FracBits uint

	// Min and Max bound the representable range in raw integer units.
	Min, Max int64

	// Scale is the value of one integer unit step, i.e. 2^FracBits
	// samples per unit. ToFloat divides by Scale.
	Scale float64
}

var (
	q15Traits = Traits{
		FracBits: Q15FracBits,
		Min:      math.MinInt16,
		Max:      math.MaxInt16,
		Scale:    float64(int64(1) << Q15FracBits),
	}
	q31Traits = Traits{
		FracBits: Q31FracBits,
		Min:      math.MinInt32,
		Max:      math.MaxInt32,
		Scale:    float64(int64(1) << Q31FracBits),
	}
)

// TraitsOf returns the Traits for sample type T. The type switch runs once
// at the call site, never per sample.
func TraitsOf[T Int]() Traits {
	var zero T
	switch any(zero).(type) {
	case int16:
		return q15Traits
	case int32:
		return q31Traits
	default:
		panic("fixed: unsupported sample type")
	}
}

// RoundShift arithmetically shifts v right by s bits, rounding half away
// from zero. A shift of zero returns v unchanged.
func RoundShift(v int64, s uint) int64 {
	if s == 0 {
		return v
	}
	half := int64(1) << (s - 1)
	if v >= 0 {
		return (v + half) >> s
	}
	return -((-v + half) >> s)
}

// Clamp saturates a raw int64 value to the representable range of T.
// The second return value reports whether clamping occurred.
func Clamp[T Int](v int64) (T, bool) {
	tr := TraitsOf[T]()
	if v > tr.Max {
		return T(tr.Max), true
	}
	if v < tr.Min {
		return T(tr.Min), true
	}
	return T(v), false
}

// FromFloat converts a real value in units of full scale to format T,
// rounding half away from zero and saturating out-of-range inputs.
func FromFloat[T Int](x float64) (T, bool) {
	tr := TraitsOf[T]()
	scaled := math.Round(x * tr.Scale)
	if scaled > float64(tr.Max) {
		return T(tr.Max), true
	}
	if scaled < float64(tr.Min) {
		return T(tr.Min), true
	}
	return T(scaled), false
}

// ToFloat converts a fixed-point sample to its real value in [-1.0, 1.0).
func ToFloat[T Int](v T) float64 {
	return float64(v) / TraitsOf[T]().Scale
}

// Add returns the saturating sum of two samples.
func Add[T Int](a, b T) (T, bool) {
	return Clamp[T](int64(a) + int64(b))
}

// Sub returns the saturating difference of two samples.
func Sub[T Int](a, b T) (T, bool) {
	return Clamp[T](int64(a) - int64(b))
}

// Mul returns the saturating fixed-point product of two samples. The
// double-width product is renormalized with a rounding shift before
// clamping, so Mul(x, x) of the most negative value saturates to Max
// instead of wrapping.
func Mul[T Int](a, b T) (T, bool) {
	tr := TraitsOf[T]()
	return Clamp[T](RoundShift(int64(a)*int64(b), tr.FracBits))
}

// Quantize converts a real coefficient to a raw integer at the given
// fractional precision, rounding half away from zero. The result is not
// clamped; callers validate range according to their own coefficient
// formats.
func Quantize(c float64, fracBits uint) int64 {
	return int64(math.Round(c * float64(int64(1)<<fracBits)))
}
