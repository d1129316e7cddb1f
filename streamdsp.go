package streamdsp

import "fmt"

// Sample is the type constraint covering every supported sample format:
// float32 and float64 for floating-point pipelines, int16 (Q15) and
// int32 (Q31) for fixed-point pipelines.
type Sample interface {
	float32 | float64 | int16 | int32
}

// Format identifies a sample format at runtime. Generic components
// resolve their Format once at construction and dispatch to the matching
// engine; no per-sample type switching occurs.
type Format int

const (
	// FormatFloat32 is IEEE 754 single precision.
	FormatFloat32 Format = iota

	// FormatFloat64 is IEEE 754 double precision.
	FormatFloat64

	// FormatQ15 is 16-bit fixed point with 15 fractional bits.
	FormatQ15

	// FormatQ31 is 32-bit fixed point with 31 fractional bits.
	FormatQ31
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatFloat32:
		return "float32"
	case FormatFloat64:
		return "float64"
	case FormatQ15:
		return "q15"
	case FormatQ31:
		return "q31"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Fixed reports whether the format is a fixed-point one.
func (f Format) Fixed() bool {
	return f == FormatQ15 || f == FormatQ31
}

// FormatOf returns the Format corresponding to sample type S.
func FormatOf[S Sample]() Format {
	var zero S
	switch any(zero).(type) {
	case float32:
		return FormatFloat32
	case float64:
		return FormatFloat64
	case int16:
		return FormatQ15
	case int32:
		return FormatQ31
	default:
		panic("streamdsp: unsupported sample type")
	}
}

// sampleToFloat returns a converter from sample values to their real
// value in units of full scale. Fixed-point formats divide by 2^frac.
func sampleToFloat[S Sample]() func(S) float64 {
	switch FormatOf[S]() {
	case FormatQ15:
		return func(v S) float64 { return float64(v) / (1 << 15) }
	case FormatQ31:
		return func(v S) float64 { return float64(v) / (1 << 31) }
	default:
		return func(v S) float64 { return float64(v) }
	}
}
