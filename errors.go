package streamdsp

import "errors"

// Sentinel errors returned by constructors and processing calls. Wrapped
// errors carry detail; match with errors.Is.
var (
	// ErrInvalidConfig indicates invalid construction parameters.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnstableFilter indicates a recursive filter whose poles lie on
	// or outside the unit circle.
	ErrUnstableFilter = errors.New("unstable filter")

	// ErrBufferSize indicates a processing buffer of the wrong length.
	ErrBufferSize = errors.New("buffer length mismatch")
)
