// Package streamdsp provides real-time digital signal processing
// primitives in pure Go.
//
// The package covers the core of a streaming DSP pipeline: a lock-free
// sample buffer between capture and processing threads, FIR and IIR
// filter engines, a radix-2 FFT, and a spectrum analyzer that turns
// blocks of samples into magnitude or power spectra with optional
// logarithmic band remapping.
//
// # Sample Formats
//
// Every component is generic over the [Sample] constraint and supports
// four formats:
//
//   - float32, float64: floating-point pipelines. Intermediate
//     arithmetic runs in float64 with SIMD acceleration via
//     github.com/tphakala/simd.
//   - int16 (Q15), int32 (Q31): fixed-point pipelines for targets
//     without an FPU budget. All operations saturate instead of
//     wrapping, and every engine counts saturation events for
//     diagnostics.
//
// The engine behind a component is chosen once at construction based on
// the sample type; hot paths contain no per-sample type switches.
//
// # Quick Start
//
// A minimal capture-to-spectrum pipeline:
//
//	buf, err := streamdsp.NewSampleBuffer[float32](8192, streamdsp.DropOldest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	analyzer, err := streamdsp.NewSpectrumAnalyzer[float32](streamdsp.SpectrumConfig{
//	    Size:       1024,
//	    SampleRate: 48000,
//	    Bands:      32,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	block := make([]float32, 1024)
//	for buf.Read(block) == len(block) {
//	    frame, err := analyzer.Analyze(block)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    render(frame.Bands)
//	}
//
// Filters compose through [Chain]:
//
//	lowpass, _ := streamdsp.NewFIRFilter[int16](coeffs)
//	notch, _ := streamdsp.NewIIRFilter[int16](b, a)
//	chain := streamdsp.NewChain[int16](lowpass, notch)
//	chain.ProcessBlock(out, in)
//
// # Fixed-Point Semantics
//
// Q15 and Q31 engines follow DSP library conventions: multiplications
// renormalize with round-half-away-from-zero shifts, accumulation uses
// wide int64 intermediates, and only final outputs saturate. Recursive
// filters saturate each state update individually so the recursion
// cannot wrap. The fixed-point FFT halves the signal after every forward
// stage, producing a 1/N-scaled spectrum that cannot overflow; the
// inverse is unscaled, so a forward/inverse pair reconstructs the input
// up to rounding.
//
// # Stability Validation
//
// [NewIIRFilter] computes the poles of the denominator as eigenvalues of
// its companion matrix (via gonum) and rejects any filter with a pole on
// or outside the unit circle. A filter that constructs successfully is
// guaranteed stable.
//
// # Thread Safety
//
// [SampleBuffer] is safe for exactly one producer and one consumer
// goroutine without further synchronization. All other components are
// single-goroutine; wrap them with your own locking if they must be
// shared.
package streamdsp
