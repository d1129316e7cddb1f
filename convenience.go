package streamdsp

// One-shot helpers for callers that do not need streaming state.

// FilterFIR runs input through a freshly constructed FIR filter and
// returns the output. For repeated use construct a [FIRFilter] once and
// reuse it.
func FilterFIR[S Sample](coeffs []float64, input []S) ([]S, error) {
	f, err := NewFIRFilter[S](coeffs)
	if err != nil {
		return nil, err
	}
	out := make([]S, len(input))
	f.ProcessBlock(out, input)
	return out, nil
}

// FilterIIR runs input through a freshly constructed IIR filter and
// returns the output.
func FilterIIR[S Sample](b, a []float64, input []S) ([]S, error) {
	f, err := NewIIRFilter[S](b, a)
	if err != nil {
		return nil, err
	}
	out := make([]S, len(input))
	f.ProcessBlock(out, input)
	return out, nil
}

// MagnitudeSpectrum analyzes a single block and returns a copy of its
// magnitude spectrum from DC through Nyquist. The block length must be a
// power of two.
func MagnitudeSpectrum[S Sample](block []S, sampleRate float64) ([]float64, error) {
	a, err := NewSpectrumAnalyzer[S](SpectrumConfig{
		Size:       len(block),
		SampleRate: sampleRate,
	})
	if err != nil {
		return nil, err
	}
	frame, err := a.Analyze(block)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(frame.Bins))
	copy(out, frame.Bins)
	return out, nil
}
