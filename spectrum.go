package streamdsp

import (
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/spectral"
)

// SpectrumConfig configures a SpectrumAnalyzer.
type SpectrumConfig struct {
	// Size is the FFT length. Must be a power of two of at least 2.
	Size int

	// SampleRate in Hz, used only to report bin frequencies. Must be
	// positive.
	SampleRate float64

	// Bands, when nonzero, remaps the linear half-spectrum onto this many
	// logarithmically spaced bands.
	Bands int

	// UsePower selects squared-magnitude output instead of magnitude.
	UsePower bool

	// IncludePhase additionally fills SpectrumFrame.Phases with the phase
	// of each bin.
	IncludePhase bool

	// WindowGain compensates for an analysis window applied by the
	// caller, typically the mean of the window coefficients. Zero means
	// no compensation.
	WindowGain float64
}

// Validate checks the configuration.
func (c *SpectrumConfig) Validate() error {
	if c.Size < 2 {
		return fmt.Errorf("%w: size must be at least 2, got %d", ErrInvalidConfig, c.Size)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %g", ErrInvalidConfig, c.SampleRate)
	}
	if c.Bands < 0 {
		return fmt.Errorf("%w: bands must not be negative, got %d", ErrInvalidConfig, c.Bands)
	}
	if c.WindowGain < 0 {
		return fmt.Errorf("%w: window gain must not be negative, got %g", ErrInvalidConfig, c.WindowGain)
	}
	return nil
}

// SpectrumFrame is the result of one analysis step. The slices are owned
// by the analyzer and overwritten by the next Analyze call; copy them to
// retain a frame.
type SpectrumFrame struct {
	// Bins holds one value per bin from DC through Nyquist, either
	// magnitude or power depending on configuration, normalized so a
	// full-scale sine lands near 0.5 in its bin.
	Bins []float64

	// Bands holds the logarithmic remap of Bins, or nil when band
	// mapping is disabled.
	Bands []float64

	// Phases holds the per-bin phase in radians, or nil unless
	// IncludePhase is set.
	Phases []float64
}

// SpectrumAnalyzer turns blocks of real samples into magnitude or power
// spectra. It owns an FFT of the configured size plus all scratch
// buffers, so Analyze performs no allocation.
type SpectrumAnalyzer[S Sample] struct {
	cfg    SpectrumConfig
	fft    *FFT[S]
	re, im []S
	reF    []float64
	imF    []float64
	bins   []float64
	bands  []float64
	phases []float64
	mapper *spectral.BandMapper
	toF    func(S) float64
	scale  float64
}

// NewSpectrumAnalyzer creates an analyzer for blocks of cfg.Size samples.
func NewSpectrumAnalyzer[S Sample](cfg SpectrumConfig) (*SpectrumAnalyzer[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := NewFFT[S](cfg.Size)
	if err != nil {
		return nil, err
	}
	half := cfg.Size/2 + 1

	// The floating-point forward transform is unscaled; dividing by N
	// brings both families to the same 1/N convention.
	scale := 1.0
	if !FormatOf[S]().Fixed() {
		scale = 1 / float64(cfg.Size)
	}
	if cfg.WindowGain > 0 {
		scale /= cfg.WindowGain
	}

	a := &SpectrumAnalyzer[S]{
		cfg:   cfg,
		fft:   f,
		re:    make([]S, cfg.Size),
		im:    make([]S, cfg.Size),
		reF:   make([]float64, half),
		imF:   make([]float64, half),
		bins:  make([]float64, half),
		toF:   sampleToFloat[S](),
		scale: scale,
	}
	if cfg.IncludePhase {
		a.phases = make([]float64, half)
	}
	if cfg.Bands > 0 {
		m, err := spectral.NewBandMapper(half, cfg.Bands)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
		a.mapper = m
		a.bands = make([]float64, cfg.Bands)
	}
	return a, nil
}

// Size returns the configured FFT length.
func (a *SpectrumAnalyzer[S]) Size() int {
	return a.cfg.Size
}

// BinFrequency returns the center frequency in Hz of bin k.
func (a *SpectrumAnalyzer[S]) BinFrequency(k int) float64 {
	return spectral.BinFrequency(k, a.cfg.Size, a.cfg.SampleRate)
}

// BandFrequency returns the approximate center frequency in Hz of band b.
func (a *SpectrumAnalyzer[S]) BandFrequency(b int) float64 {
	if a.mapper == nil {
		return 0
	}
	return a.mapper.Position(b) * a.cfg.SampleRate / float64(a.cfg.Size)
}

// Analyze transforms one block of exactly Size real samples and returns
// the resulting frame. The input is not modified.
func (a *SpectrumAnalyzer[S]) Analyze(block []S) (SpectrumFrame, error) {
	if len(block) != a.cfg.Size {
		return SpectrumFrame{}, fmt.Errorf("%w: block length %d, want %d", ErrBufferSize, len(block), a.cfg.Size)
	}
	copy(a.re, block)
	clear(a.im)
	if err := a.fft.Forward(a.re, a.im); err != nil {
		return SpectrumFrame{}, err
	}
	for k := range a.reF {
		a.reF[k] = a.toF(a.re[k])
		a.imF[k] = a.toF(a.im[k])
	}

	if a.cfg.UsePower {
		spectral.Power(a.bins, a.reF, a.imF, a.scale*a.scale)
	} else {
		spectral.Magnitude(a.bins, a.reF, a.imF, a.scale)
	}

	frame := SpectrumFrame{Bins: a.bins}
	if a.phases != nil {
		spectral.Phase(a.phases, a.reF, a.imF)
		frame.Phases = a.phases
	}
	if a.mapper != nil {
		if err := a.mapper.Map(a.bands, a.bins); err != nil {
			return SpectrumFrame{}, err
		}
		frame.Bands = a.bands
	}
	return frame, nil
}

// Saturations returns the number of clamped FFT outputs for fixed-point
// formats.
func (a *SpectrumAnalyzer[S]) Saturations() uint64 {
	return a.fft.Saturations()
}
