// Package spectral post-processes FFT output into magnitude and power
// spectra and remaps linear bins onto logarithmically spaced bands.
package spectral

import (
	"fmt"
	"math"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// Magnitude fills dst[k] with sqrt(re[k]^2 + im[k]^2) * scale. dst selects
// how many bins are computed; for real input the first len/2+1 bins carry
// the whole spectrum.
func Magnitude(dst, re, im []float64, scale float64) {
	for k := range dst {
		dst[k] = math.Sqrt(re[k]*re[k] + im[k]*im[k])
	}
	if scale != 1 {
		simdops.Float64Ops().Scale(dst, dst, scale)
	}
}

// Power fills dst[k] with (re[k]^2 + im[k]^2) * scale.
func Power(dst, re, im []float64, scale float64) {
	for k := range dst {
		dst[k] = re[k]*re[k] + im[k]*im[k]
	}
	if scale != 1 {
		simdops.Float64Ops().Scale(dst, dst, scale)
	}
}

// Phase fills dst[k] with the argument of re[k] + i*im[k] in radians,
// in (-pi, pi]. Spectrum scaling does not affect phase.
func Phase(dst, re, im []float64) {
	for k := range dst {
		dst[k] = math.Atan2(im[k], re[k])
	}
}

// BinFrequency returns the center frequency in Hz of bin k for an n-point
// transform at the given sample rate.
func BinFrequency(k, n int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(n)
}

// BandMapper remaps a linear spectrum onto logarithmically spaced bands
// using linear interpolation between neighboring bins. The mapping is
// fixed at construction, so repeated calls are deterministic and cheap.
//
// The DC bin is excluded: band positions span bin 1 through the last bin.
type BandMapper struct {
	pos []float64 // fractional bin position per band
}

// NewBandMapper creates a mapper from bins linear bins onto bands
// logarithmic bands.
func NewBandMapper(bins, bands int) (*BandMapper, error) {
	if bins < 2 {
		return nil, fmt.Errorf("spectral: need at least 2 bins, got %d", bins)
	}
	if bands < 2 || bands > bins {
		return nil, fmt.Errorf("spectral: bands must be in [2, %d], got %d", bins, bands)
	}
	m := &BandMapper{pos: make([]float64, bands)}
	span := math.Log(float64(bins - 1))
	for b := range m.pos {
		frac := float64(b) / float64(bands-1)
		m.pos[b] = math.Exp(frac * span)
	}
	return m, nil
}

// Bands returns the number of output bands.
func (m *BandMapper) Bands() int {
	return len(m.pos)
}

// Position returns the fractional source bin of band b.
func (m *BandMapper) Position(b int) float64 {
	return m.pos[b]
}

// Map interpolates spectrum onto dst. len(dst) must equal Bands and the
// spectrum must cover every mapped position. The input is not modified.
func (m *BandMapper) Map(dst, spectrum []float64) error {
	if len(dst) != len(m.pos) {
		return fmt.Errorf("spectral: dst length %d, want %d bands", len(dst), len(m.pos))
	}
	if len(spectrum) < 2 {
		return fmt.Errorf("spectral: spectrum too short: %d", len(spectrum))
	}
	last := float64(len(spectrum) - 1)
	for b, p := range m.pos {
		if p > last {
			return fmt.Errorf("spectral: band %d maps to bin %.2f beyond spectrum end %d", b, p, len(spectrum)-1)
		}
		lo := int(p)
		frac := p - float64(lo)
		if lo == len(spectrum)-1 {
			dst[b] = spectrum[lo]
			continue
		}
		dst[b] = spectrum[lo] + frac*(spectrum[lo+1]-spectrum[lo])
	}
	return nil
}
