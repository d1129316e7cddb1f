// Command spectrum-wav prints the averaged frequency spectrum of a WAV file.
//
// Usage:
//
//	spectrum-wav input.wav
//	spectrum-wav -n 8192 -bands 48 input.wav
//	spectrum-wav -power -v input.wav
//
// The file is mixed down to mono, cut into Hann-windowed blocks, and
// transformed block by block; the per-band magnitudes are averaged over
// the whole file and rendered as a text bar chart.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/mjibson/go-dsp/window"

	streamdsp "github.com/tphakala/go-streamdsp"
	"github.com/tphakala/go-streamdsp/internal/mathutil"
	"github.com/tphakala/go-streamdsp/internal/simdops"
)

const (
	// Analysis defaults
	defaultFFTSize = 4096
	defaultBands   = 32

	// The sample buffer holds this many analysis blocks; RejectWrite
	// keeps the analysis gap-free when reads lag.
	bufferCapacityBlocks = 8

	// Display constants
	barWidth = 56
	dbFloor  = -96.0

	minRequiredArgs = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	size := flag.Int("n", defaultFFTSize, "FFT size (rounded up to a power of two)")
	bands := flag.Int("bands", defaultBands, "Number of logarithmic output bands")
	power := flag.Bool("power", false, "Average power instead of magnitude")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}

	fftSize := *size
	if p := mathutil.NextPowerOfTwo(fftSize); p != fftSize {
		log.Printf("FFT size %d is not a power of two, using %d", fftSize, p)
		fftSize = p
	}

	in, err := openWAVInput(args[0], *verbose)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	win := window.Hann(fftSize)
	analyzer, err := streamdsp.NewSpectrumAnalyzer[float64](streamdsp.SpectrumConfig{
		Size:       fftSize,
		SampleRate: float64(in.rate),
		Bands:      *bands,
		UsePower:   *power,
		WindowGain: mean(win),
	})
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	buf, err := streamdsp.NewSampleBuffer[float64](fftSize*bufferCapacityBlocks, streamdsp.RejectWrite)
	if err != nil {
		return fmt.Errorf("failed to create sample buffer: %w", err)
	}

	avg := make([]float64, *bands)
	frames, err := analyzeFile(in, buf, analyzer, win, avg)
	if err != nil {
		return err
	}
	if frames == 0 {
		return fmt.Errorf("input shorter than one FFT block (%d samples)", fftSize)
	}
	if *verbose {
		log.Printf("Averaged %d blocks of %d samples", frames, fftSize)
	}

	printSpectrum(os.Stdout, analyzer, avg, frames, *power)
	return nil
}

// analyzeFile streams the decoded file through the sample buffer and
// accumulates band values into avg, returning the number of blocks.
func analyzeFile(
	in *wavInputInfo,
	buf *streamdsp.SampleBuffer[float64],
	analyzer *streamdsp.SpectrumAnalyzer[float64],
	win []float64,
	avg []float64,
) (int, error) {
	size := analyzer.Size()
	block := make([]float64, size)
	windowed := make([]float64, size)
	frames := 0

	for {
		mono, err := in.NextMonoChunk()
		if err != nil {
			return 0, err
		}
		if len(mono) == 0 {
			break
		}
		for len(mono) > 0 {
			written := buf.Write(mono)
			mono = mono[written:]
			for buf.Len() >= size {
				buf.Read(block)
				applyWindow(windowed, block, win)
				frame, err := analyzer.Analyze(windowed)
				if err != nil {
					return 0, fmt.Errorf("analysis failed: %w", err)
				}
				for b, v := range frame.Bands {
					avg[b] += v
				}
				frames++
			}
		}
	}
	return frames, nil
}

// printSpectrum renders the averaged spectrum as dB bars.
func printSpectrum(w *os.File, analyzer *streamdsp.SpectrumAnalyzer[float64], avg []float64, frames int, power bool) {
	// Reference for dB conversion: full scale is 0.5 in magnitude (a
	// full-scale sine concentrates half its amplitude per side).
	ref := 0.5
	if power {
		ref = 0.25
	}

	for b, sum := range avg {
		v := sum / float64(frames)
		db := dbFloor
		if v > 0 {
			if power {
				db = 10 * math.Log10(v/ref)
			} else {
				db = 20 * math.Log10(v/ref)
			}
			db = math.Max(db, dbFloor)
		}
		bar := int((db - dbFloor) / -dbFloor * barWidth)
		fmt.Fprintf(w, "%8.0f Hz %7.1f dB |%s\n",
			analyzer.BandFrequency(b), db, strings.Repeat("#", bar))
	}
}

// mean returns the average of the window coefficients, the coherent gain
// the analyzer compensates for.
func mean(win []float64) float64 {
	return simdops.Float64Ops().Sum(win) / float64(len(win))
}

// applyWindow multiplies src elementwise with the analysis window.
func applyWindow(dst, src, win []float64) {
	for i := range src {
		dst[i] = src[i] * win[i]
	}
}
