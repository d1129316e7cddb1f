package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// Decode chunk size in frames. Larger chunks reduce I/O overhead.
	chunkFrames = 16384

	// Full-scale values per bit depth for normalization.
	maxInt16        = 32767.0
	maxInt24        = 8388607.0
	maxInt32        = 2147483647.0
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
)

// wavInputInfo holds validated input file information together with the
// preallocated decode buffers.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int

	intBuffer *audio.IntBuffer
	mono      []float64
	invMaxVal float64
}

// openWAVInput opens and validates a WAV file, returning format
// information and decode state.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	rate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", rate, channels, bitDepth)
	}

	maxVal, err := fullScaleFor(bitDepth)
	if err != nil {
		_ = inputFile.Close()
		return nil, err
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     rate,
		channels: channels,
		bitDepth: bitDepth,
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, chunkFrames*channels),
			Format: format,
		},
		mono:      make([]float64, chunkFrames),
		invMaxVal: 1 / maxVal,
	}, nil
}

// NextMonoChunk decodes the next chunk, mixes it down to normalized mono
// samples in [-1, 1], and returns a slice valid until the next call. An
// empty slice signals end of file.
func (w *wavInputInfo) NextMonoChunk() ([]float64, error) {
	n, err := w.decoder.PCMBuffer(w.intBuffer)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PCM data: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	frames := n / w.channels
	data := w.intBuffer.Data
	for f := 0; f < frames; f++ {
		var sum float64
		base := f * w.channels
		for c := 0; c < w.channels; c++ {
			sum += float64(data[base+c])
		}
		w.mono[f] = sum * w.invMaxVal / float64(w.channels)
	}
	return w.mono[:frames], nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// fullScaleFor maps a PCM bit depth to its positive full-scale value.
func fullScaleFor(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}
