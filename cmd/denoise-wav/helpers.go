package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	permutohedral "github.com/tphakala/go-permutohedral"
	"github.com/tphakala/go-permutohedral/internal/vecops"
)

// denoiseParams holds the filtering configuration.
type denoiseParams struct {
	spatialSigma float32
	rangeSigma   float32
	windowSize   int
	verbose      bool
}

// denoiseStats summarizes a completed run.
type denoiseStats struct {
	rate      int
	channels  int
	bitDepth  int
	samples   int64
	inputRMS  float64
	outputRMS float64
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
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
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit",
			format.SampleRate, format.NumChannels, decoder.BitDepth)
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(decoder.BitDepth),
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// denoiseWAV streams the input through windowed bilateral filtering
// and writes the result.
func denoiseWAV(inputPath, outputPath string, params denoiseParams) (stats *denoiseStats, err error) {
	input, err := openWAVInput(inputPath, params.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = outputFile.Close() }()

	encoder := wav.NewEncoder(outputFile, input.rate, input.bitDepth, input.channels, 1)
	defer func() {
		if closeErr := encoder.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to finalize output: %w", closeErr)
		}
	}()

	stats = &denoiseStats{
		rate:     input.rate,
		channels: input.channels,
		bitDepth: input.bitDepth,
	}

	maxVal := maxValueForBitDepth(input.bitDepth)
	invMaxVal := 1.0 / maxVal

	intBuffer := &audio.IntBuffer{
		Format:         input.format,
		Data:           make([]int, params.windowSize*input.channels),
		SourceBitDepth: input.bitDepth,
	}
	channelBufs := make([][]float32, input.channels)
	for ch := range channelBufs {
		channelBufs[ch] = make([]float32, params.windowSize)
	}

	var inputEnergy, outputEnergy float64
	for {
		n, err := input.decoder.PCMBuffer(intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}

		frames := n
		data := intBuffer.Data[:frames*input.channels]
		deinterleaveInto(data, channelBufs, input.channels, frames, float32(invMaxVal))

		for ch := range channelBufs {
			window := channelBufs[ch][:frames]
			inputEnergy += float64(vecops.Dot(window, window))

			cleaned, err := denoiseChannel(window, params.spatialSigma, params.rangeSigma)
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			outputEnergy += float64(vecops.Dot(cleaned, cleaned))
			copy(window, cleaned)
		}

		interleaveInto(channelBufs, data, input.channels, frames, float32(maxVal))
		if err := encoder.Write(&audio.IntBuffer{
			Format:         input.format,
			Data:           data,
			SourceBitDepth: input.bitDepth,
		}); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		stats.samples += int64(frames)
		intBuffer.Data = intBuffer.Data[:cap(intBuffer.Data)]
	}

	if stats.samples > 0 {
		total := float64(stats.samples) * float64(input.channels)
		stats.inputRMS = math.Sqrt(inputEnergy / total)
		stats.outputRMS = math.Sqrt(outputEnergy / total)
	}
	return stats, nil
}

// denoiseChannel filters one window of normalized samples with a
// bilateral (time, amplitude) kernel and returns the smoothed window.
func denoiseChannel(samples []float32, spatialSigma, rangeSigma float32) ([]float32, error) {
	positions := make([]float32, len(samples))
	for i := range positions {
		positions[i] = float32(i)
	}

	lat, err := permutohedral.NewBilateral(
		positions, 1,
		samples, 1,
		1/spatialSigma, 1/rangeSigma,
	)
	if err != nil {
		return nil, err
	}
	return lat.FilterNormalized(samples, 1)
}

// maxValueForBitDepth returns the maximum sample value for the given
// bit depth.
func maxValueForBitDepth(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into preallocated
// per-channel normalized float buffers.
func deinterleaveInto(data []int, channelBufs [][]float32, numChannels, frames int, invMaxVal float32) {
	for i := 0; i < frames; i++ {
		base := i * numChannels
		for ch := 0; ch < numChannels; ch++ {
			channelBufs[ch][i] = float32(data[base+ch]) * invMaxVal
		}
	}
}

// interleaveInto converts per-channel normalized floats back into the
// interleaved int buffer, clamping to [-1, 1].
func interleaveInto(channelBufs [][]float32, dst []int, numChannels, frames int, maxVal float32) {
	for i := 0; i < frames; i++ {
		base := i * numChannels
		for ch := 0; ch < numChannels; ch++ {
			sample := channelBufs[ch][i]
			if sample > 1 {
				sample = 1
			} else if sample < -1 {
				sample = -1
			}
			dst[base+ch] = int(sample * maxVal)
		}
	}
}
