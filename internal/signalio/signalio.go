// Package signalio reads input signals for the analytics command line tool
// and writes its tabular results.
//
// Signals come either from WAV files or from plain text with one sample per
// line. Results are written as tab separated columns.
package signalio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrInvalidWAV is returned for files that are not PCM WAV.
	ErrInvalidWAV = errors.New("signalio: invalid wav file")
	// ErrEmptySignal is returned when the input holds no samples.
	ErrEmptySignal = errors.New("signalio: empty signal")
	// ErrColumnMismatch is returned by WriteTSV for ragged columns.
	ErrColumnMismatch = errors.New("signalio: column length mismatch")
)

// Signal is a mono sample sequence with its sample rate.
// SampleRate is 0 when the source does not carry one.
type Signal struct {
	Samples    []float64
	SampleRate float64
}

// ReadFile loads path as WAV when the extension is .wav and as text
// otherwise. "-" reads text from os.Stdin.
func ReadFile(path string) (Signal, error) {
	if path == "-" {
		samples, err := ReadText(os.Stdin)
		return Signal{Samples: samples}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Signal{}, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return ReadWAV(f)
	}
	samples, err := ReadText(f)
	return Signal{Samples: samples}, err
}

// ReadText parses one sample per line. Blank lines and lines starting with
// '#' are skipped. Only the first whitespace separated field is read.
func ReadText(r io.Reader) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		field := strings.Fields(text)[0]
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("signalio: line %d: %w", line, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptySignal
	}
	return out, nil
}

// ReadWAV decodes a PCM WAV stream. Multi-channel input is mixed down to
// mono by averaging. Samples are scaled to [-1, 1).
func ReadWAV(r io.ReadSeeker) (Signal, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return Signal{}, ErrInvalidWAV
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Signal{}, fmt.Errorf("signalio: decode wav: %w", err)
	}

	channels := int(d.NumChans)
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}
	if channels < 1 {
		return Signal{}, ErrInvalidWAV
	}
	frames := len(buf.Data) / channels
	if frames == 0 {
		return Signal{}, ErrEmptySignal
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(d.BitDepth)
	}
	scale := 1 / float64(audio.IntMaxSignedValue(depth)+1)

	samples := make([]float64, frames)
	for i := range samples {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = sum * scale / float64(channels)
	}
	return Signal{Samples: samples, SampleRate: float64(d.SampleRate)}, nil
}

// WriteWAV encodes samples as mono PCM at the given bit depth. Values are
// clipped to [-1, 1].
func WriteWAV(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	if len(samples) == 0 {
		return ErrEmptySignal
	}
	maxVal := float64(audio.IntMaxSignedValue(bitDepth))
	data := make([]int, len(samples))
	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		data[i] = int(math.Round(v * maxVal))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// WriteTSV writes a header line followed by one row per index. All columns
// must have the same length.
func WriteTSV(w io.Writer, header []string, columns ...[]float64) error {
	if len(header) != len(columns) {
		return fmt.Errorf("%w: %d names for %d columns", ErrColumnMismatch, len(header), len(columns))
	}
	rows := 0
	for i, c := range columns {
		if i == 0 {
			rows = len(c)
		} else if len(c) != rows {
			return ErrColumnMismatch
		}
	}

	bw := bufio.NewWriter(w)
	if len(header) > 0 {
		if _, err := bw.WriteString("# " + strings.Join(header, "\t") + "\n"); err != nil {
			return err
		}
	}
	row := make([]byte, 0, 64)
	for r := 0; r < rows; r++ {
		row = row[:0]
		for c, col := range columns {
			if c > 0 {
				row = append(row, '\t')
			}
			row = strconv.AppendFloat(row, col[r], 'g', -1, 64)
		}
		row = append(row, '\n')
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
