package precompress

import (
	"errors"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm names a compression format for precompressed companions.
type Algorithm string

const (
	AlgorithmGzip   Algorithm = "gzip"
	AlgorithmBrotli Algorithm = "brotli"
	AlgorithmZstd   Algorithm = "zstd"
	AlgorithmLZ4    Algorithm = "lz4"
	AlgorithmSnappy Algorithm = "snappy"
)

var ErrUnsupportedAlgorithm = errors.New("precompress: unsupported compression algorithm")

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{AlgorithmGzip, AlgorithmBrotli, AlgorithmZstd, AlgorithmLZ4, AlgorithmSnappy}

// Extension is appended to the source filename to name the companion.
func (a Algorithm) Extension() string {
	switch a {
	case AlgorithmGzip:
		return ".gz"
	case AlgorithmBrotli:
		return ".br"
	case AlgorithmZstd:
		return ".zst"
	case AlgorithmLZ4:
		return ".lz4"
	case AlgorithmSnappy:
		return ".sz"
	}
	return ""
}

// Parse validates an algorithm name.
func Parse(name string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", ErrUnsupportedAlgorithm
}

// newCompressor wraps w with the writer for algo at its highest level.
func newCompressor(algo Algorithm, w io.Writer) (io.WriteCloser, error) {
	switch algo {
	case AlgorithmGzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case AlgorithmBrotli:
		return brotli.NewWriterLevel(w, brotli.BestCompression), nil
	case AlgorithmZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case AlgorithmLZ4:
		zw := lz4.NewWriter(w)
		if err := zw.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
			return nil, err
		}
		return zw, nil
	case AlgorithmSnappy:
		return snappy.NewBufferedWriter(w), nil
	}
	return nil, ErrUnsupportedAlgorithm
}
