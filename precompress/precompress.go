// Package precompress writes compressed companions (file.js.gz, file.js.br, ...)
// next to minified assets so web servers can serve them without compressing on
// every request.
package precompress

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Companion is one compressed file produced by File.
type Companion struct {
	Algorithm Algorithm
	Path      string
	Size      int64
}

// File compresses path once per algorithm, writing path+algo.Extension().
// The algorithms run concurrently; companions are returned in the order of algos.
// Duplicate algorithms are compressed once. Existing companions are replaced.
func File(path string, algos []Algorithm) ([]Companion, error) {
	algos = unique(algos)
	companions := make([]Companion, len(algos))
	var g errgroup.Group
	for i, algo := range algos {
		g.Go(func() error {
			c, err := compressTo(path, algo)
			if err != nil {
				return fmt.Errorf("%s %s: %w", algo, path, err)
			}
			companions[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return companions, nil
}

func unique(algos []Algorithm) []Algorithm {
	out := make([]Algorithm, 0, len(algos))
	for _, a := range algos {
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}

func compressTo(path string, algo Algorithm) (Companion, error) {
	ext := algo.Extension()
	if ext == "" {
		return Companion{}, ErrUnsupportedAlgorithm
	}
	in, err := os.Open(path)
	if err != nil {
		return Companion{}, err
	}
	defer in.Close()

	dest := path + ext
	out, err := os.Create(dest)
	if err != nil {
		return Companion{}, err
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	zw, err := newCompressor(algo, bw)
	if err != nil {
		return Companion{}, err
	}
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		return Companion{}, err
	}
	if err := zw.Close(); err != nil {
		return Companion{}, err
	}
	if err := bw.Flush(); err != nil {
		return Companion{}, err
	}
	if err := out.Close(); err != nil {
		return Companion{}, err
	}

	info, err := os.Stat(dest)
	if err != nil {
		return Companion{}, err
	}
	return Companion{Algorithm: algo, Path: dest, Size: info.Size()}, nil
}
