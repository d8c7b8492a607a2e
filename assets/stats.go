package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// Counter accumulates file and byte totals for one category of files.
type Counter struct {
	Files       int   `json:"files"`
	InputBytes  int64 `json:"input_bytes"`
	OutputBytes int64 `json:"output_bytes"`
}

func (c *Counter) add(in, out int64) {
	c.Files++
	c.InputBytes += in
	c.OutputBytes += out
}

// Reduction returns (1 - out/in) * 100, or 0 when nothing was read.
func (c Counter) Reduction() float64 {
	return reduction(c.InputBytes, c.OutputBytes)
}

func reduction(in, out int64) float64 {
	if in == 0 {
		return 0
	}
	return (1 - float64(out)/float64(in)) * 100
}

func (c Counter) summary(label string) string {
	if c.Files == 0 {
		return fmt.Sprintf("%s: no files processed", label)
	}
	return fmt.Sprintf("%s: %d file(s), %d bytes -> %d bytes (%.2f%% reduction)",
		label, c.Files, c.InputBytes, c.OutputBytes, c.Reduction())
}

// Statistics holds the JS, CSS and grand totals of a single run.
// It is not safe for concurrent use.
type Statistics struct {
	JS    Counter `json:"js"`
	CSS   Counter `json:"css"`
	Total Counter `json:"total"`
}

// RecordFile adds one compressed file to its type counter and to the total.
func (s *Statistics) RecordFile(t FileType, inputSize, outputSize int64) {
	switch t {
	case JS:
		s.JS.add(inputSize, outputSize)
	case CSS:
		s.CSS.add(inputSize, outputSize)
	}
	s.Total.add(inputSize, outputSize)
}

func (s *Statistics) JSSummary() string    { return s.JS.summary("JS") }
func (s *Statistics) CSSSummary() string   { return s.CSS.summary("CSS") }
func (s *Statistics) TotalSummary() string { return s.Total.summary("Total") }

// FileStats measures input and output on disk, records them, and returns the
// per-file summary line.
func (s *Statistics) FileStats(input, output string, t FileType) (string, error) {
	inInfo, err := os.Stat(input)
	if err != nil {
		return "", err
	}
	outInfo, err := os.Stat(output)
	if err != nil {
		return "", err
	}
	in, out := inInfo.Size(), outInfo.Size()
	s.RecordFile(t, in, out)
	return fmt.Sprintf("%s -> %s: %d bytes -> %d bytes (%.2f%% reduction)",
		filepath.Base(input), filepath.Base(output), in, out, reduction(in, out)), nil
}
