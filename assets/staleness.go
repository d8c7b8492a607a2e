package assets

import (
	"os"
	"path/filepath"
)

// NeedsRecompression reports whether output must be regenerated from input.
//
// overwrite always forces a rebuild, as does a missing output or an output that is
// the input itself. Otherwise the output is stale only when its modification time is strictly before
// the input's.
func NeedsRecompression(input, output string, overwrite bool) bool {
	if overwrite {
		return true
	}
	outInfo, err := os.Stat(output)
	if err != nil || !outInfo.Mode().IsRegular() {
		return true
	}
	if samePath(input, output) {
		return true
	}
	inInfo, err := os.Stat(input)
	if err != nil {
		// let the open report it
		return true
	}
	return outInfo.ModTime().Before(inInfo.ModTime())
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
