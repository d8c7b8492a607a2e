package assets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dendrascience/assetmin/version"
)

// FileRecord describes one file written during a run.
type FileRecord struct {
	Input       string   `json:"input"`
	Output      string   `json:"output"`
	Type        string   `json:"type"`
	InputBytes  int64    `json:"input_bytes"`
	OutputBytes int64    `json:"output_bytes"`
	Companions  []string `json:"companions,omitempty"`
}

// Report is the JSON summary written after a successful run.
type Report struct {
	Version   string       `json:"assetmin_version"`
	Generated time.Time    `json:"generated"`
	JS        Counter      `json:"js"`
	CSS       Counter      `json:"css"`
	Total     Counter      `json:"total"`
	Files     []FileRecord `json:"files"`
}

// NewReport captures the counters in stats alongside the given file records.
func NewReport(stats *Statistics, files []FileRecord) Report {
	if files == nil {
		files = []FileRecord{}
	}
	return Report{
		Version:   version.GetVersion(),
		Generated: time.Now().UTC(),
		JS:        stats.JS,
		CSS:       stats.CSS,
		Total:     stats.Total,
		Files:     files,
	}
}

// Save writes the report to path, creating parent directories as needed.
func (r Report) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return WriteJSONFile(path, r)
}

// WriteJSONFile writes any value as indented JSON to the specified file path.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}
