package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are skipped in every FileSet unless NoDefaultExcludes is set.
// They cover version control metadata and editor leftovers.
var DefaultExcludes = []string{
	"**/*~",
	"**/#*#",
	"**/.#*",
	"**/%*%",
	"**/._*",
	"**/CVS/**",
	"**/.cvsignore",
	"**/SCCS/**",
	"**/vssver.scc",
	"**/.svn/**",
	"**/.DS_Store",
	"**/.git/**",
	"**/.gitattributes",
	"**/.gitignore",
	"**/.gitmodules",
	"**/.hg/**",
	"**/.hgignore",
	"**/.hgtags",
	"**/.bzr/**",
	"**/.bzrignore",
}

// FileSet is a base directory plus the patterns selecting files beneath it.
// Patterns use doublestar syntax against slash-separated relative paths; a pattern
// ending in "/" matches everything below that directory. No includes means "**".
type FileSet struct {
	Dir               string   `json:"dir"`
	Includes          []string `json:"includes,omitempty"`
	Excludes          []string `json:"excludes,omitempty"`
	NoDefaultExcludes bool     `json:"no_default_excludes,omitempty"`
}

// Scanner resolves a FileSet into relative file paths.
type Scanner interface {
	Scan(set FileSet) iter.Seq2[string, error]
}

// DirScanner walks the file system with filepath.WalkDir.
type DirScanner struct{}

var errStopScan = errors.New("scan stopped")

// Scan lazily yields the slash-separated paths, relative to set.Dir, of every regular
// file selected by the set. Directories are never yielded. Each call walks the tree
// afresh. A walk failure is yielded once as the final element.
func (DirScanner) Scan(set FileSet) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		includes, excludes, err := set.patterns()
		if err != nil {
			yield("", err)
			return
		}
		err = filepath.WalkDir(set.Dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(set.Dir, path)
			if err != nil {
				return err
			}
			if rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)
			if d.IsDir() {
				if pruned(excludes, rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if !matchAny(includes, rel) || matchAny(excludes, rel) {
				return nil
			}
			if !yield(rel, nil) {
				return errStopScan
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopScan) {
			yield("", fmt.Errorf("scanning %s: %w", set.Dir, err))
		}
	}
}

func (set FileSet) patterns() (includes, excludes []string, err error) {
	includes, err = normalizePatterns(set.Includes)
	if err != nil {
		return nil, nil, err
	}
	if len(includes) == 0 {
		includes = []string{"**"}
	}
	excludes, err = normalizePatterns(set.Excludes)
	if err != nil {
		return nil, nil, err
	}
	if !set.NoDefaultExcludes {
		excludes = append(excludes, DefaultExcludes...)
	}
	return includes, excludes, nil
}

func normalizePatterns(patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = filepath.ToSlash(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(p, "./")
		if strings.HasSuffix(p, "/") {
			p += "**"
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
		out = append(out, p)
	}
	return out, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, rel) {
			return true
		}
	}
	return false
}

// pruned reports whether every file below dir is excluded by some "<x>/**" pattern,
// so the walk can skip the directory entirely.
func pruned(excludes []string, dir string) bool {
	for _, p := range excludes {
		prefix, ok := strings.CutSuffix(p, "/**")
		if !ok {
			continue
		}
		if doublestar.MatchUnvalidated(prefix, dir) {
			return true
		}
	}
	return false
}
