package assets

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// createTree writes an empty file for every slash-separated path below dir.
func createTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", f, err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", f, err)
		}
	}
}

func collect(t *testing.T, s Scanner, set FileSet) ([]string, error) {
	t.Helper()
	var got []string
	for rel, err := range s.Scan(set) {
		if err != nil {
			return got, err
		}
		got = append(got, rel)
	}
	slices.Sort(got)
	return got, nil
}

func TestDirScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	createTree(t, dir,
		"app.js",
		"app.js~",
		"style.css",
		"readme.txt",
		"lib/util.js",
		"lib/theme/dark.css",
		"vendor/jquery.js",
		".git/hooks/pre-commit.js",
		".DS_Store",
	)

	tests := []struct {
		name string
		set  FileSet
		want []string
	}{
		{
			name: "no includes selects everything but default excludes",
			set:  FileSet{},
			want: []string{"app.js", "lib/theme/dark.css", "lib/util.js", "readme.txt", "style.css", "vendor/jquery.js"},
		},
		{
			name: "include js only",
			set:  FileSet{Includes: []string{"**/*.js"}},
			want: []string{"app.js", "lib/util.js", "vendor/jquery.js"},
		},
		{
			name: "trailing slash excludes a directory",
			set:  FileSet{Includes: []string{"**/*.js"}, Excludes: []string{"vendor/"}},
			want: []string{"app.js", "lib/util.js"},
		},
		{
			name: "top level only",
			set:  FileSet{Includes: []string{"*.css", "./*.js"}},
			want: []string{"app.js", "style.css"},
		},
		{
			name: "directory include",
			set:  FileSet{Includes: []string{"lib/"}},
			want: []string{"lib/theme/dark.css", "lib/util.js"},
		},
		{
			name: "exclude by name anywhere",
			set:  FileSet{Excludes: []string{"**/*.txt", "**/dark.css"}},
			want: []string{"app.js", "lib/util.js", "style.css", "vendor/jquery.js"},
		},
		{
			name: "default excludes disabled",
			set:  FileSet{Includes: []string{"**/*.js", "**/*~"}, NoDefaultExcludes: true},
			want: []string{".git/hooks/pre-commit.js", "app.js", "app.js~", "lib/util.js", "vendor/jquery.js"},
		},
		{
			name: "blank patterns are ignored",
			set:  FileSet{Includes: []string{"  ", "**/*.css"}},
			want: []string{"lib/theme/dark.css", "style.css"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set.Dir = dir
			got, err := collect(t, DirScanner{}, tt.set)
			if err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Scan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirScanner_Restartable(t *testing.T) {
	dir := t.TempDir()
	createTree(t, dir, "a.js", "b/c.css", "b/d.js")

	set := FileSet{Dir: dir}
	seq := DirScanner{}.Scan(set)

	var first, second []string
	for rel, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		first = append(first, rel)
	}
	for rel, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		second = append(second, rel)
	}
	if len(first) != 3 || !slices.Equal(first, second) {
		t.Errorf("iterating twice gave %v then %v", first, second)
	}
}

func TestDirScanner_EarlyStop(t *testing.T) {
	dir := t.TempDir()
	createTree(t, dir, "a.js", "b.js", "c.js")

	n := 0
	for _, err := range (DirScanner{}).Scan(FileSet{Dir: dir}) {
		if err != nil {
			t.Fatal(err)
		}
		n++
		break
	}
	if n != 1 {
		t.Errorf("expected a single element before break, got %d", n)
	}
}

func TestDirScanner_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := collect(t, DirScanner{}, FileSet{Dir: dir, Includes: []string{"[a-"}})
		if err == nil {
			t.Error("expected an error for a malformed pattern")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := collect(t, DirScanner{}, FileSet{Dir: filepath.Join(dir, "missing")})
		if err == nil {
			t.Error("expected an error for a missing directory")
		}
	})
}
