package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dendrascience/assetmin/assets"
)

func TestPathsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		path1    string
		path2    string
		expected bool
	}{
		{
			name:     "identical paths",
			path1:    "/tmp/web",
			path2:    "/tmp/web",
			expected: true,
		},
		{
			name:     "output inside source",
			path1:    "/tmp/web",
			path2:    "/tmp/web/min",
			expected: true,
		},
		{
			name:     "source inside output",
			path1:    "/tmp/web/js",
			path2:    "/tmp/web",
			expected: true,
		},
		{
			name:     "sibling directories",
			path1:    "/tmp/web",
			path2:    "/tmp/web-min",
			expected: false,
		},
		{
			name:     "completely separate paths",
			path1:    "/srv/src",
			path2:    "/var/www",
			expected: false,
		},
		{
			name:     "relative paths - overlapping",
			path1:    "web",
			path2:    "web/min",
			expected: true,
		},
		{
			name:     "relative paths - separate",
			path1:    "web",
			path2:    "dist",
			expected: false,
		},
		{
			name:     "dot-dot prefixed name is not a parent",
			path1:    "a/b",
			path2:    "a/..b",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pathsOverlap(tt.path1, tt.path2)
			if result != tt.expected {
				t.Errorf("pathsOverlap(%q, %q) = %v, expected %v", tt.path1, tt.path2, result, tt.expected)
			}
		})
	}
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}
}

func TestMinifyCheckList(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writeSource(t, src, "js/app.js", "function hello(name) {\n  return 'hi ' + name;\n}\n")
	writeSource(t, src, "css/site.css", "body {\n  color: red;\n}\n")
	writeSource(t, src, "README.md", "docs")

	stdout, _, err := run(t, "list", "--to-dir", out, src)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "JS   js/app.js -> "+filepath.Join(out, "js", "app-min.js")) {
		t.Errorf("list output missing app.js line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Total files: 2 (1 JS, 1 CSS)") {
		t.Errorf("list output missing total:\n%s", stdout)
	}

	stdout, _, err = run(t, "check", "--to-dir", out, src)
	if !errors.Is(err, errStale) {
		t.Fatalf("check before minify error = %v, want errStale", err)
	}
	if !strings.Contains(stdout, "Stale outputs: 2") {
		t.Errorf("check output:\n%s", stdout)
	}

	_, stderr, err := run(t, "minify", "--to-dir", out, "--precompress", "gzip", src)
	if err != nil {
		t.Fatalf("minify failed: %v\n%s", err, stderr)
	}
	for _, want := range []string{"app.js -> app-min.js:", "JS: 1 file(s)", "CSS: 1 file(s)", "Total: 2 file(s)"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("minify log missing %q:\n%s", want, stderr)
		}
	}
	css, err := os.ReadFile(filepath.Join(out, "css", "site-min.css"))
	if err != nil || string(css) != "body{color:red}" {
		t.Errorf("site-min.css = %q, %v", css, err)
	}
	if _, err := os.Stat(filepath.Join(out, "js", "app-min.js.gz")); err != nil {
		t.Errorf("gzip companion missing: %v", err)
	}

	stdout, _, err = run(t, "check", "--to-dir", out, src)
	if err != nil {
		t.Errorf("check after minify failed: %v\n%s", err, stdout)
	}
}

func TestMinify_ConfigurationError(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "a.js", "var a = 1;")

	_, _, err := run(t, "minify", "--to-dir", filepath.Join(src, "a.js"), src)
	if !errors.Is(err, assets.ErrConfiguration) {
		t.Errorf("minify error = %v, want a configuration error", err)
	}

	_, _, err = run(t, "minify", "--to-dir", t.TempDir(), "--css-engine", "nope", src)
	if !errors.Is(err, assets.ErrConfiguration) {
		t.Errorf("minify error = %v, want a configuration error for the engine", err)
	}
}

func TestMinify_ConfigFileAndOverrides(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "web/a.js", "var first = 1;\nconsole.log(first);\n")
	if err := os.MkdirAll(filepath.Join(root, "dist"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "assetmin.yaml")
	os.WriteFile(cfgPath, []byte("to_dir: dist\njs_suffix: .min.js\nfilesets:\n  - dir: web\n"), 0o644)
	envPath := filepath.Join(root, ".env")
	os.WriteFile(envPath, []byte("ASSETMIN_LINE_BREAK=0\nASSETMIN_JS_SUFFIX=.env.js\n"), 0o644)

	// the flag beats the env file, which beats the YAML file
	_, stderr, err := run(t, "minify", "--config", cfgPath, "--env-file", envPath, "--js-suffix", ".flag.js")
	if err != nil {
		t.Fatalf("minify failed: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(filepath.Join(root, "dist", "a.flag.js"))
	if err != nil {
		t.Fatalf("output not written with the flag suffix: %v", err)
	}
	if !strings.Contains(string(data), "\n") {
		t.Errorf("line break from the env file not applied: %q", data)
	}
}

func TestMinify_WarnsOnOverlap(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "a.js", "var a = 1;")
	out := filepath.Join(src, "min")
	os.MkdirAll(out, 0o755)

	_, stderr, err := run(t, "minify", "--to-dir", out, src)
	if err != nil {
		t.Fatalf("minify failed: %v", err)
	}
	if !strings.Contains(stderr, "overlaps file set") {
		t.Errorf("expected an overlap warning:\n%s", stderr)
	}
}

func TestSeedThenMinify(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()

	stdout, _, err := run(t, "seed", "--output", src, "--count", "12", "--buckets", "3")
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !strings.Contains(stdout, "Created 12 files") {
		t.Errorf("seed output = %q", stdout)
	}

	stdout, _, err = run(t, "list", "--to-dir", out, src)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Total files: 12") {
		t.Errorf("list of seeded files:\n%s", stdout)
	}

	_, stderr, err := run(t, "minify", "--to-dir", out, "--munge", src)
	if err != nil {
		t.Fatalf("minify of seeded files failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr, "Total: 12 file(s)") {
		t.Errorf("expected all seeded files minified:\n%s", stderr)
	}

	if _, _, err := run(t, "seed", "--output", src, "--buckets", "0"); err == nil {
		t.Error("zero buckets should be rejected")
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "assetmin version ") {
		t.Errorf("version output = %q", stdout)
	}

	stdout, _, err = run(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, `"package": "assetmin"`) {
		t.Errorf("version --json output = %q", stdout)
	}
}
