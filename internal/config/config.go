// Package config loads assetmin task settings from a YAML file, an optional
// dotenv file and ASSETMIN_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dendrascience/assetmin/assets"
	"github.com/dendrascience/assetmin/precompress"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is prepended to every environment variable name read by ApplyEnv.
const EnvPrefix = "ASSETMIN_"

type FileSet struct {
	Dir               string   `yaml:"dir"`
	Includes          []string `yaml:"includes"`
	Excludes          []string `yaml:"excludes"`
	NoDefaultExcludes bool     `yaml:"no_default_excludes"`
}

type Config struct {
	ToDir              string    `yaml:"to_dir"`
	Charset            string    `yaml:"charset"`
	LineBreak          int       `yaml:"line_break"`
	Munge              bool      `yaml:"munge"`
	Warn               bool      `yaml:"warn"`
	PreserveSemicolons bool      `yaml:"preserve_semicolons"`
	Optimize           bool      `yaml:"optimize"`
	JSSuffix           string    `yaml:"js_suffix"`
	CSSSuffix          string    `yaml:"css_suffix"`
	Overwrite          bool      `yaml:"overwrite"`
	CSSEngine          string    `yaml:"css_engine"`
	Precompress        []string  `yaml:"precompress"`
	Report             string    `yaml:"report"`
	FileSets           []FileSet `yaml:"filesets"`
}

// Defaults returns a Config holding the task defaults.
func Defaults() *Config {
	opts := assets.DefaultOptions()
	return &Config{
		Charset:            opts.Charset,
		LineBreak:          opts.LineBreak,
		Munge:              opts.Munge,
		Warn:               opts.Warn,
		PreserveSemicolons: opts.PreserveSemicolons,
		Optimize:           opts.Optimize,
		JSSuffix:           opts.JSSuffix,
		CSSSuffix:          opts.CSSSuffix,
		CSSEngine:          assets.CSSEngineTdewolff,
	}
}

// Load decodes the YAML task file at path over the defaults. Relative directories
// in the file are resolved against the directory holding it.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes the YAML task file at path over the values already in c.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	before := len(c.FileSets)
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	base := filepath.Dir(path)
	if c.ToDir != "" && !filepath.IsAbs(c.ToDir) {
		c.ToDir = filepath.Join(base, c.ToDir)
	}
	if c.Report != "" && !filepath.IsAbs(c.Report) {
		c.Report = filepath.Join(base, c.Report)
	}
	for i := before; i < len(c.FileSets); i++ {
		if !filepath.IsAbs(c.FileSets[i].Dir) {
			c.FileSets[i].Dir = filepath.Join(base, c.FileSets[i].Dir)
		}
	}
	return nil
}

// LoadEnvFile reads KEY=VALUE pairs from a dotenv file without touching the
// process environment.
func LoadEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

// EnvLookup consults the process environment first and falls back to vars.
func EnvLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}
}

// ApplyEnv overrides c with every ASSETMIN_* variable lookup reports as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("TO_DIR", &c.ToDir)
	str("CHARSET", &c.Charset)
	str("JS_SUFFIX", &c.JSSuffix)
	str("CSS_SUFFIX", &c.CSSSuffix)
	str("CSS_ENGINE", &c.CSSEngine)
	str("REPORT", &c.Report)
	boolean("MUNGE", &c.Munge)
	boolean("WARN", &c.Warn)
	boolean("PRESERVE_SEMICOLONS", &c.PreserveSemicolons)
	boolean("OPTIMIZE", &c.Optimize)
	boolean("OVERWRITE", &c.Overwrite)

	if v, ok := lookup(EnvPrefix + "LINE_BREAK"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sLINE_BREAK: %w", EnvPrefix, err))
		} else {
			c.LineBreak = n
		}
	}
	if v, ok := lookup(EnvPrefix + "PRECOMPRESS"); ok {
		c.Precompress = SplitList(v)
	}
	return errors.Join(errs...)
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the values the task itself does not: engine and algorithm names
// and the line break column. Directory checks are left to the task.
func (c *Config) Validate() error {
	if c.LineBreak < -1 {
		return fmt.Errorf("%w: line break must be -1 or a column, got %d", assets.ErrConfiguration, c.LineBreak)
	}
	if _, err := assets.NewCSSMinifier(c.CSSEngine); err != nil {
		return fmt.Errorf("%w: %v", assets.ErrConfiguration, err)
	}
	for _, name := range c.Precompress {
		if _, err := precompress.Parse(name); err != nil {
			return fmt.Errorf("%w: %q: %v", assets.ErrConfiguration, name, err)
		}
	}
	return nil
}

// Options converts c into task options. Call Validate first.
func (c *Config) Options() (assets.Options, error) {
	opts := assets.Options{
		ToDir:              c.ToDir,
		Charset:            c.Charset,
		LineBreak:          c.LineBreak,
		Munge:              c.Munge,
		Warn:               c.Warn,
		PreserveSemicolons: c.PreserveSemicolons,
		Optimize:           c.Optimize,
		JSSuffix:           c.JSSuffix,
		CSSSuffix:          c.CSSSuffix,
		Overwrite:          c.Overwrite,
		Report:             c.Report,
	}
	for _, name := range c.Precompress {
		algo, err := precompress.Parse(name)
		if err != nil {
			return assets.Options{}, fmt.Errorf("%w: %q: %v", assets.ErrConfiguration, name, err)
		}
		opts.Precompress = append(opts.Precompress, algo)
	}
	for _, set := range c.FileSets {
		opts.FileSets = append(opts.FileSets, assets.FileSet{
			Dir:               set.Dir,
			Includes:          set.Includes,
			Excludes:          set.Excludes,
			NoDefaultExcludes: set.NoDefaultExcludes,
		})
	}
	return opts, nil
}

// NewTask builds a task logging to log and using the configured CSS engine.
func (c *Config) NewTask(opts assets.Options, log *zap.Logger) (*assets.Task, error) {
	css, err := assets.NewCSSMinifier(c.CSSEngine)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", assets.ErrConfiguration, err)
	}
	task := assets.NewTask(opts, log)
	task.CSS = css
	return task, nil
}
