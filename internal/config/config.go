// Package config loads and validates the YAML configuration of the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxStyleLength     = 4096 // style name, CSS file path
	MaxHighlightLength = 64   // chroma style name
	MaxTitleLength     = 200  // document <title>
	MaxLangLength      = 35   // BCP 47 tag
	MaxPathLength      = 4096
	MaxWorkers         = 64
)

// Engines accepted in the engine field.
var Engines = []string{"chat", "gfm"}

// userConfigDirName is the directory searched under os.UserConfigDir.
const userConfigDirName = "go-md2html"

// Config holds all settings of a conversion run.
type Config struct {
	Engine    string          `yaml:"engine"`  // "chat" (default) or "gfm"
	Workers   int             `yaml:"workers"` // 0 = auto
	Timeout   string          `yaml:"timeout"` // Go duration, e.g. "30s"
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	CSS       CSSConfig       `yaml:"css"`
	Highlight HighlightConfig `yaml:"highlight"`
	Document  DocumentConfig  `yaml:"document"`
	PDF       PDFConfig       `yaml:"pdf"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // used when no input argument is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// CSSConfig selects the stylesheet injected into documents.
type CSSConfig struct {
	Style    string `yaml:"style"`    // style name, CSS file path, or empty for "chat"
	Disabled bool   `yaml:"disabled"` // no <style> block at all
}

// HighlightConfig enables chroma syntax highlighting of fenced code.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style, default "github"
}

// DocumentConfig controls the page built around the fragment.
type DocumentConfig struct {
	Fragment bool   `yaml:"fragment"` // write the bare fragment, no <html> wrapper
	Title    string `yaml:"title"`    // empty = first heading
	Lang     string `yaml:"lang"`     // empty = "en"
}

// PDFConfig enables PDF output next to the HTML.
type PDFConfig struct {
	Enabled bool `yaml:"enabled"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded styles only
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{Engine: Engines[0]}
}

// Validate checks enum values, ranges and field lengths.
// LoadConfig calls it; library users building a Config by hand should too.
func (c *Config) Validate() error {
	if c.Engine != "" && !isEngine(c.Engine) {
		return fmt.Errorf("%w: engine %q (must be one of %s)", ErrInvalidValue, c.Engine, strings.Join(Engines, ", "))
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"css.style", c.CSS.Style, MaxStyleLength},
		{"highlight.style", c.Highlight.Style, MaxHighlightLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.PDF.Enabled && c.Document.Fragment {
		return fmt.Errorf("%w: pdf.enabled requires a full document (document.fragment is true)", ErrInvalidValue)
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value yields zero, meaning the
// library default.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

func isEngine(name string) bool {
	for _, e := range Engines {
		if e == name {
			return true
		}
	}
	return false
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads a configuration from a file path or a config name.
// A value containing a path separator is read as a file; anything else is
// looked up by name (see resolveConfigPath). A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Engine == "" {
		cfg.Engine = Engines[0]
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup
// order: the current directory, then the user config directory, each with
// .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, userConfigDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
