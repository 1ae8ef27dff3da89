package md2html

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// DefaultHighlightStyle is the chroma style used by WithHighlighting("").
const DefaultHighlightStyle = pipeline.DefaultHighlightStyle

// Engine selects the Markdown dialect used by a Converter.
type Engine string

// Available engines.
const (
	// EngineChat is the chat-message dialect implemented by Parse.
	EngineChat Engine = "chat"

	// EngineGFM is GitHub Flavored Markdown rendered by goldmark.
	EngineGFM Engine = "gfm"
)

// Engines lists the valid engine names.
func Engines() []Engine {
	return []Engine{EngineChat, EngineGFM}
}

// ParseEngine converts a name to an Engine. Matching ignores case and
// surrounding blanks; an empty name selects EngineChat.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(EngineChat):
		return EngineChat, nil
	case string(EngineGFM):
		return EngineGFM, nil
	default:
		return "", fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, name, EngineChat, EngineGFM)
	}
}

// Input contains the data for a single conversion.
type Input struct {
	Markdown  string // Markdown text (required)
	CSS       string // extra CSS appended after the converter style
	SourceDir string // directory of the source file, for local images in PDF output
	Title     string // document title, overrides the converter title
	Fragment  bool   // skip the document wrapper and return the fragment only
	PDF       bool   // also render the document to PDF
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	Fragment string // HTML produced by the engine, without wrapper or style
	HTML     []byte // the full document, or the fragment when Input.Fragment is set
	PDF      []byte // nil unless Input.PDF was set
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine         Engine
	timeout        time.Duration
	styleInput     string // name, file path, or CSS content
	resolvedStyle  string
	noStyle        bool
	assetPath      string
	highlight      bool
	highlightStyle string
	title          string
	lang           string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithEngine selects the Markdown engine. NewConverter rejects unknown values.
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = e
	}
}

// WithStyle sets the document stylesheet. The value can be the name of an
// embedded or custom style ("chat", "dark"), a path to a CSS file, or CSS
// content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithoutStyle disables the stylesheet. Highlighting CSS and Input.CSS are
// still injected.
func WithoutStyle() Option {
	return func(c *Converter) {
		c.cfg.noStyle = true
	}
}

// WithHighlighting enables syntax highlighting of fenced code with the named
// chroma style. An empty style selects the default.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath sets a directory holding custom styles under styles/{name}.css.
// Embedded styles remain available as a fallback.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithDocumentTitle sets the default document title. Input.Title overrides it.
func WithDocumentTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.title = title
	}
}

// WithLanguage sets the lang attribute of generated documents.
func WithLanguage(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}
