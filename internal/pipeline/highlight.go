package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// CodeRenderer renders the body of a fenced code block to HTML.
// lang is the info word after the opening fence, empty if absent.
// Implementations must escape code themselves.
type CodeRenderer interface {
	RenderCode(lang, code string) string
}

// PlainCodeRenderer emits an escaped <pre><code> block.
type PlainCodeRenderer struct{}

// RenderCode implements CodeRenderer.
func (PlainCodeRenderer) RenderCode(lang, code string) string {
	if lang == "" {
		return "<pre><code>" + EscapeHTML(code) + "</code></pre>"
	}
	return `<pre><code class="language-` + EscapeHTML(lang) + `">` + EscapeHTML(code) + "</code></pre>"
}

// ChromaCodeRenderer highlights fenced code with chroma using CSS classes.
// Blocks without a recognized language fall back to PlainCodeRenderer.
type ChromaCodeRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaCodeRenderer creates a renderer for the named chroma style.
// Unknown style names resolve to chroma's fallback style.
func NewChromaCodeRenderer(styleName string) *ChromaCodeRenderer {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaCodeRenderer{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// RenderCode implements CodeRenderer.
func (c *ChromaCodeRenderer) RenderCode(lang, code string) string {
	if lang == "" {
		return PlainCodeRenderer{}.RenderCode(lang, code)
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return PlainCodeRenderer{}.RenderCode(lang, code)
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return PlainCodeRenderer{}.RenderCode(lang, code)
	}

	var buf strings.Builder
	if err := c.formatter.Format(&buf, c.style, iterator); err != nil {
		return PlainCodeRenderer{}.RenderCode(lang, code)
	}
	return buf.String()
}

// CSS returns the stylesheet matching the classes emitted by RenderCode.
func (c *ChromaCodeRenderer) CSS() (string, error) {
	var buf strings.Builder
	if err := c.formatter.WriteCSS(&buf, c.style); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Compile-time interface checks.
var (
	_ CodeRenderer = PlainCodeRenderer{}
	_ CodeRenderer = (*ChromaCodeRenderer)(nil)
)
