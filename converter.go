package md2html

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Converter turns Markdown into HTML documents and, on request, PDF.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter must not be used from several goroutines at once; see
// ConverterPool.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	htmlConverter pipeline.HTMLConverter
	document      pipeline.DocumentWrapper
	cssInjector   pipeline.CSSInjector
	pdfConverter  pdfConverter
	highlightCSS  string
}

// NewConverter creates a Converter. Without options it uses the chat engine,
// the built-in "chat" style and no highlighting.
// Returns an error for an unknown engine, an invalid asset path, or a style
// that cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			engine:  EngineChat,
			timeout: defaultTimeout,
		},
		document:    &pipeline.HTMLDocument{},
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	engine, err := ParseEngine(string(c.cfg.engine))
	if err != nil {
		return nil, err
	}
	c.cfg.engine = engine

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	c.assetLoader = resolver

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if err := c.initEngine(); err != nil {
		return nil, err
	}

	// Created lazily by the renderer: no browser starts until a PDF is requested.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// initEngine builds the HTML converter for the configured engine. With
// highlighting, both engines emit chroma classes and the matching
// stylesheet is kept for injection.
func (c *Converter) initEngine() error {
	if c.htmlConverter != nil {
		return nil
	}

	highlightStyle := ""
	if c.cfg.highlight {
		highlightStyle = c.cfg.highlightStyle
		if highlightStyle == "" {
			highlightStyle = pipeline.DefaultHighlightStyle
		}
		css, err := pipeline.NewChromaCodeRenderer(highlightStyle).CSS()
		if err != nil {
			return fmt.Errorf("generating highlight CSS for %q: %w", highlightStyle, err)
		}
		c.highlightCSS = css
	}

	switch c.cfg.engine {
	case EngineGFM:
		c.htmlConverter = pipeline.NewGoldmarkConverter(highlightStyle)
	default:
		var parser *pipeline.ChatParser
		if highlightStyle != "" {
			parser = pipeline.NewChatParser(pipeline.WithCodeRenderer(pipeline.NewChromaCodeRenderer(highlightStyle)))
		}
		c.htmlConverter = pipeline.NewChatConverter(parser)
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. No input selects DefaultStyle.
func (c *Converter) resolveStyle() error {
	if c.cfg.noStyle {
		c.cfg.resolvedStyle = ""
		return nil
	}

	input := strings.TrimSpace(c.cfg.styleInput)
	if input == "" {
		input = DefaultStyle
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// File path? (contains / or \, or names a .css file)
	if fileutil.IsFilePath(input) || strings.HasSuffix(strings.ToLower(input), ".css") {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// Convert runs the pipeline for one input. The context is used for
// cancellation; the converter timeout bounds the whole call.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	fragment, err := c.htmlConverter.ToHTML(ctx, input.Markdown)
	if err != nil {
		if errors.Is(err, pipeline.ErrHTMLConversion) {
			return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	res := &ConvertResult{Fragment: fragment}
	if input.Fragment {
		res.HTML = []byte(fragment)
		return res, nil
	}

	doc, err := c.buildDocument(ctx, fragment, input)
	if err != nil {
		return nil, err
	}
	res.HTML = []byte(doc)

	if !input.PDF {
		return res, nil
	}

	// The browser loads a temp file, so local references must be absolute.
	printable := doc
	if input.SourceDir != "" {
		resolved, err := pipeline.ResolveLocalPaths(fragment, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("resolving local paths: %w", err)
		}
		if printable, err = c.buildDocument(ctx, resolved, input); err != nil {
			return nil, err
		}
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, printable)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// buildDocument wraps fragment in a page and injects the combined CSS.
// Order matters: converter style first, highlighting next, input CSS last
// so it can override both.
func (c *Converter) buildDocument(ctx context.Context, fragment string, input Input) (string, error) {
	title := input.Title
	if title == "" {
		title = c.cfg.title
	}

	doc, err := c.document.WrapDocument(ctx, fragment, &pipeline.DocumentData{
		Title: title,
		Lang:  c.cfg.lang,
	})
	if err != nil {
		return "", fmt.Errorf("building document: %w", err)
	}

	var css []string
	for _, part := range []string{c.cfg.resolvedStyle, c.highlightCSS, input.CSS} {
		if strings.TrimSpace(part) != "" {
			css = append(css, part)
		}
	}

	doc = c.cssInjector.InjectCSS(ctx, doc, strings.Join(css, "\n"))
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return doc, nil
}

// validateInput checks that required fields are present and consistent.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if input.PDF && input.Fragment {
		return ErrFragmentPDF
	}
	return nil
}

// Close releases resources (headless Chrome browser, if one was started).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
