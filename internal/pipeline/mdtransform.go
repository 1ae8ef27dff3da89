package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders for ==text== in the GFM engine. They survive goldmark
// untouched and become <mark> tags afterwards, so raw HTML stays disabled.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.+?)==`)
)

// MarkdownPreprocessor prepares Markdown before an engine sees it.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// GFMPreprocessor normalizes input for the goldmark engine.
// The chat engine does its own normalization and needs no preprocessing.
type GFMPreprocessor struct{}

// PreprocessMarkdown normalizes line endings, converts ==highlights== to
// placeholders and caps runs of blank lines at one.
func (p *GFMPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = normalizeLineEndings(content)
	content = highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"${1}"+MarkEndPlaceholder)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// normalizeLineEndings converts \r\n and lone \r to \n.
func normalizeLineEndings(content string) string {
	if !strings.Contains(content, "\r") {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ConvertMarkPlaceholders turns highlight placeholders into <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.NewReplacer(
		MarkStartPlaceholder, "<mark>",
		MarkEndPlaceholder, "</mark>",
	).Replace(content)
}
