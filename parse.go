package md2html

import "github.com/alnah/go-md2html/internal/pipeline"

// Parse converts chat-message Markdown to an HTML fragment.
//
// Empty input yields an empty string. Input that starts with '<' and
// contains a closing tag is treated as HTML and returned as is. Code spans
// and code blocks are HTML-escaped; all other text passes through verbatim.
func Parse(text string) string {
	return pipeline.ParseChat(text)
}

// RenderTable renders a single pipe table block (header row, separator row,
// data rows) to HTML. It is the same renderer Parse applies to tables.
func RenderTable(block string) string {
	return pipeline.RenderTable(block)
}

// EscapeHTML escapes &, <, >, " and ' for safe inclusion in HTML text.
func EscapeHTML(s string) string {
	return pipeline.EscapeHTML(s)
}
