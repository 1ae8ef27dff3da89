package pipeline

import "strings"

// codeEscaper escapes text placed inside code regions. A single-pass replacer
// gives the same result as substituting &, <, >, ", ' in that order.
var codeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML-significant characters.
func EscapeHTML(s string) string {
	return codeEscaper.Replace(s)
}
