package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Tags that delimit block elements. <hr> is void and opens nothing.
	blockTagPattern = regexp.MustCompile(`(?i)</?(?:h[1-6]|ul|ol|li|blockquote|div|pre|table|tr|td|th)\b[^>]*>|<hr\b[^>]*>`)

	// One or more fully empty lines.
	paragraphBreak = regexp.MustCompile(`\n{2,}`)
)

// assembleParagraphs wraps loose text in <p> elements. Text inside a block
// element passes through untouched; nesting is tracked with a depth counter
// that never goes below zero, so a stray closing tag cannot disable wrapping.
func assembleParagraphs(text string, reg *registry) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)

	depth, last := 0, 0
	for _, loc := range blockTagPattern.FindAllStringIndex(text, -1) {
		between, tag := text[last:loc[0]], text[loc[0]:loc[1]]
		if depth == 0 {
			writeLoose(&b, between, reg)
		} else {
			b.WriteString(between)
		}
		b.WriteString(tag)

		switch {
		case strings.HasPrefix(tag, "</"):
			if depth > 0 {
				depth--
			}
		case isVoidBlockTag(tag):
		default:
			depth++
		}
		last = loc[1]
	}

	if depth == 0 {
		writeLoose(&b, text[last:], reg)
	} else {
		b.WriteString(text[last:])
	}
	return b.String()
}

func isVoidBlockTag(tag string) bool {
	return strings.HasSuffix(tag, "/>") || strings.HasPrefix(strings.ToLower(tag), "<hr")
}

// writeLoose emits block tokens as they are and splits the remaining text on
// blank lines into paragraphs. Whitespace-only pieces produce nothing.
func writeLoose(b *strings.Builder, text string, reg *registry) {
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, seg := range reg.splitBlocks(text) {
		if seg.block {
			b.WriteString(seg.text)
			continue
		}
		for _, para := range paragraphBreak.Split(seg.text, -1) {
			if para = strings.TrimSpace(para); para != "" {
				b.WriteString("<p>" + para + "</p>")
			}
		}
	}
}
