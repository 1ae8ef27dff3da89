package pipeline

import (
	"regexp"
	"strings"
)

// Block-level patterns. All operate line by line on LF-normalized text.
var (
	h3Pattern = regexp.MustCompile(`(?m)^### (.*)$`)
	h2Pattern = regexp.MustCompile(`(?m)^## (.*)$`)
	h1Pattern = regexp.MustCompile(`(?m)^# (.*)$`)

	// A run of contiguous marker lines, including the trailing newline.
	orderedRunPattern   = regexp.MustCompile(`(?m)^(?:\d+\. .+(?:\n|$))+`)
	orderedMarker       = regexp.MustCompile(`(?m)^\d+\. `)
	unorderedRunPattern = regexp.MustCompile(`(?m)^(?:[*-] .+(?:\n|$))+`)
	unorderedMarker     = regexp.MustCompile(`(?m)^[*-] `)

	rulePattern = regexp.MustCompile(`(?m)^---+$`)

	blockquoteRunPattern = regexp.MustCompile(`(?m)^>.*(?:\n>.*)*`)
	blockquoteMarker     = regexp.MustCompile(`(?m)^>[ \t]*`)
)

// convertHeadings rewrites #, ## and ### lines. Deeper runs stay literal.
func convertHeadings(text string) string {
	text = h3Pattern.ReplaceAllString(text, "<h3>${1}</h3>")
	text = h2Pattern.ReplaceAllString(text, "<h2>${1}</h2>")
	return h1Pattern.ReplaceAllString(text, "<h1>${1}</h1>")
}

// convertLists turns runs of ordered lines, then runs of unordered lines,
// into one list each. Switching marker style starts a new list.
func convertLists(text string) string {
	text = orderedRunPattern.ReplaceAllStringFunc(text, func(run string) string {
		return renderList("ol", run, orderedMarker)
	})
	return unorderedRunPattern.ReplaceAllStringFunc(text, func(run string) string {
		return renderList("ul", run, unorderedMarker)
	})
}

func renderList(tag, run string, marker *regexp.Regexp) string {
	var b strings.Builder
	b.WriteString("<" + tag + ">")
	for _, item := range marker.Split(run, -1) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		b.WriteString("<li>" + item + "</li>")
	}
	b.WriteString("</" + tag + ">")
	// Keep the line break so the next line still starts a line.
	if strings.HasSuffix(run, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}

func convertRules(text string) string {
	return rulePattern.ReplaceAllString(text, "<hr>")
}

// convertBlockquotes merges each run of '>' lines into one blockquote,
// stripping the marker and the blanks after it.
func convertBlockquotes(text string) string {
	return blockquoteRunPattern.ReplaceAllStringFunc(text, func(run string) string {
		content := strings.TrimSpace(blockquoteMarker.ReplaceAllString(run, ""))
		return "<blockquote>" + content + "</blockquote>"
	})
}
