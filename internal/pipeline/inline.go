package pipeline

import "regexp"

// Inline patterns. None of them crosses a line break except link and image
// labels, which follow the bracket-paren shape only.
var (
	strongEmPattern = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	strongPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	// An opening '*' followed by a blank is a list marker or arithmetic.
	emPattern     = regexp.MustCompile(`\*([^\s*].*?)\*`)
	strikePattern = regexp.MustCompile(`~~(.+?)~~`)

	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// convertEmphasis applies triple, double, then single asterisk spans so
// overlapping markers resolve to the most specific wrapping.
func convertEmphasis(text string) string {
	text = strongEmPattern.ReplaceAllString(text, "<strong><em>${1}</em></strong>")
	text = strongPattern.ReplaceAllString(text, "<strong>${1}</strong>")
	return emPattern.ReplaceAllString(text, "<em>${1}</em>")
}

func convertStrikethrough(text string) string {
	return strikePattern.ReplaceAllString(text, "<del>${1}</del>")
}

// convertImagesAndLinks handles images first: the leading '!' is the only
// thing telling them apart from links.
func convertImagesAndLinks(text string) string {
	text = imagePattern.ReplaceAllString(text, `<img src="${2}" alt="${1}">`)
	return linkPattern.ReplaceAllString(text, `<a href="${2}" target="_blank" rel="noopener noreferrer">${1}</a>`)
}
