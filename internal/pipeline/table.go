package pipeline

import (
	"regexp"
	"strings"
)

// tablePattern matches a header row, a separator row and one or more data
// rows. The final row may end at the end of the input.
var tablePattern = regexp.MustCompile(`(?m)^\|.+\|\n\|[-:| ]+\|\n(?:\|.+\|(?:\n|\z))+`)

// Column alignments, used verbatim in the cell style attribute.
const (
	alignLeft   = "left"
	alignCenter = "center"
	alignRight  = "right"
)

// shieldTables renders every table and swaps it for a placeholder. Code
// tokens inside cells are expanded now because tables are restored last.
func shieldTables(text string, reg *registry) string {
	return tablePattern.ReplaceAllStringFunc(text, func(block string) string {
		token := reg.protect(kindTable, reg.expand(RenderTable(block)))
		if strings.HasSuffix(block, "\n") {
			token += "\n"
		}
		return token
	})
}

// RenderTable renders a pipe table block (header, separator, data rows) to
// HTML. Rows are never rejected for a cell count that differs from the
// header; columns without a separator cell are left-aligned.
func RenderTable(block string) string {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) < 2 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, cell := range splitRow(lines[0]) {
		b.WriteString("<th>" + cell + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	aligns := parseAlignments(lines[1])
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("<tr>")
		for i, cell := range splitRow(line) {
			align := alignLeft
			if i < len(aligns) {
				align = aligns[i]
			}
			b.WriteString(`<td style="text-align: ` + align + `">` + cell + "</td>")
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")
	return b.String()
}

// splitRow splits a row on pipes, drops the empty cells produced by the
// leading and trailing pipe, and trims each cell.
func splitRow(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// parseAlignments reads one alignment per separator cell.
func parseAlignments(separator string) []string {
	cells := splitRow(separator)
	aligns := make([]string, len(cells))
	for i, cell := range cells {
		switch {
		case strings.HasPrefix(cell, ":") && strings.HasSuffix(cell, ":"):
			aligns[i] = alignCenter
		case strings.HasSuffix(cell, ":"):
			aligns[i] = alignRight
		default:
			aligns[i] = alignLeft
		}
	}
	return aligns
}
