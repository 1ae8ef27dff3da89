package pipeline

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Placeholder delimiters come from the Private Use Areas, like the highlight
// markers. U+E000 and U+E001 are reserved for those, so the search starts
// above them. The plane 15 range is only consulted when the input already uses
// every BMP candidate.
const (
	delimBMPStart    rune = '\uE100'
	delimBMPEnd      rune = '\uF8FF'
	delimPlane15From rune = 0xF0000
	delimPlane15To   rune = 0xFFFFD
)

// protectedKind names one placeholder namespace.
type protectedKind byte

const (
	kindFence  protectedKind = 'F'
	kindInline protectedKind = 'C'
	kindTable  protectedKind = 'T'
)

// registry holds the fragments shielded during a single Parse call.
// Tokens look like <delim><kind><index><delim>; delim never occurs in the
// input, so a token cannot collide with user text or generated markup.
type registry struct {
	delim   rune
	fences  []string
	inlines []string
	tables  []string
}

func newRegistry(text string) *registry {
	return &registry{delim: pickDelimiter(text)}
}

// pickDelimiter returns the first Private Use Area rune absent from text.
func pickDelimiter(text string) rune {
	var used map[rune]bool
	for _, r := range text {
		if (r >= delimBMPStart && r <= delimBMPEnd) || (r >= delimPlane15From && r <= delimPlane15To) {
			if used == nil {
				used = make(map[rune]bool)
			}
			used[r] = true
		}
	}
	for r := delimBMPStart; r <= delimBMPEnd; r++ {
		if !used[r] {
			return r
		}
	}
	for r := delimPlane15From; r <= delimPlane15To; r++ {
		if !used[r] {
			return r
		}
	}
	return delimBMPStart
}

func (r *registry) token(kind protectedKind, index int) string {
	d := string(r.delim)
	return d + string(rune(kind)) + strconv.Itoa(index) + d
}

func (r *registry) list(kind protectedKind) *[]string {
	switch kind {
	case kindFence:
		return &r.fences
	case kindInline:
		return &r.inlines
	default:
		return &r.tables
	}
}

// protect stores fragment and returns the token standing in for it.
func (r *registry) protect(kind protectedKind, fragment string) string {
	l := r.list(kind)
	*l = append(*l, fragment)
	return r.token(kind, len(*l)-1)
}

// expand substitutes fence and inline-code tokens found in s.
// Used on table fragments, which are restored after the other two registries.
func (r *registry) expand(s string) string {
	return r.substitute(s, false)
}

// restore puts every fragment back. Only the first occurrence of a token is
// replaced; tokens that are no longer present are skipped.
func (r *registry) restore(s string) string {
	return r.substitute(s, true)
}

// substitute replaces tokens in a single left-to-right pass. Restored
// fragments never hold tokens of their own (table fragments are expanded when
// registered), so one pass gives the same result as restoring fences, inline
// code and tables in turn.
func (r *registry) substitute(s string, tables bool) string {
	if !strings.ContainsRune(s, r.delim) {
		return s
	}

	width := utf8.RuneLen(r.delim)
	used := map[protectedKind][]bool{
		kindFence:  make([]bool, len(r.fences)),
		kindInline: make([]bool, len(r.inlines)),
		kindTable:  make([]bool, len(r.tables)),
	}

	var b strings.Builder
	b.Grow(len(s))
	last, i := 0, 0
	for {
		j := strings.IndexRune(s[i:], r.delim)
		if j < 0 {
			break
		}
		start := i + j
		end, kind, ok := r.scanToken(s, start+width, width)
		if !ok {
			i = start + width
			continue
		}
		i = end
		if kind == kindTable && !tables {
			continue
		}

		digits := s[start+width+1 : end-width]
		if len(digits) > 1 && digits[0] == '0' {
			continue
		}
		idx, err := strconv.Atoi(digits)
		list := *r.list(kind)
		if err != nil || idx >= len(list) || used[kind][idx] {
			continue
		}
		used[kind][idx] = true

		b.WriteString(s[last:start])
		b.WriteString(list[idx])
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// segment is a slice of text tagged as a block token or loose text.
type segment struct {
	text  string
	block bool
}

// splitBlocks cuts text around fence and table tokens, which render as block
// elements and must not end up inside a paragraph.
func (r *registry) splitBlocks(text string) []segment {
	var segs []segment
	width := utf8.RuneLen(r.delim)
	last, i := 0, 0
	for {
		j := strings.IndexRune(text[i:], r.delim)
		if j < 0 {
			break
		}
		start := i + j
		end, kind, ok := r.scanToken(text, start+width, width)
		if !ok {
			i = start + width
			continue
		}
		if kind == kindInline {
			i = end
			continue
		}
		if start > last {
			segs = append(segs, segment{text: text[last:start]})
		}
		segs = append(segs, segment{text: text[start:end], block: true})
		last, i = end, end
	}
	if last < len(text) {
		segs = append(segs, segment{text: text[last:]})
	}
	return segs
}

// scanToken parses <kind><digits><delim> at pos and returns the end offset.
func (r *registry) scanToken(text string, pos, width int) (int, protectedKind, bool) {
	if pos >= len(text) {
		return 0, 0, false
	}
	kind := protectedKind(text[pos])
	if kind != kindFence && kind != kindInline && kind != kindTable {
		return 0, 0, false
	}
	k := pos + 1
	for k < len(text) && text[k] >= '0' && text[k] <= '9' {
		k++
	}
	if k == pos+1 || !strings.HasPrefix(text[k:], string(r.delim)) {
		return 0, 0, false
	}
	return k + width, kind, true
}
