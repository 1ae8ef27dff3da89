package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Shielding patterns. Fence bodies may span lines but contain no backtick;
// inline code stays on one line and must not be empty.
var (
	fencePattern      = regexp.MustCompile("```([^`]*)```")
	fenceInfoLine     = regexp.MustCompile(`^([A-Za-z0-9_+#.-]+)[ \t]*\n`)
	inlineCodePattern = regexp.MustCompile("`([^`\n]+)`")
)

// ChatParser converts chat-message Markdown into an HTML fragment.
// It is safe for concurrent use: all per-call state lives in a registry
// created by Parse.
type ChatParser struct {
	code CodeRenderer
}

// ChatOption configures a ChatParser.
type ChatOption func(*ChatParser)

// WithCodeRenderer replaces the fenced-code renderer.
func WithCodeRenderer(r CodeRenderer) ChatOption {
	return func(p *ChatParser) {
		if r != nil {
			p.code = r
		}
	}
}

// NewChatParser creates a ChatParser. Without options, fenced code is
// rendered as escaped <pre><code> blocks.
func NewChatParser(opts ...ChatOption) *ChatParser {
	p := &ChatParser{code: PlainCodeRenderer{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultChatParser = NewChatParser()

// ParseChat converts text with the default ChatParser.
func ParseChat(text string) string {
	return defaultChatParser.Parse(text)
}

// Parse converts text to HTML. Empty input yields an empty string, and input
// that already looks like HTML is returned unchanged.
//
// Stage order matters: shielding runs before any rewriting, inline rules run
// before paragraph assembly, and placeholders are restored last.
func (p *ChatParser) Parse(text string) string {
	if text == "" {
		return ""
	}
	if looksLikeHTML(text) {
		return text
	}

	reg := newRegistry(text)
	out := normalizeLineEndings(text)

	out = p.shieldFences(out, reg)
	out = shieldInlineCode(out, reg)
	out = shieldTables(out, reg)

	out = convertHeadings(out)
	out = convertEmphasis(out)
	out = convertStrikethrough(out)
	out = convertLists(out)
	out = convertImagesAndLinks(out)
	out = convertRules(out)
	out = convertBlockquotes(out)

	out = assembleParagraphs(out, reg)
	return reg.restore(out)
}

// looksLikeHTML reports whether text already reads as rendered markup:
// it starts with '<' once trimmed and holds a closing tag somewhere.
// This is a heuristic and only applies to the whole input.
func looksLikeHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") && strings.Contains(text, "</")
}

func (p *ChatParser) shieldFences(text string, reg *registry) string {
	return fencePattern.ReplaceAllStringFunc(text, func(m string) string {
		lang, code := splitFenceBody(m[3 : len(m)-3])
		return reg.protect(kindFence, p.code.RenderCode(lang, code))
	})
}

// splitFenceBody separates an optional info word on the first line from the
// code, dropping the newline after the opening fence and before the closing one.
func splitFenceBody(body string) (lang, code string) {
	if loc := fenceInfoLine.FindStringSubmatchIndex(body); loc != nil {
		lang = body[loc[2]:loc[3]]
		body = body[loc[1]:]
	} else {
		body = strings.TrimPrefix(body, "\n")
	}
	return lang, strings.TrimSuffix(body, "\n")
}

func shieldInlineCode(text string, reg *registry) string {
	return inlineCodePattern.ReplaceAllStringFunc(text, func(m string) string {
		return reg.protect(kindInline, "<code>"+EscapeHTML(m[1:len(m)-1])+"</code>")
	})
}

// ChatConverter adapts a ChatParser to the HTMLConverter interface.
type ChatConverter struct {
	parser *ChatParser
}

// NewChatConverter wraps parser; a nil parser uses the defaults.
func NewChatConverter(parser *ChatParser) *ChatConverter {
	if parser == nil {
		parser = defaultChatParser
	}
	return &ChatConverter{parser: parser}
}

// ToHTML implements HTMLConverter. Parsing never fails; only a canceled
// context produces an error.
func (c *ChatConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.parser.Parse(content), nil
}
