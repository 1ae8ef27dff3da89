package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"
)

// ErrDocumentRender indicates the document template failed to execute.
var ErrDocumentRender = errors.New("document template rendering failed")

// DefaultDocumentTitle is used when no title is given and the fragment has no heading.
const DefaultDocumentTitle = "Chat"

// documentTemplate wraps a rendered fragment in a standalone HTML5 page.
// Body is trusted output of an engine; Title is escaped by html/template.
var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<main class="chat-message">
{{.Body}}
</main>
</body>
</html>
`))

var (
	firstHeadingPattern = regexp.MustCompile(`(?is)<h[1-3][^>]*>(.*?)</h[1-3]>`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
)

// DocumentData describes the page built around a fragment.
type DocumentData struct {
	Title string
	Lang  string
}

// DocumentWrapper builds a full HTML document from a fragment.
type DocumentWrapper interface {
	WrapDocument(ctx context.Context, fragment string, data *DocumentData) (string, error)
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// HTMLDocument implements DocumentWrapper with an embedded template.
type HTMLDocument struct{}

// WrapDocument renders fragment inside the document template. A nil data or
// an empty title falls back to the first heading of the fragment, then to
// DefaultDocumentTitle.
func (d *HTMLDocument) WrapDocument(ctx context.Context, fragment string, data *DocumentData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := struct {
		Title string
		Lang  string
		Body  template.HTML
	}{
		Title: DefaultDocumentTitle,
		Lang:  "en",
		Body:  template.HTML(fragment), //nolint:gosec // engine output
	}
	if data != nil && data.Lang != "" {
		view.Lang = data.Lang
	}
	switch {
	case data != nil && strings.TrimSpace(data.Title) != "":
		view.Title = strings.TrimSpace(data.Title)
	case FirstHeading(fragment) != "":
		view.Title = FirstHeading(fragment)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// FirstHeading returns the plain text of the first h1 to h3 in fragment,
// or an empty string.
func FirstHeading(fragment string) string {
	m := firstHeadingPattern.FindStringSubmatch(fragment)
	if m == nil {
		return ""
	}
	text := html.UnescapeString(htmlTagPattern.ReplaceAllString(m[1], ""))
	return strings.TrimSpace(text)
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, after <body>, or in front
// of the content, whichever is found first. CSS is sanitized so it cannot
// close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + "\n" + htmlContent[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(htmlContent[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + styleBlock + htmlContent[pos:]
		}
	}
	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the stylesheet cannot terminate its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var (
	_ DocumentWrapper = (*HTMLDocument)(nil)
	_ CSSInjector     = (*CSSInjection)(nil)
)
