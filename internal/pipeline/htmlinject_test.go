package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escape needed", "body { color: red; }", "body { color: red; }"},
		{"escapes style close", "</style>", `<\/style>`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "before head close",
			html:     "<html><head></head><body></body></html>",
			css:      "p{}",
			expected: "<html><head><style>p{}</style>\n</head><body></body></html>",
		},
		{
			name:     "after body open",
			html:     `<body class="x"><p>a</p></body>`,
			css:      "p{}",
			expected: `<body class="x"><style>p{}</style><p>a</p></body>`,
		},
		{
			name:     "fragment gets prepended",
			html:     "<p>a</p>",
			css:      "p{}",
			expected: "<style>p{}</style><p>a</p>",
		},
		{
			name:     "empty css is a no-op",
			html:     "<p>a</p>",
			css:      "",
			expected: "<p>a</p>",
		},
		{
			name:     "css cannot close the style element",
			html:     "<p>a</p>",
			css:      "</style><script>",
			expected: `<style><\/style><script></style><p>a</p>`,
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := injector.InjectCSS(context.Background(), tt.html, tt.css); got != tt.expected {
				t.Errorf("InjectCSS()\n got: %q\nwant: %q", got, tt.expected)
			}
		})
	}
}

func TestInjectCSS_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := (&CSSInjection{}).InjectCSS(ctx, "<p>a</p>", "p{}")
	if got != "<p>a</p>" {
		t.Errorf("expected unchanged HTML on canceled context, got %q", got)
	}
}

func TestWrapDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		fragment     string
		data         *DocumentData
		wantContains []string
	}{
		{
			name:     "explicit title is escaped",
			fragment: "<p>x</p>",
			data:     &DocumentData{Title: "<Q&A>"},
			wantContains: []string{
				"<!DOCTYPE html>",
				"<title>&lt;Q&amp;A&gt;</title>",
				`<main class="chat-message">` + "\n<p>x</p>\n</main>",
			},
		},
		{
			name:         "title from first heading",
			fragment:     "<h2>Release <em>notes</em></h2><p>x</p>",
			data:         nil,
			wantContains: []string{"<title>Release notes</title>"},
		},
		{
			name:         "default title",
			fragment:     "<p>x</p>",
			data:         &DocumentData{Title: "  "},
			wantContains: []string{"<title>" + DefaultDocumentTitle + "</title>", `<html lang="en">`},
		},
		{
			name:         "language",
			fragment:     "<p>x</p>",
			data:         &DocumentData{Lang: "fr"},
			wantContains: []string{`<html lang="fr">`},
		},
	}

	doc := &HTMLDocument{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := doc.WrapDocument(context.Background(), tt.fragment, tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("document missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestWrapDocument_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&HTMLDocument{}).WrapDocument(ctx, "<p>x</p>", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFirstHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fragment string
		want     string
	}{
		{"<h1>Hi &amp; <em>you</em></h1>", "Hi & you"},
		{`<h3 id="x">Third</h3><h1>First</h1>`, "Third"},
		{"<h4>Too deep</h4>", ""},
		{"<p>none</p>", ""},
	}

	for _, tt := range tests {
		if got := FirstHeading(tt.fragment); got != tt.want {
			t.Errorf("FirstHeading(%q) = %q, want %q", tt.fragment, got, tt.want)
		}
	}
}
