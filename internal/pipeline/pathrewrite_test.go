package pipeline

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestResolveLocalPaths(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("file URL expectations use Unix paths")
	}

	tests := []struct {
		name         string
		fragment     string
		baseDir      string
		wantContains []string
	}{
		{
			name:         "relative image",
			fragment:     `<p><img src="img/a.png" alt="a"></p>`,
			baseDir:      "/chat",
			wantContains: []string{`src="file:///chat/img/a.png"`, `alt="a"`},
		},
		{
			name:         "relative link",
			fragment:     `<a href="./notes.md" target="_blank">n</a>`,
			baseDir:      "/chat",
			wantContains: []string{`href="file:///chat/notes.md"`, `target="_blank"`},
		},
		{
			name:         "remote URL unchanged",
			fragment:     `<img src="https://example.com/a.png">`,
			baseDir:      "/chat",
			wantContains: []string{`src="https://example.com/a.png"`},
		},
		{
			name:         "mailto unchanged",
			fragment:     `<a href="mailto:a@b.c">m</a>`,
			baseDir:      "/chat",
			wantContains: []string{`href="mailto:a@b.c"`},
		},
		{
			name:         "anchor unchanged",
			fragment:     `<a href="#top">t</a>`,
			baseDir:      "/chat",
			wantContains: []string{`href="#top"`},
		},
		{
			name:         "traversal unchanged",
			fragment:     `<img src="../../etc/passwd">`,
			baseDir:      "/chat",
			wantContains: []string{`src="../../etc/passwd"`},
		},
		{
			name:         "absolute path unchanged",
			fragment:     `<img src="/abs/a.png">`,
			baseDir:      "/chat",
			wantContains: []string{`src="/abs/a.png"`},
		},
		{
			name:         "empty base dir is a no-op",
			fragment:     `<img src="a.png">`,
			baseDir:      "",
			wantContains: []string{`<img src="a.png">`},
		},
		{
			name:         "spaces are encoded",
			fragment:     `<img src="my pics/a b.png">`,
			baseDir:      "/chat",
			wantContains: []string{`src="file:///chat/my%20pics/a%20b.png"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveLocalPaths(tt.fragment, tt.baseDir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	base := filepath.FromSlash("/chat")
	tests := []struct {
		path string
		want bool
	}{
		{filepath.FromSlash("/chat/a.png"), true},
		{filepath.FromSlash("/chat"), true},
		{filepath.FromSlash("/chatroom/a.png"), false},
		{filepath.FromSlash("/etc/passwd"), false},
		{filepath.FromSlash("/chat/..hidden"), true},
	}

	for _, tt := range tests {
		if got := isWithin(tt.path, base); got != tt.want {
			t.Errorf("isWithin(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
