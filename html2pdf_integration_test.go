//go:build integration

package md2html

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConvert_PDF_Integration(t *testing.T) {
	dir := t.TempDir()
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), png, 0o644); err != nil {
		t.Fatal(err)
	}

	conv, err := NewConverter(WithHighlighting(""), WithTimeout(2*time.Minute))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	res, err := conv.Convert(context.Background(), Input{
		Markdown:  "# Report\n\n![logo](logo.png)\n\n```go\nfmt.Println(1)\n```\n\n|A|B|\n|---|---|\n|1|2|",
		SourceDir: dir,
		PDF:       true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !bytes.HasPrefix(res.PDF, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", res.PDF[:min(len(res.PDF), 16)])
	}
}

func TestConverterPool_PDF_Integration(t *testing.T) {
	pool := NewConverterPool(2)
	defer pool.Close()

	for i := 0; i < 3; i++ {
		conv, err := pool.Acquire()
		if err != nil {
			t.Fatal(err)
		}
		res, err := conv.Convert(context.Background(), Input{Markdown: "**hi**", PDF: true})
		pool.Release(conv)
		if err != nil {
			t.Fatalf("Convert() #%d error = %v", i, err)
		}
		if len(res.PDF) == 0 {
			t.Errorf("Convert() #%d returned no PDF", i)
		}
	}
}
