package main

// Notes:
// - mockPool and mockConverter stand in for the browser-backed pool so batch
//   ordering, failure accounting and output writing are tested in isolation.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	md2html "github.com/alnah/go-md2html"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockConverter struct {
	convert func(input md2html.Input) (*md2html.ConvertResult, error)

	mu     sync.Mutex
	inputs []md2html.Input
}

func (m *mockConverter) Convert(_ context.Context, input md2html.Input) (*md2html.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()
	if m.convert != nil {
		return m.convert(input)
	}
	return &md2html.ConvertResult{HTML: []byte("<p>" + strings.TrimSpace(input.Markdown) + "</p>")}, nil
}

type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	acquired atomic.Int32
	released atomic.Int32
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired.Add(1)
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) { p.released.Add(1) }

func (p *mockPool) Size() int { return p.size }

func fixedNow() func() time.Time {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

// writeInputs creates one markdown file per content and returns the jobs.
func writeInputs(t *testing.T, contents ...string) []FileToConvert {
	t.Helper()
	dir := t.TempDir()
	files := make([]FileToConvert, len(contents))
	for i, c := range contents {
		name := string(rune('a'+i)) + ".md"
		in := filepath.Join(dir, name)
		writeFile(t, in, c)
		files[i] = FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "out", strings.TrimSuffix(name, ".md")+".html")}
	}
	return files
}

// ---------------------------------------------------------------------------
// TestConvertBatch
// ---------------------------------------------------------------------------

func TestConvertBatch_KeepsOrderAndWrites(t *testing.T) {
	t.Parallel()

	files := writeInputs(t, "one", "two", "three", "four")
	pool := &mockPool{conv: &mockConverter{}, size: 3}

	results := convertBatch(context.Background(), pool, files, &conversionParams{now: fixedNow()})

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err)
		}
		if r.InputPath != files[i].InputPath {
			t.Errorf("result %d InputPath = %q, want %q", i, r.InputPath, files[i].InputPath)
		}
	}
	if got := readFile(t, files[2].OutputPath); got != "<p>three</p>" {
		t.Errorf("output = %q", got)
	}
	if pool.acquired.Load() != pool.released.Load() {
		t.Errorf("acquired %d, released %d", pool.acquired.Load(), pool.released.Load())
	}
	if pool.acquired.Load() > 3 {
		t.Errorf("acquired %d converters, pool size is 3", pool.acquired.Load())
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &mockPool{size: 1}, nil, &conversionParams{}); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertBatch_AcquireFailure(t *testing.T) {
	t.Parallel()

	files := writeInputs(t, "a", "b")
	errBoom := errors.New("no browser")
	pool := &mockPool{size: 2, acquireErr: errBoom}

	for i, r := range convertBatch(context.Background(), pool, files, &conversionParams{}) {
		if !errors.Is(r.Err, errBoom) {
			t.Errorf("result %d: error = %v, want %v", i, r.Err, errBoom)
		}
	}
}

func TestConvertBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	files := writeInputs(t, "a", "b")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &mockConverter{}
	for i, r := range convertBatch(ctx, &mockPool{conv: conv, size: 1}, files, &conversionParams{}) {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d: error = %v, want context.Canceled", i, r.Err)
		}
	}
	if len(conv.inputs) != 0 {
		t.Errorf("converter called %d times after cancel", len(conv.inputs))
	}
}

// ---------------------------------------------------------------------------
// TestConvertFile
// ---------------------------------------------------------------------------

func TestConvertFile_PassesInput(t *testing.T) {
	t.Parallel()

	files := writeInputs(t, "hello")
	conv := &mockConverter{convert: func(md2html.Input) (*md2html.ConvertResult, error) {
		return &md2html.ConvertResult{HTML: []byte("<html></html>"), PDF: []byte("%PDF-1.7")}, nil
	}}

	r := convertFile(context.Background(), conv, files[0], &conversionParams{pdf: true, now: fixedNow()})
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}

	in := conv.inputs[0]
	if in.Markdown != "hello" || !in.PDF || in.Fragment {
		t.Errorf("input = %+v", in)
	}
	if in.SourceDir != filepath.Dir(files[0].InputPath) {
		t.Errorf("SourceDir = %q, want the input directory", in.SourceDir)
	}

	wantPDF := pdfOutputPath(files[0].OutputPath)
	if r.PDFPath != wantPDF {
		t.Errorf("PDFPath = %q, want %q", r.PDFPath, wantPDF)
	}
	if got := readFile(t, wantPDF); got != "%PDF-1.7" {
		t.Errorf("pdf = %q", got)
	}
}

func TestConvertFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		f := FileToConvert{InputPath: filepath.Join(t.TempDir(), "gone.md"), OutputPath: "x.html"}
		r := convertFile(context.Background(), &mockConverter{}, f, &conversionParams{})
		if !errors.Is(r.Err, ErrReadMarkdown) || !errors.Is(r.Err, os.ErrNotExist) {
			t.Errorf("error = %v, want ErrReadMarkdown wrapping os.ErrNotExist", r.Err)
		}
	})

	t.Run("converter error", func(t *testing.T) {
		t.Parallel()

		files := writeInputs(t, "x")
		conv := &mockConverter{convert: func(md2html.Input) (*md2html.ConvertResult, error) {
			return nil, md2html.ErrEmptyMarkdown
		}}
		r := convertFile(context.Background(), conv, files[0], &conversionParams{})
		if !errors.Is(r.Err, md2html.ErrEmptyMarkdown) {
			t.Errorf("error = %v, want ErrEmptyMarkdown", r.Err)
		}
		if _, err := os.Stat(files[0].OutputPath); !os.IsNotExist(err) {
			t.Error("no output should be written on failure")
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()

		files := writeInputs(t, "x")
		blocker := filepath.Join(t.TempDir(), "file")
		writeFile(t, blocker, "")
		files[0].OutputPath = filepath.Join(blocker, "out.html")

		r := convertFile(context.Background(), &mockConverter{}, files[0], &conversionParams{})
		if !errors.Is(r.Err, ErrWriteOutput) {
			t.Errorf("error = %v, want ErrWriteOutput", r.Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResults
// ---------------------------------------------------------------------------

func TestPrintResultsWithWriter(t *testing.T) {
	t.Parallel()

	ok := ConversionResult{InputPath: "a.md", OutputPath: "a.html", Duration: 12 * time.Millisecond}
	withPDF := ConversionResult{InputPath: "b.md", OutputPath: "b.html", PDFPath: "b.pdf"}
	bad := ConversionResult{InputPath: "c.md", Err: errors.New("boom")}

	tests := []struct {
		name       string
		results    []ConversionResult
		quiet      bool
		verbose    bool
		wantFailed int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "single success",
			results:    []ConversionResult{ok},
			wantStdout: "Created a.html\n",
		},
		{
			name:       "single failure is left to the caller",
			results:    []ConversionResult{bad},
			wantFailed: 1,
		},
		{
			name:       "batch with pdf and failure",
			results:    []ConversionResult{ok, withPDF, bad},
			wantFailed: 1,
			wantStdout: "Created a.html\nCreated b.html\nCreated b.pdf\n\n2 succeeded, 1 failed\n",
			wantStderr: "FAILED c.md: boom\n",
		},
		{
			name:       "verbose",
			results:    []ConversionResult{ok},
			verbose:    true,
			wantStdout: "a.md -> a.html (12ms)\n",
		},
		{
			name:       "quiet keeps failures",
			results:    []ConversionResult{ok, bad},
			quiet:      true,
			wantFailed: 1,
			wantStderr: "FAILED c.md: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil, "")
			failed := printResultsWithWriter(tt.results, tt.quiet, tt.verbose, env.Environment)
			if failed != tt.wantFailed {
				t.Errorf("failed = %d, want %d", failed, tt.wantFailed)
			}
			if env.stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", env.stdout, tt.wantStdout)
			}
			if env.stderr.String() != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", env.stderr, tt.wantStderr)
			}
		})
	}
}
