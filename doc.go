// Package md2html converts chat-message Markdown to HTML.
//
// # Quick Start
//
// Parse is the core entry point. It is pure, safe for concurrent use and
// never fails:
//
//	fragment := md2html.Parse("**Hello** from `main.go`")
//	// <p><strong>Hello</strong> from <code>main.go</code></p>
//
// # Conversion Pipeline
//
// Parse applies a fixed sequence of rewriting stages:
//
//  1. Code fences, inline code and pipe tables are rendered and shielded
//     behind placeholders
//  2. Headings, emphasis, strikethrough, lists, images and links, horizontal
//     rules and blockquotes are rewritten
//  3. Loose text is grouped into paragraphs
//  4. Shielded fragments are restored
//
// Input that already looks like HTML is returned unchanged.
//
// # Documents
//
// A Converter builds on Parse to produce standalone HTML documents with an
// embedded stylesheet, optional syntax highlighting and optional PDF output:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithStyle("dark"),
//	    md2html.WithHighlighting("monokai"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2html.Input{Markdown: text})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("chat.html", result.HTML, 0644)
//
// Two engines are available: EngineChat (the default, backed by Parse) and
// EngineGFM (GitHub Flavored Markdown through goldmark).
//
// # Parallel Processing
//
// A Converter owns at most one headless browser and must not be shared
// between goroutines. Use ConverterPool for batch work:
//
//	pool := md2html.NewConverterPool(md2html.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Errors
//
// Document operations return sentinel errors that can be checked with
// errors.Is:
//
//	if errors.Is(err, md2html.ErrBrowserConnect) {
//	    // Chrome could not start; retry without Input.PDF
//	}
package md2html
