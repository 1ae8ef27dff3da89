// Package pipeline implements the Markdown-to-HTML conversion stages.
//
// Two engines live here:
//   - ChatParser, a staged rewriter for chat-message Markdown. It shields code
//     and tables behind placeholders, rewrites block and inline constructs in a
//     fixed order, wraps loose text in paragraphs, and restores the shielded
//     fragments last. It is a pure function of its input. Fenced code is
//     not kept verbatim: a first-line info word becomes a language-X class,
//     and the newlines next to the fences are dropped.
//   - GoldmarkConverter, a CommonMark/GFM engine backed by goldmark for callers
//     who need full CommonMark compliance.
//
// Document assembly (HTML5 template, CSS injection, local path rewriting) is
// shared by both engines. PDF rendering is handled by the root md2html package.
package pipeline
