package main

import (
	"io"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds stylesheet flags.
type styleFlags struct {
	style     string
	assetPath string
	disabled  bool
}

// highlightFlags holds syntax highlighting flags.
type highlightFlags struct {
	style    string // chroma style; set when --highlight is given
	disabled bool
}

// documentFlags holds flags for the page built around the fragment.
type documentFlags struct {
	title    string
	lang     string
	fragment bool
}

// convertFlags holds all flags of the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	timeout   string
	engine    string
	pdf       bool
	style     styleFlags
	highlight highlightFlags
	document  documentFlags

	highlightSet bool // --highlight appeared on the command line
}

// addCommonFlags adds flags shared by all commands to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/{name}.css")
	fs.BoolVar(&f.disabled, "no-style", false, "disable CSS styling")
}

// addHighlightFlags adds highlighting flags to a FlagSet. A bare --highlight
// selects the default chroma style.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight", "", "highlight fenced code with a chroma style")
	fs.Lookup("highlight").NoOptDefVal = md2html.DefaultHighlightStyle
	fs.BoolVar(&f.disabled, "no-highlight", false, "disable syntax highlighting")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first heading)")
	fs.StringVar(&f.lang, "lang", "", "document language (default \"en\")")
	fs.BoolVar(&f.fragment, "fragment", false, "write the HTML fragment without a document wrapper")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.engine, "engine", "e", "", "markdown engine: chat, gfm")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF next to each HTML file")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addHighlightFlags(fs, &f.highlight)
	addDocumentFlags(fs, &f.document)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.highlightSet = fs.Changed("highlight")

	return f, fs.Args(), nil
}
