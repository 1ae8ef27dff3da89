package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrInvalidFlags  = errors.New("invalid flags")
	ErrReadMarkdown  = errors.New("failed to read markdown file")
	ErrWriteOutput   = errors.New("failed to write output file")
	ErrStdinDirOut   = errors.New("stdin input cannot be written to a directory")
	ErrNoMarkdown    = errors.New("no markdown files found")
	ErrFailedConvert = errors.New("conversion failed")
)

// stdinArg selects standard input as the source and standard output as the sink.
const stdinArg = "-"

// runConvertCmd parses flags, loads configuration and converts the input.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags, env)
	if err != nil {
		return err
	}

	configureMaxProcs(flags.common.verbose, env.Stderr)

	opts, err := converterOptions(cfg)
	if err != nil {
		return err
	}

	if len(positional) == 1 && positional[0] == stdinArg {
		return convertStdin(ctx, flags, cfg, opts, env)
	}

	pool := newConverterPool(md2html.ResolvePoolSize(cfg.Workers), opts...)
	defer pool.Close()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", pool.Size())
	}

	return runConvert(ctx, positional, flags, cfg, pool, env)
}

// loadConfig builds the effective configuration.
// Precedence: CLI flags > env vars > config file > defaults.
func loadConfig(flags *convertFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.engine != "" {
		cfg.Engine = strings.ToLower(strings.TrimSpace(flags.engine))
	}
	if flags.pdf {
		cfg.PDF.Enabled = true
	}

	// Style flags
	if flags.style.style != "" {
		cfg.CSS.Style = flags.style.style
	}
	if flags.style.disabled {
		cfg.CSS.Disabled = true
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}

	// Highlight flags: --no-highlight wins over config and --highlight
	if flags.highlightSet {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Style = flags.highlight.style
	}
	if flags.highlight.disabled {
		cfg.Highlight.Enabled = false
	}

	// Document flags
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}
	if flags.document.fragment {
		cfg.Document.Fragment = true
	}
}

// converterOptions translates the configuration to library options.
func converterOptions(cfg *config.Config) ([]md2html.Option, error) {
	engine, err := md2html.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	opts := []md2html.Option{md2html.WithEngine(engine)}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, md2html.WithTimeout(timeout))
	}

	if cfg.CSS.Disabled {
		opts = append(opts, md2html.WithoutStyle())
	} else if cfg.CSS.Style != "" {
		opts = append(opts, md2html.WithStyle(cfg.CSS.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2html.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, md2html.WithHighlighting(cfg.Highlight.Style))
	}
	if cfg.Document.Title != "" {
		opts = append(opts, md2html.WithDocumentTitle(cfg.Document.Title))
	}
	if cfg.Document.Lang != "" {
		opts = append(opts, md2html.WithLanguage(cfg.Document.Lang))
	}
	return opts, nil
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota before the
// pool is sized. The library logs only in verbose mode.
func configureMaxProcs(verbose bool, w io.Writer) {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// runConvert discovers the input files and converts them through the pool.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, cfg *config.Config, pool Pool, env *Environment) error {
	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputPath := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdown, inputPath)
	}

	params := &conversionParams{
		fragment: cfg.Document.Fragment,
		pdf:      cfg.PDF.Enabled,
		now:      env.Now,
	}
	results := convertBatch(ctx, pool, files, params)

	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		if failed == 1 && len(results) == 1 {
			// A single file reports its own cause so the exit code matches it.
			return results[0].Err
		}
		return fmt.Errorf("%w: %d of %d file(s)", ErrFailedConvert, failed, len(results))
	}
	return nil
}

// resolveInputPath returns the input argument, or the configured default
// input directory when no argument is given.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlags, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	default:
		return "", ErrNoInput
	}
}

// resolveOutputDir returns the --output flag, or the configured default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// convertStdin converts standard input and writes the result to standard
// output, or to --output when it names a file.
func convertStdin(ctx context.Context, flags *convertFlags, cfg *config.Config, opts []md2html.Option, env *Environment) error {
	if cfg.PDF.Enabled && flags.output == "" {
		return fmt.Errorf("%w: --pdf with stdin input needs --output", ErrInvalidFlags)
	}

	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	conv, err := md2html.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer conv.Close()

	start := env.Now()
	res, err := conv.Convert(ctx, md2html.Input{
		Markdown: string(content),
		Fragment: cfg.Document.Fragment,
		PDF:      cfg.PDF.Enabled,
	})
	if err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := env.Stdout.Write(res.HTML); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if isDirTarget(flags.output) {
		return fmt.Errorf("%w: %s", ErrStdinDirOut, flags.output)
	}
	if err := writeOutputs(flags.output, res); err != nil {
		return err
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "stdin -> %s (%v)\n", flags.output, env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}
