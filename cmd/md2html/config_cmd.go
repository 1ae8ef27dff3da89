package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// defaultConfigName is the config name suggested in hints.
const defaultConfigName = "md2html"

// runConfigCmd prints the effective configuration as YAML. It accepts the
// convert flags, so `md2html config --style dark --pdf` shows what a
// conversion with those flags would use.
func runConfigCmd(args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: config takes no arguments", ErrInvalidFlags)
	}

	cfg, err := loadConfig(flags, env)
	if err != nil {
		return err
	}
	return printConfig(env, cfg)
}

func printConfig(env *Environment, cfg *config.Config) error {
	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
