package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/honeybbq/cfgparser/pkg/cfgparser"
)

func main() {
	var (
		mode     = flag.String("mode", "check", "operation mode: check | dump | format")
		input    = flag.String("input", "", "input .cfg path")
		output   = flag.String("output", "", "output path (default: stdout)")
		format   = flag.String("format", "json", "dump format: json | yaml")
		basePath = flag.String("base-path", "", "prefix prepended to #include paths")
		quiet    = flag.Bool("quiet", false, "suppress parse diagnostics")
	)
	flag.Parse()

	if *input == "" {
		exitWithError(errors.New("input is required (use -input)"))
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := cfgparser.New()
	cfg.SetBasePath(*basePath)

	diagnostics := 0
	if *quiet {
		cfg.SetMessageFunc(func(string) { diagnostics++ })
	} else {
		cfg.SetMessageFunc(func(msg string) {
			diagnostics++
			logger.Warn().Str("file", *input).Msg(msg)
		})
	}

	if err := cfg.Load(*input); err != nil {
		exitWithError(fmt.Errorf("load: %w", err))
	}

	switch strings.ToLower(*mode) {
	case "check":
		if diagnostics > 0 {
			exitWithError(fmt.Errorf("%d diagnostic(s) in %s", diagnostics, *input))
		}
		logger.Info().Int("sections", cfg.SectionCount()).Msg("configuration is clean")
	case "dump":
		out, cleanup, err := openOutput(*output)
		if err != nil {
			exitWithError(err)
		}
		defer cleanup()
		switch strings.ToLower(*format) {
		case "json":
			err = cfg.DumpJSON(out)
		case "yaml":
			err = cfg.DumpYAML(out)
		default:
			err = fmt.Errorf("unknown format %q (use json|yaml)", *format)
		}
		if err != nil {
			exitWithError(fmt.Errorf("dump: %w", err))
		}
	case "format":
		data, err := cfg.Render()
		if err != nil {
			exitWithError(fmt.Errorf("render: %w", err))
		}
		if err := writeOutput(*output, data); err != nil {
			exitWithError(fmt.Errorf("write output: %w", err))
		}
	default:
		exitWithError(fmt.Errorf("unknown mode %q (use check|dump|format)", *mode))
	}
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
