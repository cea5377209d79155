// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"llm-sanitizer/internal/config"
	"llm-sanitizer/internal/extract"
	"llm-sanitizer/internal/formatters"
	"llm-sanitizer/internal/paths"
	"llm-sanitizer/internal/sanitizer"

	"github.com/spf13/cobra"

	// Import formatters to register them
	_ "llm-sanitizer/internal/formatters/json"
	_ "llm-sanitizer/internal/formatters/text"
	_ "llm-sanitizer/internal/formatters/yaml"
)

// ioFlags are the input and output flags shared by sanitize and restore
type ioFlags struct {
	input   string
	output  string
	format  string
	verbose bool
}

func (f *ioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Input file (.pdf supported) or - for stdin")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the result to this file instead of stdout")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: text, json, yaml (default from config, else text)")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Include every numeric mapping in summaries and reports")
}

// readInput returns the text from positional args, --input, or stdin
func (a *app) readInput(cmd *cobra.Command, flags ioFlags, args []string) (*extract.Content, error) {
	if len(args) > 0 {
		if flags.input != "" {
			return nil, fmt.Errorf("pass text as an argument or with --input, not both")
		}
		return &extract.Content{Source: "argument", Kind: "text", Text: strings.Join(args, " ")}, nil
	}

	source := flags.input
	if source == "" || source == extract.StdinName {
		stdin := cmd.InOrStdin()
		if isTerminal(stdin) && !a.flags.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "Reading from stdin, press Ctrl-D when done...")
		}
		return extract.Load(extract.StdinName, stdin)
	}

	finish := a.observer.StartStep("cli", "extract", source)
	content, err := extract.Load(source, nil)
	if err != nil {
		finish(false, err.Error())
		return nil, err
	}
	finish(true, fmt.Sprintf("kind=%s pages=%d", content.Kind, content.PageCount))
	return content, nil
}

// resolveFormat picks the --format flag or the configured default
func (a *app) resolveFormat(flags ioFlags) (string, error) {
	format := flags.format
	if format == "" {
		format = a.cfg.Defaults.Format
	}
	if _, ok := formatters.Get(format); !ok {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(formatters.List(), ", "))
	}
	return format, nil
}

// emit writes a run's output. The text format writes the bare result and a
// summary on stderr; structured formats write the whole report.
func (a *app) emit(cmd *cobra.Command, flags ioFlags, report formatters.Report) error {
	format, err := a.resolveFormat(flags)
	if err != nil {
		return err
	}
	options := formatters.FormatterOptions{Verbose: flags.verbose, NoColor: a.flags.noColor}

	if format == "text" {
		if err := writeOutput(cmd.OutOrStdout(), flags.output, report.Result); err != nil {
			return err
		}
		if a.flags.quiet {
			return nil
		}
		summary, err := formatters.Export(format, report, options)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.ErrOrStderr(), summary)
		return nil
	}

	content, err := formatters.Export(format, report, options)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), flags.output, content)
}

// writeOutput writes content to path, or to out when path is empty or "-"
func writeOutput(out io.Writer, path, content string) error {
	if path == "" || path == extract.StdinName {
		if _, err := io.WriteString(out, content); err != nil {
			return err
		}
		if !strings.HasSuffix(content, "\n") {
			fmt.Fprintln(out)
		}
		return nil
	}
	if err := paths.WriteFilePrivate(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// numberFlags are the numeric sanitization switches
type numberFlags struct {
	enabled      bool
	integers     bool
	decimals     bool
	measurements bool
	currency     bool
}

func (f *numberFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.enabled, "numbers", false, "Replace numeric values with {{NUM_NNN}} placeholders")
	cmd.Flags().BoolVar(&f.integers, "integers", true, "Include whole numbers")
	cmd.Flags().BoolVar(&f.decimals, "decimals", true, "Include decimals and scientific notation")
	cmd.Flags().BoolVar(&f.measurements, "measurements", true, "Include numbers with a unit")
	cmd.Flags().BoolVar(&f.currency, "currency", true, "Include amounts with a currency symbol")
}

// resolve overlays the flags the user set on the configured options
func (f *numberFlags) resolve(cmd *cobra.Command, cfg *config.Config) (opts sanitizer.NumberSanitizeOptions) {
	opts = cfg.Numbers
	changed := cmd.Flags().Changed
	if changed("numbers") {
		opts.Enabled = f.enabled
	}
	if changed("integers") {
		opts.IncludeIntegers = f.integers
	}
	if changed("decimals") {
		opts.IncludeDecimals = f.decimals
	}
	if changed("measurements") {
		opts.IncludeMeasurements = f.measurements
	}
	if changed("currency") {
		opts.IncludeCurrency = f.currency
	}
	return opts
}

// fileExists reports whether path names an existing file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
