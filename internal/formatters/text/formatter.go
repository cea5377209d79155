// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"
	"time"

	"llm-sanitizer/internal/formatters"

	"github.com/fatih/color"
)

// Formatter implements the human-readable run summary. The sanitized or
// restored text itself is written separately by the caller.
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable summary with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	var builder strings.Builder

	title := "Sanitized"
	if report.Operation == "restore" {
		title = "Restored"
	}
	header := title
	if report.Profile != "" {
		header = fmt.Sprintf("%s with profile %q", title, report.Profile)
	}
	builder.WriteString(f.colors["white"].Sprint(header))
	builder.WriteString("\n")

	if report.Replacements == 0 {
		builder.WriteString(f.colors["yellow"].Sprint("  No placeholders applied."))
		builder.WriteString("\n")
	} else if report.Operation == "restore" {
		fmt.Fprintf(&builder, "  %s %d\n", f.colors["cyan"].Sprint("Placeholders restored:"), report.Replacements)
	} else {
		fmt.Fprintf(&builder, "  %s %d\n", f.colors["cyan"].Sprint("Terms replaced:"), report.TermReplacements)
		fmt.Fprintf(&builder, "  %s %d\n", f.colors["cyan"].Sprint("Numbers replaced:"), report.NumberReplacements)
	}
	fmt.Fprintf(&builder, "  %s %d -> %d characters\n", f.colors["cyan"].Sprint("Length:"), report.OriginalLength, report.ResultLength)

	if report.Session != nil {
		created := time.UnixMilli(report.Session.Timestamp).UTC().Format(time.RFC3339)
		fmt.Fprintf(&builder, "  %s %s (%s)\n", f.colors["cyan"].Sprint("Session:"), f.colors["green"].Sprint(report.Session.ID), created)
		if options.Verbose {
			for _, mapping := range report.Session.NumberMappings {
				fmt.Fprintf(&builder, "    %s  %q  @%d\n", mapping.Placeholder, mapping.Original, mapping.Position)
			}
		}
	}

	return builder.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
