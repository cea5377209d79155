// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"llm-sanitizer/internal/sanitizer"

	"github.com/fatih/color"
)

// OptionInfo describes one numeric sanitization switch
type OptionInfo struct {
	Flag        string
	Description string
	Examples    []string
}

// numberOptions documents the numeric sub-patterns in flag order
var numberOptions = []OptionInfo{
	{Flag: "--numbers", Description: "Enable numeric sanitization (off by default)", Examples: nil},
	{Flag: "--integers", Description: "Whole numbers, optionally with a sign and thousands separators", Examples: []string{"42", "-7", "1,000,000"}},
	{Flag: "--decimals", Description: "Decimal numbers and scientific notation", Examples: []string{"3.14", ".5", "6.02e23"}},
	{Flag: "--measurements", Description: "A number followed by a unit from the vocabulary below", Examples: []string{"5 mg", "3.3V", "25°C"}},
	{Flag: "--currency", Description: "A currency symbol followed by a number", Examples: []string{"$100", "€ 2,500.00", "¥1000"}},
}

// System renders reference help
type System struct {
	out     io.Writer
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	return &System{
		out:     out,
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
			"warning": color.New(color.FgYellow),
		},
	}
}

// ShowNumberOptions describes the numeric sanitization switches
func (h *System) ShowNumberOptions() {
	h.colors["title"].Fprintln(h.out, "Numeric sanitization")
	fmt.Fprintln(h.out, "====================")
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "Every matched number gets its own placeholder ({{NUM_001}}, {{NUM_002}}, ...).")
	fmt.Fprintln(h.out, "The session saved by 'sanitize' is required to restore them.")
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "OPTIONS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, opt := range numberOptions {
		examples := ""
		if len(opt.Examples) > 0 {
			examples = h.colors["example"].Sprint(strings.Join(opt.Examples, ", "))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", h.colors["item"].Sprint(opt.Flag), opt.Description, examples)
	}
	w.Flush()
	fmt.Fprintln(h.out)

	h.colors["warning"].Fprintln(h.out, "Numbers glued to letters or dots are never matched: v2.0, Room101, ID42.")
	fmt.Fprintln(h.out)
}

// ShowUnits lists the measurement unit vocabulary by category
func (h *System) ShowUnits() {
	h.colors["title"].Fprintln(h.out, "Measurement units")
	fmt.Fprintln(h.out, "=================")
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "Units are matched case-insensitively after a number, with optional spaces")
	fmt.Fprintln(h.out, "between them. The longest unit wins (\"5 kWh\" is one value, not \"5 kW\" + \"h\").")
	fmt.Fprintln(h.out)

	for _, category := range sanitizer.UnitVocabulary() {
		h.colors["header"].Fprintf(h.out, "%s:\n", strings.ToUpper(category.Name))
		fmt.Fprintf(h.out, "  %s\n", wrap(category.Units, 72))
	}
	fmt.Fprintln(h.out)
}

// ShowReference prints the full numeric reference
func (h *System) ShowReference() {
	h.ShowNumberOptions()
	h.ShowUnits()
}

// wrap joins units with spaces and breaks lines before width
func wrap(units []string, width int) string {
	var b strings.Builder
	line := 0
	for i, unit := range units {
		if i > 0 {
			if line+1+len(unit) > width {
				b.WriteString("\n  ")
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(unit)
		line += len(unit)
	}
	return b.String()
}
