// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"llm-sanitizer/internal/formatters"

	"github.com/spf13/cobra"
)

func newSanitizeCommand(a *app) *cobra.Command {
	var (
		flags   ioFlags
		numbers numberFlags
		profile string
	)

	cmd := &cobra.Command{
		Use:   "sanitize [text...]",
		Short: "Replace registered terms and numbers with placeholders",
		Long: "Replaces every active term of the selected profile with its placeholder and, with --numbers,\n" +
			"every numeric value with a {{NUM_NNN}} placeholder. The numeric session is saved so that\n" +
			"'restore' can put the values back.",
		Example: "  llm-sanitizer sanitize \"Project Orion costs $500\" --numbers\n" +
			"  llm-sanitizer sanitize -i report.pdf -o prompt.txt\n" +
			"  pbpaste | llm-sanitizer sanitize --numbers --format json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.resolveFormat(flags); err != nil {
				return err
			}
			content, err := a.readInput(cmd, flags, args)
			if err != nil {
				return err
			}

			store := a.vaultStore()
			vault, err := store.Load()
			if err != nil {
				return err
			}
			selected, err := findProfile(vault, profile)
			if err != nil {
				return err
			}

			opts := numbers.resolve(cmd, a.cfg)
			result := a.engine.Sanitize(content.Text, selected.Terms, opts)

			// Each run replaces the current session; an empty one clears it.
			if err := a.sessionStore().Save(result.Session); err != nil {
				return err
			}
			if a.observer != nil {
				a.observer.LogMetric("cli", "term_replacements", result.TermReplacements)
				a.observer.LogMetric("cli", "number_replacements", result.NumberReplacements)
			}

			if err := a.emit(cmd, flags, formatters.NewSanitizeReport(selected.Name, result)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	numbers.register(cmd)
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile id or name (default: the active profile)")
	return cmd
}
