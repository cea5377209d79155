// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"llm-sanitizer/internal/extract"
	"llm-sanitizer/internal/formatters"
	"llm-sanitizer/internal/sanitizer"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRestoreCommand(a *app) *cobra.Command {
	var (
		flags     ioFlags
		profile   string
		noSession bool
		stream    bool
	)

	cmd := &cobra.Command{
		Use:   "restore [text...]",
		Short: "Put the original terms and numbers back into an LLM response",
		Long: "Replaces term placeholders of the selected profile with their originals and, when a\n" +
			"session from the last 'sanitize' run exists, numeric placeholders with their values.",
		Example: "  llm-sanitizer restore -i response.txt\n" +
			"  llm-sanitizer restore --stream < response.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.resolveFormat(flags); err != nil {
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

			var current *sanitizer.SanitizationSession
			if !noSession {
				current, err = a.sessionStore().Load()
				if err != nil {
					return err
				}
			}
			if current == nil && !a.flags.quiet {
				fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("No numeric session found; only terms will be restored."))
			}

			if stream {
				return a.restoreStream(cmd, flags, args, selected.Terms, current)
			}

			content, err := a.readInput(cmd, flags, args)
			if err != nil {
				return err
			}
			result, count := a.engine.Restore(content.Text, selected.Terms, current)

			if err := a.emit(cmd, flags, formatters.NewRestoreReport(selected.Name, content.Text, result, count)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile id or name (default: the active profile)")
	cmd.Flags().BoolVar(&noSession, "no-session", false, "Restore term placeholders only")
	cmd.Flags().BoolVar(&stream, "stream", false, "Restore while copying input to output without buffering it all")
	return cmd
}

// restoreStream copies the input through a RestoringReader. It only handles
// plain text and does not support PDF input.
func (a *app) restoreStream(cmd *cobra.Command, flags ioFlags, args []string, terms []sanitizer.Term, current *sanitizer.SanitizationSession) error {
	if len(args) > 0 {
		return fmt.Errorf("--stream reads from --input or stdin, not from arguments")
	}
	if flags.format != "" && flags.format != "text" {
		return fmt.Errorf("--stream only supports the text format")
	}

	var src io.Reader = cmd.InOrStdin()
	if flags.input != "" && flags.input != extract.StdinName {
		if filepath.Ext(flags.input) == ".pdf" {
			return fmt.Errorf("--stream does not support PDF input")
		}
		f, err := os.Open(filepath.Clean(flags.input))
		if err != nil {
			return fmt.Errorf("error opening input: %w", err)
		}
		defer f.Close()
		src = f
	}

	var dst io.Writer = cmd.OutOrStdout()
	if flags.output != "" && flags.output != extract.StdinName {
		f, err := os.OpenFile(filepath.Clean(flags.output), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("error creating output: %w", err)
		}
		defer f.Close()
		dst = f
	}

	reader := sanitizer.NewRestoringReader(src, terms, current)
	if _, err := io.Copy(dst, reader); err != nil {
		return fmt.Errorf("error restoring stream: %w", err)
	}

	if !a.flags.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %d\n", color.CyanString("Placeholders restored:"), reader.Replacements())
	}
	return nil
}
