// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"llm-sanitizer/internal/help"
	"llm-sanitizer/internal/version"
	"llm-sanitizer/internal/web"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSessionCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or discard the numeric session of the last sanitize run",
	}

	var verbose bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.sessionStore().Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if current == nil {
				fmt.Fprintln(out, "No current session.")
				return nil
			}

			created := time.UnixMilli(current.Timestamp).UTC().Format(time.RFC3339)
			fmt.Fprintf(out, "%s %s\n", color.CyanString("Session:"), current.ID)
			fmt.Fprintf(out, "%s %s\n", color.CyanString("Created:"), created)
			fmt.Fprintf(out, "%s %d\n", color.CyanString("Numbers:"), len(current.NumberMappings))
			if verbose {
				for _, mapping := range current.NumberMappings {
					fmt.Fprintf(out, "  %s  %q  @%d\n", mapping.Placeholder, mapping.Original, mapping.Position)
				}
			}
			return nil
		},
	}
	showCmd.Flags().BoolVar(&verbose, "verbose", false, "List every mapping, including the original values")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessionStore().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")
			return nil
		},
	}

	cmd.AddCommand(showCmd, clearCmd)
	return cmd
}

func newUnitsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "Describe numeric sanitization and list the measurement units",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			help.NewSystem(cmd.OutOrStdout(), a.flags.noColor).ShowReference()
		},
	}
}

func newServeCommand(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sanitize and restore API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Web.Port
			}
			server := web.NewWebServer(port, a.vaultStore(), a.engine, a.cfg.Numbers)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx, cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port for the web server (default from config, else 8080)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Short())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
